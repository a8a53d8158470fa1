package helper

import (
	"errors"
	"flight_desk/desk"
	"flight_desk/validate"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StatusOf maps a catalog error to the HTTP status it is reported with.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, validate.ErrInvalid),
		errors.Is(err, ErrBadReference),
		errors.Is(err, ErrWrongPayload),
		errors.Is(err, desk.ErrUnknownKind):
		return fiber.StatusBadRequest
	case errors.Is(err, desk.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}
