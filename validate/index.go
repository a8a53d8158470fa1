package validate

import (
	"errors"
	"flight_desk/constants"
	"flight_desk/utils"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var ErrInvalid = errors.New("invalid input")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Input checks the validator tags of an input struct. Failures wrap ErrInvalid
// and the validator.ValidationErrors describing them.
func Input(input any) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Fields lists the JSON names of the fields rejected in err.
func Fields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.ParseUint(params, 10, 64)
		if err != nil || valueKey == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals("inputId", uint(valueKey))
		return c.Next()
	}
}

// body parses the request into T, checks it and stores it under "input".
// Updates also require the id carried in the body.
func body[T any](update bool, id func(T) uint, prepare ...func(*T)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		for _, fn := range prepare {
			fn(&input)
		}
		if err := Input(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": constants.ERROR_VALIDATION,
				"error":   err.Error(),
				"fields":  Fields(err),
			})
		}
		if update && id(input) == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_VALIDATION, errors.New("id is required"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}
