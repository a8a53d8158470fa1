package validate

import (
	"flight_desk/model"

	"github.com/gofiber/fiber/v2"
)

func passengerID(in model.PassengerInput) uint { return in.ID }

func CreatePassenger() fiber.Handler {
	return body(false, passengerID)
}

func UpdatePassenger() fiber.Handler {
	return body(true, passengerID)
}
