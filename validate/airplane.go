package validate

import (
	"flight_desk/model"

	"github.com/gofiber/fiber/v2"
)

func airplaneID(in model.AirplaneInput) uint { return in.ID }

func CreateAirplane() fiber.Handler {
	return body(false, airplaneID)
}

func UpdateAirplane() fiber.Handler {
	return body(true, airplaneID)
}
