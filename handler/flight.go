package handler

import (
	"flight_desk/constants"
	"flight_desk/desk"
	"flight_desk/model"

	"github.com/gofiber/fiber/v2"
)

func GetFlights(c *fiber.Ctx) error {
	return list(c, desk.KindFlights)
}

func GetFlightById(c *fiber.Ctx) error {
	return getById(c, desk.KindFlights)
}

func CreateFlight(c *fiber.Ctx) error {
	return mutate[model.FlightInput](c, desk.KindFlights, create, constants.FLIGHT_CREATE_FAILED)
}

func UpdateFlight(c *fiber.Ctx) error {
	return mutate[model.FlightInput](c, desk.KindFlights, update, constants.FLIGHT_UPDATE_FAILED)
}
