package handler

import (
	"flight_desk/constants"
	"flight_desk/desk"
	"flight_desk/model"

	"github.com/gofiber/fiber/v2"
)

func GetPassengers(c *fiber.Ctx) error {
	return list(c, desk.KindPassengers)
}

func GetPassengerById(c *fiber.Ctx) error {
	return getById(c, desk.KindPassengers)
}

func CreatePassenger(c *fiber.Ctx) error {
	return mutate[model.PassengerInput](c, desk.KindPassengers, create, constants.PASSENGER_CREATE_FAILED)
}

func UpdatePassenger(c *fiber.Ctx) error {
	return mutate[model.PassengerInput](c, desk.KindPassengers, update, constants.PASSENGER_UPDATE_FAILED)
}
