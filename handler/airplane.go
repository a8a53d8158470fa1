package handler

import (
	"flight_desk/constants"
	"flight_desk/desk"
	"flight_desk/model"

	"github.com/gofiber/fiber/v2"
)

func GetAirplanes(c *fiber.Ctx) error {
	return list(c, desk.KindAirplanes)
}

func GetAirplaneById(c *fiber.Ctx) error {
	return getById(c, desk.KindAirplanes)
}

func CreateAirplane(c *fiber.Ctx) error {
	return mutate[model.AirplaneInput](c, desk.KindAirplanes, create, constants.AIRPLANE_CREATE_FAILED)
}

func UpdateAirplane(c *fiber.Ctx) error {
	return mutate[model.AirplaneInput](c, desk.KindAirplanes, update, constants.AIRPLANE_UPDATE_FAILED)
}
