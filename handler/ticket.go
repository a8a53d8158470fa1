package handler

import (
	"errors"
	"flight_desk/constants"
	"flight_desk/desk"
	"flight_desk/helper"
	"flight_desk/model"
	"flight_desk/utils"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const qrSize = 256

func GetTickets(c *fiber.Ctx) error {
	return list(c, desk.KindTickets)
}

func GetTicketById(c *fiber.Ctx) error {
	return getById(c, desk.KindTickets)
}

func CreateTicket(c *fiber.Ctx) error {
	return mutate[model.TicketInput](c, desk.KindTickets, create, constants.TICKET_CREATE_FAILED)
}

func UpdateTicket(c *fiber.Ctx) error {
	return mutate[model.TicketInput](c, desk.KindTickets, update, constants.TICKET_UPDATE_FAILED)
}

// GetTicketQRCode serves the boarding code of a ticket as a PNG download.
func GetTicketQRCode(c *fiber.Ctx) error {
	ticketId, ok := c.Locals("inputId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
	}
	ticket, err := helper.Store.Ticket(c.UserContext(), ticketId)
	if err != nil {
		return utils.ErrorResponse(c, helper.StatusOf(err), constants.NOT_FOUND, err)
	}

	png, err := utils.GenerateQRCode(helper.TicketQRContent(ticket), qrSize)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.QR_FAILED, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, helper.TicketFileName(ticket)))
	return c.Send(png)
}
