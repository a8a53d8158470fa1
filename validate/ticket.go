package validate

import (
	"flight_desk/model"

	"github.com/gofiber/fiber/v2"
)

func ticketID(in model.TicketInput) uint { return in.ID }

func CreateTicket() fiber.Handler {
	return body(false, ticketID)
}

func UpdateTicket() fiber.Handler {
	return body(true, ticketID)
}
