package router

import (
	"flight_desk/handler"
	"flight_desk/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	v1 := api.Group("/v1")

	passenger := v1.Group("/passengers")
	passenger.Get("/", handler.GetPassengers)
	passenger.Get("/:passengerId", validate.GetById("passengerId"), handler.GetPassengerById)
	passenger.Post("/", validate.CreatePassenger(), handler.CreatePassenger)
	passenger.Put("/", validate.UpdatePassenger(), handler.UpdatePassenger)

	airplane := v1.Group("/airplanes")
	airplane.Get("/", handler.GetAirplanes)
	airplane.Get("/:airplaneId", validate.GetById("airplaneId"), handler.GetAirplaneById)
	airplane.Post("/", validate.CreateAirplane(), handler.CreateAirplane)
	airplane.Put("/", validate.UpdateAirplane(), handler.UpdateAirplane)

	flight := v1.Group("/flights")
	flight.Get("/", handler.GetFlights)
	flight.Get("/:flightId", validate.GetById("flightId"), handler.GetFlightById)
	flight.Post("/", validate.CreateFlight(), handler.CreateFlight)
	flight.Put("/", validate.UpdateFlight(), handler.UpdateFlight)

	ticket := v1.Group("/tickets")
	ticket.Get("/", handler.GetTickets)
	ticket.Get("/:ticketId", validate.GetById("ticketId"), handler.GetTicketById)
	ticket.Get("/:ticketId/qr", validate.GetById("ticketId"), handler.GetTicketQRCode)
	ticket.Post("/", validate.CreateTicket(), handler.CreateTicket)
	ticket.Put("/", validate.UpdateTicket(), handler.UpdateTicket)

	deskGroup := v1.Group("/desk")
	deskGroup.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	deskGroup.Get("/ws", websocket.New(handler.DeskWebsocket))
}
