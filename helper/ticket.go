package helper

import (
	"flight_desk/model"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

func NewTicketCode() string {
	return "TKT-" + strings.ToUpper(uuid.New().String()[:10])
}

// TicketQRContent is what the boarding code encodes.
func TicketQRContent(t model.Ticket) string {
	return strings.Join([]string{
		t.TicketCode,
		t.Passenger.Name,
		t.Flight.CityFrom + "-" + t.Flight.CityOut,
		t.Flight.DateOut.String(),
		t.Airplane.Airline,
	}, "|")
}

// TicketFileName is the download name of a ticket's boarding code.
func TicketFileName(t model.Ticket) string {
	base := slug.Make(fmt.Sprintf("%s %s %s %s", t.Passenger.Name, t.Flight.CityFrom, t.Flight.CityOut, t.Flight.DateOut))
	if base == "" {
		base = "ticket"
	}
	return fmt.Sprintf("%s-%d.png", base, t.ID)
}
