package desk

import (
	"fmt"
	"strconv"
	"strings"

	"flight_desk/model"
	"flight_desk/utils"
)

func unknownField(kind Kind, field string) error {
	return fmt.Errorf("%s form: %w %q", kind, ErrUnknownField, field)
}

func parseID(raw string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return uint(n), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type PassengerForm struct {
	Name string `json:"name" validate:"required"`
}

func (f *PassengerForm) Set(field, value string) error {
	switch field {
	case "name":
		f.Name = value
	default:
		return unknownField(KindPassengers, field)
	}
	return nil
}

func (f *PassengerForm) Payload() (any, error) {
	return model.PassengerInput{Name: f.Name}, nil
}

type PassengerUpdateForm struct {
	ID uint `json:"id" validate:"required"`
	PassengerForm
}

func (f *PassengerUpdateForm) Set(field, value string) (err error) {
	if field == "id" {
		f.ID, err = parseID(value)
		return err
	}
	return f.PassengerForm.Set(field, value)
}

func (f *PassengerUpdateForm) Fill(item any) error {
	p, ok := item.(model.Passenger)
	if !ok {
		return fmt.Errorf("passenger form cannot hold %T", item)
	}
	f.ID = p.ID
	f.Name = p.Name
	return nil
}

func (f *PassengerUpdateForm) Payload() (any, error) {
	return model.PassengerInput{ID: f.ID, Name: f.Name}, nil
}

type AirplaneForm struct {
	Airline     string `json:"airline" validate:"required"`
	Description string `json:"description" validate:"required"`
	Amount      string `json:"amount" validate:"required,number"`
}

func (f *AirplaneForm) Set(field, value string) error {
	switch field {
	case "airline":
		f.Airline = value
	case "description":
		f.Description = value
	case "amount":
		f.Amount = strings.TrimSpace(value)
	default:
		return unknownField(KindAirplanes, field)
	}
	return nil
}

func (f *AirplaneForm) input(id uint) (model.AirplaneInput, error) {
	amount, err := strconv.Atoi(f.Amount)
	if err != nil {
		return model.AirplaneInput{}, fmt.Errorf("amount: %w", err)
	}
	return model.AirplaneInput{
		ID:          id,
		Airline:     f.Airline,
		Description: f.Description,
		Amount:      amount,
	}, nil
}

func (f *AirplaneForm) Payload() (any, error) { return f.input(0) }

type AirplaneUpdateForm struct {
	ID uint `json:"id" validate:"required"`
	AirplaneForm
}

func (f *AirplaneUpdateForm) Set(field, value string) (err error) {
	if field == "id" {
		f.ID, err = parseID(value)
		return err
	}
	return f.AirplaneForm.Set(field, value)
}

func (f *AirplaneUpdateForm) Fill(item any) error {
	a, ok := item.(model.Airplane)
	if !ok {
		return fmt.Errorf("airplane form cannot hold %T", item)
	}
	f.ID = a.ID
	f.Airline = a.Airline
	f.Description = a.Description
	f.Amount = strconv.Itoa(a.Amount)
	return nil
}

func (f *AirplaneUpdateForm) Payload() (any, error) { return f.input(f.ID) }

// FlightForm keeps date_out as YYYY-MM-DD; anything that does not parse as
// a date is kept verbatim and fails validation.
type FlightForm struct {
	DateOut     string `json:"date_out" validate:"required,datetime=2006-01-02"`
	CityFrom    string `json:"city_from" validate:"required"`
	CityOut     string `json:"city_out" validate:"required"`
	Description string `json:"description" validate:"required"`
}

func (f *FlightForm) Set(field, value string) error {
	switch field {
	case "date_out":
		f.DateOut = utils.NormalizeDate(value)
	case "city_from":
		f.CityFrom = value
	case "city_out":
		f.CityOut = value
	case "description":
		f.Description = value
	default:
		return unknownField(KindFlights, field)
	}
	return nil
}

func (f *FlightForm) input(id uint) model.FlightInput {
	return model.FlightInput{
		ID:          id,
		DateOut:     f.DateOut,
		CityFrom:    f.CityFrom,
		CityOut:     f.CityOut,
		Description: f.Description,
	}
}

func (f *FlightForm) Payload() (any, error) { return f.input(0), nil }

type FlightUpdateForm struct {
	ID uint `json:"id" validate:"required"`
	FlightForm
}

func (f *FlightUpdateForm) Set(field, value string) (err error) {
	if field == "id" {
		f.ID, err = parseID(value)
		return err
	}
	return f.FlightForm.Set(field, value)
}

func (f *FlightUpdateForm) Fill(item any) error {
	fl, ok := item.(model.Flight)
	if !ok {
		return fmt.Errorf("flight form cannot hold %T", item)
	}
	f.ID = fl.ID
	f.DateOut = fl.DateOut.String()
	f.CityFrom = fl.CityFrom
	f.CityOut = fl.CityOut
	f.Description = fl.Description
	return nil
}

func (f *FlightUpdateForm) Payload() (any, error) { return f.input(f.ID), nil }

// TicketForm holds, per relation, the text typed into the search box and
// the object picked from the filtered list.
type TicketForm struct {
	Value      string           `json:"value" validate:"required,numeric"`
	IvaTiquete *float64         `json:"ivaTiquete" validate:"required"`
	Discount   string           `json:"discount" validate:"required,numeric"`
	Passenger  string           `json:"passenger" validate:"required"`
	Passengers *model.Passenger `json:"passengers" validate:"required"`
	Airplane   string           `json:"airplane" validate:"required"`
	Airplanes  *model.Airplane  `json:"airplanes" validate:"required"`
	Flight     string           `json:"flight" validate:"required"`
	Flights    *model.Flight    `json:"flights" validate:"required"`
}

// Query fields of the ticket form and the selection each one feeds.
const (
	QueryPassenger = "passenger"
	QueryAirplane  = "airplane"
	QueryFlight    = "flight"
)

func (f *TicketForm) Set(field, value string) error {
	switch field {
	case "value":
		f.Value = strings.TrimSpace(value)
	case "discount":
		f.Discount = strings.TrimSpace(value)
	case QueryPassenger:
		f.Passenger = value
	case QueryAirplane:
		f.Airplane = value
	case QueryFlight:
		f.Flight = value
	case "ivaTiquete":
		return fmt.Errorf("tickets form: %w %q", ErrReadOnlyField, field)
	default:
		return unknownField(KindTickets, field)
	}
	return nil
}

func (f *TicketForm) SetDerived(field string, value *float64) error {
	if field != "ivaTiquete" {
		return unknownField(KindTickets, field)
	}
	f.IvaTiquete = value
	return nil
}

func (f *TicketForm) Select(field string, item any) error {
	switch field {
	case "passengers":
		p, ok := item.(model.Passenger)
		if !ok {
			return fmt.Errorf("passengers expects a passenger, got %T", item)
		}
		f.Passengers = &p
	case "airplanes":
		a, ok := item.(model.Airplane)
		if !ok {
			return fmt.Errorf("airplanes expects an airplane, got %T", item)
		}
		f.Airplanes = &a
	case "flights":
		fl, ok := item.(model.Flight)
		if !ok {
			return fmt.Errorf("flights expects a flight, got %T", item)
		}
		f.Flights = &fl
	default:
		return unknownField(KindTickets, field)
	}
	return nil
}

func (f *TicketForm) input(id uint) (model.TicketInput, error) {
	if f.IvaTiquete == nil || f.Passengers == nil || f.Airplanes == nil || f.Flights == nil {
		return model.TicketInput{}, ErrValidation
	}
	value, err := strconv.ParseFloat(f.Value, 64)
	if err != nil {
		return model.TicketInput{}, fmt.Errorf("value: %w", err)
	}
	discount, err := strconv.ParseFloat(f.Discount, 64)
	if err != nil {
		return model.TicketInput{}, fmt.Errorf("discount: %w", err)
	}
	return model.TicketInput{
		ID:          id,
		Value:       value,
		IvaTicket:   *f.IvaTiquete,
		Discount:    discount,
		PassengerID: f.Passengers.ID,
		AirplaneID:  f.Airplanes.ID,
		FlightID:    f.Flights.ID,
	}, nil
}

func (f *TicketForm) Payload() (any, error) { return f.input(0) }

type TicketUpdateForm struct {
	ID uint `json:"id" validate:"required"`
	TicketForm
}

func (f *TicketUpdateForm) Set(field, value string) (err error) {
	if field == "id" {
		f.ID, err = parseID(value)
		return err
	}
	return f.TicketForm.Set(field, value)
}

func (f *TicketUpdateForm) Fill(item any) error {
	t, ok := item.(model.Ticket)
	if !ok {
		return fmt.Errorf("ticket form cannot hold %T", item)
	}
	iva := t.IvaTicket
	passenger, airplane, flight := t.Passenger, t.Airplane, t.Flight
	f.ID = t.ID
	f.Value = formatFloat(t.Value)
	f.IvaTiquete = &iva
	f.Discount = formatFloat(t.Discount)
	f.Passenger, f.Passengers = passenger.Name, &passenger
	f.Airplane, f.Airplanes = airplane.Airline, &airplane
	f.Flight, f.Flights = flight.Description, &flight
	return nil
}

func (f *TicketUpdateForm) Payload() (any, error) { return f.input(f.ID) }

// NewCreateForm returns the registration form for kind.
func NewCreateForm(kind Kind) (*Form, error) {
	switch kind {
	case KindPassengers:
		return NewForm(kind, func() Values { return &PassengerForm{} }), nil
	case KindAirplanes:
		return NewForm(kind, func() Values { return &AirplaneForm{} }), nil
	case KindFlights:
		return NewForm(kind, func() Values { return &FlightForm{} }), nil
	case KindTickets:
		return NewForm(kind, func() Values { return &TicketForm{} }, TaxField), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// NewUpdateForm returns the edit-dialog form for kind.
func NewUpdateForm(kind Kind) (*Form, error) {
	switch kind {
	case KindPassengers:
		return NewForm(kind, func() Values { return &PassengerUpdateForm{} }), nil
	case KindAirplanes:
		return NewForm(kind, func() Values { return &AirplaneUpdateForm{} }), nil
	case KindFlights:
		return NewForm(kind, func() Values { return &FlightUpdateForm{} }), nil
	case KindTickets:
		return NewForm(kind, func() Values { return &TicketUpdateForm{} }, TaxField), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
