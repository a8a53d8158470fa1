package helper

import (
	"context"
	"errors"
	"flight_desk/desk"
	"flight_desk/model"
	"flight_desk/utils"
	"flight_desk/validate"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, 200},
		{"invalid input", validate.Input(model.PassengerInput{}), 400},
		{"bad reference", fmt.Errorf("flight 9: %w", ErrBadReference), 400},
		{"wrong payload", checkPayload(desk.KindFlights, model.PassengerInput{Name: "Ana"}), 400},
		{"not found", fmt.Errorf("x: %w", desk.ErrNotFound), 404},
		{"gorm not found", gorm.ErrRecordNotFound, 404},
		{"anything else", errors.New("connection reset"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.want {
				t.Fatalf("StatusOf(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestCheckPayload(t *testing.T) {
	if err := checkPayload(desk.KindPassengers, model.PassengerInput{Name: "Ana"}); err != nil {
		t.Fatal(err)
	}
	if err := checkPayload(desk.KindPassengers, &model.PassengerInput{Name: "Ana"}); !errors.Is(err, ErrWrongPayload) {
		t.Fatalf("pointer payload err = %v", err)
	}
	if err := checkPayload(desk.KindTickets, model.TicketInput{Value: 10}); !errors.Is(err, validate.ErrInvalid) {
		t.Fatalf("incomplete ticket err = %v", err)
	}
}

func TestCachedWithoutRedisLoadsEveryTime(t *testing.T) {
	var cache *Cache
	calls := 0
	load := func(context.Context) ([]model.Passenger, error) {
		calls++
		return []model.Passenger{{Name: "Ana"}}, nil
	}
	for i := 0; i < 2; i++ {
		rows, err := cached(context.Background(), cache, desk.KindPassengers, load)
		if err != nil || len(rows) != 1 {
			t.Fatalf("rows %v err %v", rows, err)
		}
	}
	if calls != 2 {
		t.Fatalf("loads = %d, want 2", calls)
	}
	if err := cache.Invalidate(context.Background(), desk.KindPassengers); err != nil {
		t.Fatal(err)
	}
	if err := cache.Publish(context.Background(), desk.KindPassengers, "desk-1"); err != nil {
		t.Fatal(err)
	}
	if ch, stop := cache.Subscribe(context.Background()); ch != nil || stop() != nil {
		t.Fatal("disabled cache returned a subscription")
	}
}

func testTicket() model.Ticket {
	return model.Ticket{
		DTO:        model.DTO{ID: 12},
		TicketCode: "TKT-0A1B2C3D4E",
		Passenger:  model.Passenger{Name: "Ana Restrepo"},
		Airplane:   model.Airplane{Airline: "Avianca"},
		Flight: model.Flight{
			DateOut:  utils.Date{Time: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
			CityFrom: "Bogotá",
			CityOut:  "Medellín",
		},
	}
}

func TestTicketFileName(t *testing.T) {
	if got, want := TicketFileName(testTicket()), "ana-restrepo-bogota-medellin-2025-01-15-12.png"; got != want {
		t.Fatalf("TicketFileName() = %q, want %q", got, want)
	}
	if got := TicketFileName(model.Ticket{DTO: model.DTO{ID: 3}}); got != "ticket-3.png" {
		t.Fatalf("empty ticket name = %q", got)
	}
}

func TestTicketQRContent(t *testing.T) {
	got := TicketQRContent(testTicket())
	want := "TKT-0A1B2C3D4E|Ana Restrepo|Bogotá-Medellín|2025-01-15|Avianca"
	if got != want {
		t.Fatalf("TicketQRContent() = %q, want %q", got, want)
	}
}

func TestNewTicketCode(t *testing.T) {
	a, b := NewTicketCode(), NewTicketCode()
	if a == b || !strings.HasPrefix(a, "TKT-") || len(a) != 14 {
		t.Fatalf("codes %q %q", a, b)
	}
}
