package desk

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"flight_desk/model"
)

const waitTimeout = 2 * time.Second

func expectValue[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for a value")
	}
	var zero T
	return zero
}

func expectNone[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected value %v", v)
	case <-time.After(50 * time.Millisecond):
	}
}

type note struct {
	severity Severity
	message  string
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []note
}

func (n *recordingNotifier) add(s Severity, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, note{s, message})
}

func (n *recordingNotifier) Success(message, _ string) { n.add(SeveritySuccess, message) }
func (n *recordingNotifier) Error(message, _ string)   { n.add(SeverityError, message) }
func (n *recordingNotifier) Info(message, _ string)    { n.add(SeverityInfo, message) }

func (n *recordingNotifier) all() []note {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]note(nil), n.notes...)
}

type fakeTransport struct {
	mu      sync.Mutex
	status  int
	err     error
	creates []any
	updates []any

	entered chan struct{}
	block   chan struct{}
}

func (f *fakeTransport) call(list *[]any, payload any) (Response, error) {
	f.mu.Lock()
	*list = append(*list, payload)
	status, err, entered, block := f.status, f.err, f.entered, f.block
	f.mu.Unlock()
	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		<-block
	}
	return Response{Status: status}, err
}

func (f *fakeTransport) Create(_ context.Context, _ Kind, payload any) (Response, error) {
	return f.call(&f.creates, payload)
}

func (f *fakeTransport) Update(_ context.Context, _ Kind, payload any) (Response, error) {
	return f.call(&f.updates, payload)
}

func (f *fakeTransport) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.creates), len(f.updates)
}

type countingReloader struct {
	n atomic.Int32
}

func (r *countingReloader) Reload(context.Context) error {
	r.n.Add(1)
	return nil
}

var (
	ana    = model.Passenger{DTO: model.DTO{ID: 1}, Name: "Ana"}
	luis   = model.Passenger{DTO: model.DTO{ID: 2}, Name: "Luis"}
	boeing = model.Airplane{DTO: model.DTO{ID: 3}, Airline: "Avianca", Description: "Boeing 787", Amount: 250}
	night  = model.Flight{DTO: model.DTO{ID: 7}, CityFrom: "Bogota", CityOut: "Medellin", Description: "Night shuttle"}
)

func mustDo(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func fillTicket(t *testing.T, f *Form) {
	t.Helper()
	mustDo(t, f.Input("value", "100"))
	mustDo(t, f.Input("discount", "0"))
	mustDo(t, f.Input(QueryPassenger, "an"))
	mustDo(t, f.Select("passengers", ana))
	mustDo(t, f.Input(QueryAirplane, "avi"))
	mustDo(t, f.Select("airplanes", boeing))
	mustDo(t, f.Input(QueryFlight, "night"))
	mustDo(t, f.Select("flights", night))
}
