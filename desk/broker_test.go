package desk

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"flight_desk/constants"

	"github.com/rs/zerolog"
)

func newTestBroker(tr *fakeTransport) (*Broker, *recordingNotifier) {
	n := &recordingNotifier{}
	return NewBroker(tr, n, zerolog.Nop()), n
}

func TestBrokerCreateSuccess(t *testing.T) {
	tr := &fakeTransport{status: StatusOK}
	b, n := newTestBroker(tr)
	reload := &countingReloader{}
	f := newTicketForm(t)
	fillTicket(t, f)

	mustDo(t, b.Create(context.Background(), Target{Form: f, Reload: reload}))

	if creates, _ := tr.counts(); creates != 1 {
		t.Fatalf("creates = %d", creates)
	}
	if got := reload.n.Load(); got != 1 {
		t.Fatalf("reloads = %d, want 1", got)
	}
	if !reflect.DeepEqual(*f.Values().(*TicketForm), TicketForm{}) {
		t.Fatal("form not reset after success")
	}
	want := []note{{SeveritySuccess, constants.TICKET_CREATED}}
	if got := n.all(); !reflect.DeepEqual(got, want) {
		t.Fatalf("notes = %v, want %v", got, want)
	}
}

func TestBrokerRejectedStatusKeepsForm(t *testing.T) {
	tr := &fakeTransport{status: 500}
	b, n := newTestBroker(tr)
	reload := &countingReloader{}
	f := newTicketForm(t)
	fillTicket(t, f)

	err := b.Create(context.Background(), Target{Form: f, Reload: reload})
	var merr *MutationError
	if !errors.As(err, &merr) || merr.Status != 500 {
		t.Fatalf("err = %v, want MutationError 500", err)
	}
	if !errors.Is(err, ErrMutationFailed) {
		t.Fatal("MutationError does not wrap ErrMutationFailed")
	}
	if reload.n.Load() != 0 {
		t.Fatal("reloaded after a rejected mutation")
	}
	if !f.Valid() || f.Values().(*TicketForm).Value != "100" {
		t.Fatal("form changed after a rejected mutation")
	}
	want := []note{{SeverityError, constants.TICKET_CREATE_FAILED}}
	if got := n.all(); !reflect.DeepEqual(got, want) {
		t.Fatalf("notes = %v, want %v", got, want)
	}
}

func TestBrokerInvalidFormNeverReachesTransport(t *testing.T) {
	tr := &fakeTransport{status: StatusOK}
	b, n := newTestBroker(tr)
	f := newTicketForm(t)
	mustDo(t, f.Input("value", "100"))

	err := b.Create(context.Background(), Target{Form: f})
	var verr *ValidationError
	if !errors.As(err, &verr) || !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if contains(verr.Missing, "value") || !contains(verr.Missing, "passengers") {
		t.Fatalf("Missing = %v", verr.Missing)
	}
	if creates, updates := tr.counts(); creates+updates != 0 {
		t.Fatal("invalid form was sent")
	}
	want := []note{{SeverityInfo, constants.FORM_INCOMPLETE}}
	if got := n.all(); !reflect.DeepEqual(got, want) {
		t.Fatalf("notes = %v, want %v", got, want)
	}
}

func TestBrokerTransportFault(t *testing.T) {
	boom := errors.New("connection refused")
	tr := &fakeTransport{err: boom}
	b, n := newTestBroker(tr)
	reload := &countingReloader{}
	f, err := NewCreateForm(KindPassengers)
	mustDo(t, err)
	mustDo(t, f.Input("name", "Ana"))

	err = b.Create(context.Background(), Target{Form: f, Reload: reload})
	if !errors.Is(err, ErrTransport) || !errors.Is(err, boom) {
		t.Fatalf("err = %v, want ErrTransport wrapping the cause", err)
	}
	if f.Values().(*PassengerForm).Name != "Ana" {
		t.Fatal("form reset after a transport fault")
	}
	if reload.n.Load() != 0 {
		t.Fatal("reloaded after a transport fault")
	}
	want := []note{{SeverityError, constants.TRANSPORT_FAILED}}
	if got := n.all(); !reflect.DeepEqual(got, want) {
		t.Fatalf("notes = %v, want %v", got, want)
	}
}

func TestBrokerRejectsDuplicateSubmit(t *testing.T) {
	tr := &fakeTransport{
		status:  StatusOK,
		entered: make(chan struct{}, 1),
		block:   make(chan struct{}),
	}
	b, _ := newTestBroker(tr)
	f, err := NewCreateForm(KindPassengers)
	mustDo(t, err)
	mustDo(t, f.Input("name", "Ana"))

	first := make(chan error, 1)
	go func() { first <- b.Create(context.Background(), Target{Form: f}) }()
	expectValue(t, tr.entered)

	if err := b.Create(context.Background(), Target{Form: f}); !errors.Is(err, ErrBusy) {
		t.Fatalf("second submit err = %v, want ErrBusy", err)
	}

	close(tr.block)
	mustDo(t, expectValue(t, first))
	if creates, _ := tr.counts(); creates != 1 {
		t.Fatalf("creates = %d, want 1", creates)
	}
}

func TestBrokerUpdateWithoutReload(t *testing.T) {
	tr := &fakeTransport{status: StatusOK}
	b, n := newTestBroker(tr)
	f, err := NewUpdateForm(KindPassengers)
	mustDo(t, err)
	mustDo(t, f.Fill(ana))

	mustDo(t, b.Update(context.Background(), Target{Form: f}))
	if _, updates := tr.counts(); updates != 1 {
		t.Fatalf("updates = %d", updates)
	}
	want := []note{{SeveritySuccess, constants.PASSENGER_UPDATED}}
	if got := n.all(); !reflect.DeepEqual(got, want) {
		t.Fatalf("notes = %v", got)
	}
}
