package desk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"flight_desk/model"

	"github.com/rs/zerolog"
)

type fakeGetter struct {
	mu    sync.Mutex
	items map[Kind]map[uint]any
	gets  int

	// entered and block, when set, hold Get until the test releases it.
	entered chan struct{}
	block   chan struct{}
}

func (g *fakeGetter) Get(_ context.Context, kind Kind, id uint) (any, error) {
	g.mu.Lock()
	g.gets++
	item, ok := g.items[kind][id]
	entered, block := g.entered, g.block
	g.mu.Unlock()
	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		<-block
	}
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return item, nil
}

func newTestEditor(tr *fakeTransport) (*Editor, *recordingNotifier) {
	getter := &fakeGetter{items: map[Kind]map[uint]any{
		KindFlights:    {night.ID: night},
		KindPassengers: {ana.ID: ana},
	}}
	b, n := newTestBroker(tr)
	return NewEditor(getter, b, zerolog.Nop()), n
}

// presenter hands each presented session to the test.
func presenter() (DialogHost, <-chan *EditSession) {
	ch := make(chan *EditSession, 1)
	return DialogHostFunc(func(_ context.Context, s *EditSession) error {
		ch <- s
		return nil
	}), ch
}

type editResult struct {
	refresh bool
	err     error
}

func runEdit(e *Editor, ctx context.Context, kind Kind, id uint, host DialogHost, reload Reloader) <-chan editResult {
	out := make(chan editResult, 1)
	go func() {
		refresh, err := e.Edit(ctx, kind, id, host, reload)
		out <- editResult{refresh, err}
	}()
	return out
}

func TestEditSessionCancelDoesNotRefresh(t *testing.T) {
	tr := &fakeTransport{status: StatusOK}
	e, _ := newTestEditor(tr)
	host, presented := presenter()
	reload := &countingReloader{}

	done := runEdit(e, context.Background(), KindFlights, night.ID, host, reload)
	s := expectValue(t, presented)
	if s.State() != StateOpen {
		t.Fatalf("state = %v", s.State())
	}
	s.Cancel()

	res := expectValue(t, done)
	if res.err != nil || res.refresh {
		t.Fatalf("Edit() = %v, %v", res.refresh, res.err)
	}
	if reload.n.Load() != 0 {
		t.Fatal("reloaded after cancel")
	}
	if _, updates := tr.counts(); updates != 0 {
		t.Fatal("cancel sent an update")
	}
	if s.State() != StateClosed || s.Outcome() != StateCancelled {
		t.Fatalf("state %v outcome %v", s.State(), s.Outcome())
	}
}

func TestEditSessionSaveRefreshesOnce(t *testing.T) {
	tr := &fakeTransport{status: StatusOK}
	e, _ := newTestEditor(tr)
	host, presented := presenter()
	reload := &countingReloader{}

	done := runEdit(e, context.Background(), KindFlights, night.ID, host, reload)
	s := expectValue(t, presented)
	mustDo(t, s.Input("description", "Red eye"))
	mustDo(t, s.Input("date_out", "2024-12-24"))
	mustDo(t, s.Save(context.Background()))

	res := expectValue(t, done)
	if res.err != nil || !res.refresh {
		t.Fatalf("Edit() = %v, %v", res.refresh, res.err)
	}
	if got := reload.n.Load(); got != 1 {
		t.Fatalf("reloads = %d, want 1", got)
	}

	_, updates := tr.counts()
	if updates != 1 {
		t.Fatalf("updates = %d", updates)
	}
	got := tr.updates[0].(model.FlightInput)
	want := model.FlightInput{ID: night.ID, DateOut: "2024-12-24", CityFrom: "Bogota", CityOut: "Medellin", Description: "Red eye"}
	if got != want {
		t.Fatalf("update payload = %+v, want %+v", got, want)
	}
	if err := s.Input("description", "late"); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("input after close: %v", err)
	}
}

func TestEditSessionRejectedSaveStaysOpen(t *testing.T) {
	tr := &fakeTransport{status: 422}
	e, _ := newTestEditor(tr)
	host, presented := presenter()
	reload := &countingReloader{}

	done := runEdit(e, context.Background(), KindPassengers, ana.ID, host, reload)
	s := expectValue(t, presented)

	err := s.Save(context.Background())
	if !errors.Is(err, ErrMutationFailed) {
		t.Fatalf("err = %v", err)
	}
	if s.State() != StateOpen {
		t.Fatalf("state = %v, want open", s.State())
	}
	expectNone(t, done)

	s.Cancel()
	if res := expectValue(t, done); res.refresh {
		t.Fatal("refresh after rejected save and cancel")
	}
	if reload.n.Load() != 0 {
		t.Fatal("reloaded")
	}
}

func TestEditorOneSessionPerKind(t *testing.T) {
	tr := &fakeTransport{status: StatusOK}
	e, _ := newTestEditor(tr)
	ctx := context.Background()

	s, err := e.Open(ctx, KindFlights, night.ID)
	mustDo(t, err)
	if _, err := e.Open(ctx, KindFlights, night.ID); !errors.Is(err, ErrSessionOpen) {
		t.Fatalf("second open err = %v", err)
	}
	other, err := e.Open(ctx, KindPassengers, ana.ID)
	mustDo(t, err)
	other.Cancel()

	if got, ok := e.Session(KindFlights); !ok || got != s {
		t.Fatal("Session() did not return the open session")
	}
	s.Cancel()
	if _, ok := e.Session(KindFlights); ok {
		t.Fatal("cancelled session still reported open")
	}
	again, err := e.Open(ctx, KindFlights, night.ID)
	mustDo(t, err)
	again.Cancel()
}

func TestEditorOpenFailureReleasesSlot(t *testing.T) {
	tr := &fakeTransport{status: StatusOK}
	e, _ := newTestEditor(tr)
	ctx := context.Background()

	if _, err := e.Open(ctx, KindFlights, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	s, err := e.Open(ctx, KindFlights, night.ID)
	mustDo(t, err)
	s.Cancel()
}

func TestEditorAwaitCancelsOnContextEnd(t *testing.T) {
	tr := &fakeTransport{status: StatusOK}
	e, _ := newTestEditor(tr)
	host, presented := presenter()
	reload := &countingReloader{}
	ctx, cancel := context.WithCancel(context.Background())

	done := runEdit(e, ctx, KindFlights, night.ID, host, reload)
	s := expectValue(t, presented)
	cancel()

	res := expectValue(t, done)
	if res.refresh || res.err != nil {
		t.Fatalf("Edit() = %v, %v", res.refresh, res.err)
	}
	if s.Outcome() != StateCancelled {
		t.Fatalf("outcome = %v", s.Outcome())
	}
}

func TestEditorPresentFailure(t *testing.T) {
	tr := &fakeTransport{status: StatusOK}
	e, _ := newTestEditor(tr)
	boom := errors.New("socket closed")
	host := DialogHostFunc(func(context.Context, *EditSession) error { return boom })

	_, err := e.Edit(context.Background(), KindFlights, night.ID, host, &countingReloader{})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if _, ok := e.Session(KindFlights); ok {
		t.Fatal("session left open")
	}
}

func TestEditorCancelAllStopsLoadingSession(t *testing.T) {
	tr := &fakeTransport{status: StatusOK}
	e, _ := newTestEditor(tr)
	g := e.getter.(*fakeGetter)
	entered := make(chan struct{})
	release := make(chan struct{})
	g.mu.Lock()
	g.entered, g.block = entered, release
	g.mu.Unlock()

	opened := make(chan error, 1)
	go func() {
		_, err := e.Open(context.Background(), KindFlights, night.ID)
		opened <- err
	}()
	expectValue(t, entered)
	e.CancelAll()
	close(release)

	if err := expectValue(t, opened); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("open after CancelAll: %v", err)
	}
	if _, ok := e.Session(KindFlights); ok {
		t.Fatal("session opened after CancelAll")
	}
	if _, err := e.Open(context.Background(), KindFlights, night.ID); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("new open on closed editor: %v", err)
	}
}

func TestEditSessionViewIsDetachedFromInput(t *testing.T) {
	tr := &fakeTransport{status: StatusOK}
	e, _ := newTestEditor(tr)
	s, err := e.Open(context.Background(), KindFlights, night.ID)
	mustDo(t, err)
	defer s.Cancel()

	values, _ := s.View()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if err := s.Input("description", fmt.Sprintf("edit %d", i)); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	for i := 0; i < 50; i++ {
		s.View()
	}
	wg.Wait()

	if got := values.(*FlightUpdateForm).Description; got != night.Description {
		t.Fatalf("earlier view changed to %q", got)
	}
	latest, _ := s.View()
	if got := latest.(*FlightUpdateForm).Description; got != "edit 49" {
		t.Fatalf("latest view = %q", got)
	}
}
