package desk

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateSaved
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateSaved:
		return "saved"
	case StateCancelled:
		return "cancelled"
	}
	return "closed"
}

// Getter loads a single entity for the edit dialog.
type Getter interface {
	Get(ctx context.Context, kind Kind, id uint) (any, error)
}

// DialogHost shows an open session to the operator. It may return at once
// or once the operator closes the dialog; the caller waits on the session
// either way.
type DialogHost interface {
	Present(ctx context.Context, s *EditSession) error
}

type DialogHostFunc func(ctx context.Context, s *EditSession) error

func (f DialogHostFunc) Present(ctx context.Context, s *EditSession) error { return f(ctx, s) }

// EditSession is one edit dialog: Closed → Open → Saved|Cancelled → Closed.
type EditSession struct {
	ID       string
	Kind     Kind
	EntityID uint

	form    *Form
	broker  *Broker
	release func()

	// formMu serializes the loop's edits with the dialog snapshots taken
	// on the edit goroutine.
	formMu sync.Mutex

	mu      sync.Mutex
	state   State
	outcome State
	done    chan struct{}
}

func (s *EditSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Outcome is StateSaved or StateCancelled once Done is closed.
func (s *EditSession) Outcome() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

func (s *EditSession) Done() <-chan struct{} { return s.done }

func (s *EditSession) Input(field, value string) error {
	if s.State() != StateOpen {
		return ErrSessionClosed
	}
	s.formMu.Lock()
	defer s.formMu.Unlock()
	return s.form.Input(field, value)
}

// View returns a copy of the dialog's field state and its missing fields.
func (s *EditSession) View() (Values, []string) {
	s.formMu.Lock()
	defer s.formMu.Unlock()
	return s.form.Snapshot(), s.form.Missing()
}

// Save submits the update form. A rejected update keeps the session open so
// the operator can retry or cancel.
func (s *EditSession) Save(ctx context.Context) error {
	if s.State() != StateOpen {
		return ErrSessionClosed
	}
	s.formMu.Lock()
	err := s.broker.Update(ctx, Target{Form: s.form})
	s.formMu.Unlock()
	if err != nil {
		return err
	}
	s.finish(StateSaved)
	return nil
}

// Cancel dismisses the dialog without saving. It is a no-op once the
// session has finished.
func (s *EditSession) Cancel() {
	s.finish(StateCancelled)
}

func (s *EditSession) finish(outcome State) {
	s.mu.Lock()
	if s.state != StateOpen {
		s.mu.Unlock()
		return
	}
	s.state = outcome
	s.outcome = outcome
	close(s.done)
	s.mu.Unlock()
	s.release()
}

func (s *EditSession) close() {
	s.formMu.Lock()
	defer s.formMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateClosed
	s.form.Reset()
}

// Editor opens edit sessions, at most one per kind at a time.
type Editor struct {
	getter Getter
	broker *Broker
	log    zerolog.Logger

	mu     sync.Mutex
	open   map[Kind]*EditSession
	closed bool
}

func NewEditor(getter Getter, broker *Broker, log zerolog.Logger) *Editor {
	return &Editor{
		getter: getter,
		broker: broker,
		log:    log,
		open:   make(map[Kind]*EditSession),
	}
}

// Open loads entity id of kind into a fresh update form.
func (e *Editor) Open(ctx context.Context, kind Kind, id uint) (*EditSession, error) {
	form, err := NewUpdateForm(kind)
	if err != nil {
		return nil, err
	}
	s := &EditSession{
		ID:       uuid.NewString(),
		Kind:     kind,
		EntityID: id,
		form:     form,
		broker:   e.broker,
		done:     make(chan struct{}),
	}
	s.release = func() { e.releaseSlot(kind, s) }

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if _, busy := e.open[kind]; busy {
		e.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", kind, ErrSessionOpen)
	}
	e.open[kind] = s
	e.mu.Unlock()

	item, err := e.getter.Get(ctx, kind, id)
	if err == nil {
		err = ctx.Err()
	}
	if err == nil {
		err = form.Fill(item)
	}
	if err != nil {
		e.releaseSlot(kind, s)
		return nil, fmt.Errorf("open %s %d: %w", kind, id, err)
	}

	// CancelAll may have run while the entity was loading.
	e.mu.Lock()
	closed := e.closed
	if !closed {
		s.mu.Lock()
		s.state = StateOpen
		s.mu.Unlock()
	}
	e.mu.Unlock()
	if closed {
		e.releaseSlot(kind, s)
		return nil, fmt.Errorf("open %s %d: %w", kind, id, ErrSessionClosed)
	}
	e.log.Debug().Str("session", s.ID).Str("kind", string(kind)).Uint("id", id).Msg("edit session opened")
	return s, nil
}

// Session returns the open session of kind, if any.
func (e *Editor) Session(kind Kind) (*EditSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.open[kind]
	if !ok || s.State() != StateOpen {
		return nil, false
	}
	return s, true
}

// Await blocks until s finishes or ctx ends (which cancels it), closes it
// and reloads once if it was saved. It reports whether a refresh happened.
func (e *Editor) Await(ctx context.Context, s *EditSession, reload Reloader) (bool, error) {
	select {
	case <-s.Done():
	case <-ctx.Done():
		s.Cancel()
	}
	refresh := s.Outcome() == StateSaved
	s.close()
	e.log.Debug().Str("session", s.ID).Bool("refresh", refresh).Msg("edit session closed")
	if refresh && reload != nil {
		if err := reload.Reload(ctx); err != nil {
			return true, err
		}
	}
	return refresh, nil
}

// Edit runs a whole dialog: open, present, wait, refresh.
func (e *Editor) Edit(ctx context.Context, kind Kind, id uint, host DialogHost, reload Reloader) (bool, error) {
	s, err := e.Open(ctx, kind, id)
	if err != nil {
		return false, err
	}
	if err := host.Present(ctx, s); err != nil {
		s.Cancel()
		s.close()
		return false, fmt.Errorf("present %s session: %w", kind, err)
	}
	return e.Await(ctx, s, reload)
}

func (e *Editor) releaseSlot(kind Kind, s *EditSession) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.open[kind] == s {
		delete(e.open, kind)
	}
}

// CancelAll cancels every open session and refuses new ones. Sessions still
// loading fail once their entity arrives.
func (e *Editor) CancelAll() {
	e.mu.Lock()
	e.closed = true
	sessions := make([]*EditSession, 0, len(e.open))
	for _, s := range e.open {
		sessions = append(sessions, s)
	}
	e.mu.Unlock()
	for _, s := range sessions {
		s.Cancel()
	}
}
