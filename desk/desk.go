package desk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"flight_desk/constants"
	"flight_desk/model"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Backend is the booking service the desk reads from and writes to.
type Backend interface {
	Transport
	Getter
	ListPassengers(ctx context.Context) ([]model.Passenger, error)
	ListAirplanes(ctx context.Context) ([]model.Airplane, error)
	ListFlights(ctx context.Context) ([]model.Flight, error)
	ListTickets(ctx context.Context) ([]model.Ticket, error)
}

type Options struct {
	Clock       clockwork.Clock
	AuditWindow time.Duration
	Logger      zerolog.Logger
}

type originKey struct{}

// WithOrigin tags ctx with the id of the desk issuing a request.
func WithOrigin(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, originKey{}, id)
}

// Origin returns the desk id carried by ctx, or "".
func Origin(ctx context.Context) string {
	id, _ := ctx.Value(originKey{}).(string)
	return id
}

// Desk is one operator's workspace: the four lists, the search views of the
// ticket form, the forms themselves and the edit dialogs. Commands are
// applied in order by Run.
type Desk struct {
	ID string

	log      zerolog.Logger
	sink     Sink
	notifier Notifier

	passengers *Source[model.Passenger]
	airplanes  *Source[model.Airplane]
	flights    *Source[model.Flight]
	tickets    *Source[model.Ticket]
	sources    map[Kind]Reloader

	passengerView *FilteredView[model.Passenger]
	airplaneView  *FilteredView[model.Airplane]
	flightView    *FilteredView[model.Flight]
	debouncers    map[string]*Debouncer

	forms  map[Kind]*Form
	broker *Broker
	editor *Editor

	// done ends with Close and stops every edit dialog still in flight.
	done      context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func New(backend Backend, sink Sink, opts Options) *Desk {
	id := uuid.NewString()
	log := opts.Logger.With().Str("desk", id).Logger()
	d := &Desk{
		ID:       id,
		log:      log,
		sink:     sink,
		notifier: sinkNotifier{sink: sink, log: log},
	}

	d.passengers = NewSource[model.Passenger](KindPassengers, ListerFunc[model.Passenger](backend.ListPassengers))
	d.airplanes = NewSource[model.Airplane](KindAirplanes, ListerFunc[model.Airplane](backend.ListAirplanes))
	d.flights = NewSource[model.Flight](KindFlights, ListerFunc[model.Flight](backend.ListFlights))
	d.tickets = NewSource[model.Ticket](KindTickets, ListerFunc[model.Ticket](backend.ListTickets))
	d.sources = map[Kind]Reloader{
		KindPassengers: d.passengers,
		KindAirplanes:  d.airplanes,
		KindFlights:    d.flights,
		KindTickets:    d.tickets,
	}
	publishList(d, d.passengers)
	publishList(d, d.airplanes)
	publishList(d, d.flights)
	publishList(d, d.tickets)

	d.passengerView = NewFilteredView("passengers", d.passengers, MatchPassenger, func(q string, rows []model.Passenger) {
		d.send(Event{Type: EventResults, Kind: KindPassengers, Field: QueryPassenger, Query: q, Rows: rows})
	})
	d.airplaneView = NewFilteredView("airplanes", d.airplanes, MatchAirplane, func(q string, rows []model.Airplane) {
		d.send(Event{Type: EventResults, Kind: KindAirplanes, Field: QueryAirplane, Query: q, Rows: rows})
	})
	d.flightView = NewFilteredView("flights", d.flights, MatchFlight, func(q string, rows []model.Flight) {
		d.send(Event{Type: EventResults, Kind: KindFlights, Field: QueryFlight, Query: q, Rows: rows})
	})
	d.debouncers = map[string]*Debouncer{
		QueryPassenger: NewDebouncer(opts.Clock, opts.AuditWindow, d.passengerView.SetQuery),
		QueryAirplane:  NewDebouncer(opts.Clock, opts.AuditWindow, d.airplaneView.SetQuery),
		QueryFlight:    NewDebouncer(opts.Clock, opts.AuditWindow, d.flightView.SetQuery),
	}

	d.forms = make(map[Kind]*Form, len(Kinds))
	for _, k := range Kinds {
		form, _ := NewCreateForm(k)
		d.forms[k] = form
	}
	d.broker = NewBroker(backend, d.notifier, log)
	d.editor = NewEditor(backend, d.broker, log)
	d.done, d.cancel = context.WithCancel(context.Background())

	openDesks.Inc()
	return d
}

func publishList[T any](d *Desk, s *Source[T]) {
	s.Subscribe(func(rows []T) {
		d.send(Event{Type: EventList, Kind: s.Kind(), Rows: rows})
	})
}

// Start loads every list.
func (d *Desk) Start(ctx context.Context) error {
	var errs []error
	for _, k := range Kinds {
		if err := d.sources[k].Reload(ctx); err != nil {
			d.log.Error().Err(err).Str("kind", string(k)).Msg("initial load")
			d.notifier.Error(constants.LOAD_FAILED, constants.TITLE_ERROR)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reload refetches one list, e.g. after another desk changed it.
func (d *Desk) Reload(ctx context.Context, kind Kind) error {
	src, ok := d.sources[kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return src.Reload(ctx)
}

// Run applies commands until the channel closes or ctx ends.
func (d *Desk) Run(ctx context.Context, commands <-chan Command) error {
	ctx = WithOrigin(ctx, d.ID)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-commands:
			if !ok {
				return nil
			}
			if err := d.Handle(ctx, cmd); err != nil {
				d.log.Debug().Err(err).Str("cmd", cmd.Type).Str("kind", string(cmd.Kind)).Msg("command failed")
			}
		}
	}
}

// Handle applies one command. Failures the operator must see are already
// notified; the returned error is for logging.
func (d *Desk) Handle(ctx context.Context, cmd Command) error {
	switch cmd.Type {
	case CmdInput:
		form, err := d.form(cmd.Kind)
		if err != nil {
			return err
		}
		if err := form.Input(cmd.Field, cmd.Value); err != nil {
			return err
		}
		if form.Kind() == KindTickets {
			if deb, ok := d.debouncers[cmd.Field]; ok {
				deb.Push(cmd.Value)
			}
		}
		d.sendForm(form)
		return nil

	case CmdSelect:
		form, err := d.form(KindTickets)
		if err != nil {
			return err
		}
		item, err := d.lookup(cmd.Field, cmd.ID)
		if err != nil {
			return err
		}
		if err := form.Select(cmd.Field, item); err != nil {
			return err
		}
		d.sendForm(form)
		return nil

	case CmdSubmit:
		form, err := d.form(cmd.Kind)
		if err != nil {
			return err
		}
		err = d.broker.Create(ctx, Target{Form: form, Reload: d.sources[form.Kind()]})
		if form.Kind() == KindTickets {
			d.pushQueries(form)
		}
		d.sendForm(form)
		return err

	case CmdEdit:
		reload, ok := d.sources[cmd.Kind]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownKind, cmd.Kind)
		}
		if d.done.Err() != nil {
			return ErrSessionClosed
		}
		ctx, cancel := context.WithCancel(ctx)
		stop := context.AfterFunc(d.done, cancel)
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			defer stop()
			defer cancel()
			d.edit(ctx, cmd.Kind, cmd.ID, reload)
		}()
		return nil

	case CmdEditInput:
		s, ok := d.editor.Session(cmd.Kind)
		if !ok {
			return ErrSessionClosed
		}
		if err := s.Input(cmd.Field, cmd.Value); err != nil {
			return err
		}
		d.sendDialog(s, StateOpen)
		return nil

	case CmdEditSave:
		s, ok := d.editor.Session(cmd.Kind)
		if !ok {
			return ErrSessionClosed
		}
		return s.Save(ctx)

	case CmdEditCancel:
		s, ok := d.editor.Session(cmd.Kind)
		if !ok {
			return ErrSessionClosed
		}
		s.Cancel()
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd.Type)
}

// Present shows a freshly opened session to the operator.
func (d *Desk) Present(_ context.Context, s *EditSession) error {
	return d.sink.Send(d.dialogEvent(s, StateOpen))
}

func (d *Desk) edit(ctx context.Context, kind Kind, id uint, reload Reloader) {
	refresh, err := d.editor.Edit(ctx, kind, id, d, reload)
	switch {
	case err != nil && refresh:
		d.log.Error().Err(err).Str("kind", string(kind)).Msg("reload after edit")
	case errors.Is(err, ErrSessionOpen):
		d.notifier.Info(err.Error(), constants.TITLE_ERROR)
		return
	case err != nil && ctx.Err() != nil:
		d.log.Debug().Err(err).Str("kind", string(kind)).Msg("edit abandoned")
		return
	case err != nil:
		d.log.Warn().Err(err).Str("kind", string(kind)).Uint("id", id).Msg("edit session")
		d.notifier.Error(constants.LOAD_FAILED, constants.TITLE_ERROR)
		return
	}
	state := StateCancelled
	if refresh {
		state = StateSaved
	}
	d.send(Event{Type: EventDialog, Kind: kind, ID: id, State: state.String()})
}

func (d *Desk) form(kind Kind) (*Form, error) {
	form, ok := d.forms[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return form, nil
}

func (d *Desk) lookup(field string, id uint) (any, error) {
	var (
		item any
		ok   bool
	)
	switch field {
	case "passengers":
		item, ok = d.passengers.Find(func(p model.Passenger) bool { return p.ID == id })
	case "airplanes":
		item, ok = d.airplanes.Find(func(a model.Airplane) bool { return a.ID == id })
	case "flights":
		item, ok = d.flights.Find(func(f model.Flight) bool { return f.ID == id })
	default:
		return nil, unknownField(KindTickets, field)
	}
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", field, id, ErrNotFound)
	}
	return item, nil
}

// pushQueries feeds the ticket search boxes back into their debouncers so a
// reset form also resets the search results.
func (d *Desk) pushQueries(form *Form) {
	values, ok := form.Values().(*TicketForm)
	if !ok {
		return
	}
	d.debouncers[QueryPassenger].Push(values.Passenger)
	d.debouncers[QueryAirplane].Push(values.Airplane)
	d.debouncers[QueryFlight].Push(values.Flight)
}

func (d *Desk) sendForm(form *Form) {
	d.send(Event{Type: EventForm, Kind: form.Kind(), Values: form.Values(), Missing: form.Missing()})
}

func (d *Desk) dialogEvent(s *EditSession, state State) Event {
	values, missing := s.View()
	return Event{
		Type:    EventDialog,
		Kind:    s.Kind,
		ID:      s.EntityID,
		State:   state.String(),
		Values:  values,
		Missing: missing,
	}
}

func (d *Desk) sendDialog(s *EditSession, state State) {
	d.send(d.dialogEvent(s, state))
}

func (d *Desk) send(e Event) {
	if err := d.sink.Send(e); err != nil {
		d.log.Warn().Err(err).Str("event", e.Type).Msg("event dropped")
	}
}

// Close stops the audit windows, abandons pending filter work and cancels
// edit sessions, including those still loading.
func (d *Desk) Close() {
	d.closeOnce.Do(func() {
		d.cancel()
		for _, deb := range d.debouncers {
			deb.Stop()
		}
		d.passengerView.Close()
		d.airplaneView.Close()
		d.flightView.Close()
		d.editor.CancelAll()
		d.wg.Wait()
		openDesks.Dec()
	})
}
