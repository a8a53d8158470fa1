package desk

import (
	"context"
	"fmt"
	"sync"

	"flight_desk/constants"

	"github.com/rs/zerolog"
)

// StatusOK is the only transport status treated as success.
const StatusOK = 200

type Response struct {
	Status int
	Body   any
}

type Transport interface {
	Create(ctx context.Context, kind Kind, payload any) (Response, error)
	Update(ctx context.Context, kind Kind, payload any) (Response, error)
}

// Notifier shows a toast to the operator. Calls are fire-and-forget.
type Notifier interface {
	Success(message, title string)
	Error(message, title string)
	Info(message, title string)
}

// Target is what a submission acts on. A nil Reload leaves refreshing to the
// caller, as edit sessions do.
type Target struct {
	Form   *Form
	Reload Reloader
}

const (
	opCreate = "create"
	opUpdate = "update"
)

type outcomeMessages struct {
	done, failed string
}

var messages = map[Kind]map[string]outcomeMessages{
	KindPassengers: {
		opCreate: {constants.PASSENGER_CREATED, constants.PASSENGER_CREATE_FAILED},
		opUpdate: {constants.PASSENGER_UPDATED, constants.PASSENGER_UPDATE_FAILED},
	},
	KindAirplanes: {
		opCreate: {constants.AIRPLANE_CREATED, constants.AIRPLANE_CREATE_FAILED},
		opUpdate: {constants.AIRPLANE_UPDATED, constants.AIRPLANE_UPDATE_FAILED},
	},
	KindFlights: {
		opCreate: {constants.FLIGHT_CREATED, constants.FLIGHT_CREATE_FAILED},
		opUpdate: {constants.FLIGHT_UPDATED, constants.FLIGHT_UPDATE_FAILED},
	},
	KindTickets: {
		opCreate: {constants.TICKET_CREATED, constants.TICKET_CREATE_FAILED},
		opUpdate: {constants.TICKET_UPDATED, constants.TICKET_UPDATE_FAILED},
	},
}

// Broker submits forms, interprets the status marker and runs the
// reset/reload/notify protocol. It never retries.
type Broker struct {
	transport Transport
	notifier  Notifier
	log       zerolog.Logger

	mu       sync.Mutex
	inflight map[*Form]struct{}
}

func NewBroker(transport Transport, notifier Notifier, log zerolog.Logger) *Broker {
	return &Broker{
		transport: transport,
		notifier:  notifier,
		log:       log,
		inflight:  make(map[*Form]struct{}),
	}
}

func (b *Broker) Create(ctx context.Context, t Target) error {
	return b.submit(ctx, opCreate, t)
}

func (b *Broker) Update(ctx context.Context, t Target) error {
	return b.submit(ctx, opUpdate, t)
}

func (b *Broker) submit(ctx context.Context, op string, t Target) error {
	kind := t.Form.Kind()
	msgs := messages[kind][op]

	if missing := t.Form.Missing(); len(missing) > 0 {
		b.notifier.Info(constants.FORM_INCOMPLETE, constants.TITLE_ERROR)
		mutations.WithLabelValues(string(kind), op, "invalid").Inc()
		return &ValidationError{Kind: kind, Missing: missing}
	}
	payload, err := t.Form.Payload()
	if err != nil {
		b.notifier.Info(constants.FORM_INCOMPLETE, constants.TITLE_ERROR)
		mutations.WithLabelValues(string(kind), op, "invalid").Inc()
		return &ValidationError{Kind: kind, Err: err}
	}

	if !b.acquire(t.Form) {
		return fmt.Errorf("%s %s: %w", op, kind, ErrBusy)
	}
	defer b.release(t.Form)

	var resp Response
	if op == opCreate {
		resp, err = b.transport.Create(ctx, kind, payload)
	} else {
		resp, err = b.transport.Update(ctx, kind, payload)
	}
	if err != nil {
		b.log.Error().Err(err).Str("kind", string(kind)).Str("op", op).Msg("mutation transport fault")
		b.notifier.Error(constants.TRANSPORT_FAILED, constants.TITLE_ERROR)
		mutations.WithLabelValues(string(kind), op, "fault").Inc()
		return fmt.Errorf("%s %s: %w: %w", op, kind, ErrTransport, err)
	}
	if resp.Status != StatusOK {
		b.log.Warn().Str("kind", string(kind)).Str("op", op).Int("status", resp.Status).Msg("mutation rejected")
		b.notifier.Error(msgs.failed, constants.TITLE_ERROR)
		mutations.WithLabelValues(string(kind), op, "rejected").Inc()
		return &MutationError{Kind: kind, Op: op, Status: resp.Status}
	}

	mutations.WithLabelValues(string(kind), op, "ok").Inc()
	t.Form.Reset()
	if t.Reload != nil {
		if err := t.Reload.Reload(ctx); err != nil {
			b.log.Error().Err(err).Str("kind", string(kind)).Msg("reload after mutation")
		}
	}
	b.notifier.Success(msgs.done, constants.TITLE_SUCCESS)
	return nil
}

func (b *Broker) acquire(f *Form) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, busy := b.inflight[f]; busy {
		return false
	}
	b.inflight[f] = struct{}{}
	return true
}

func (b *Broker) release(f *Form) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inflight, f)
}
