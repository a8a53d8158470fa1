package helper

import (
	"context"
	"errors"
	"flight_desk/desk"
	"flight_desk/model"
	"flight_desk/utils"
	"flight_desk/validate"
	"fmt"
	"reflect"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBadReference = errors.New("referenced record does not exist")
	ErrWrongPayload = errors.New("payload does not match kind")
)

// Store is the process-wide catalog, set by Init.
var Store *Catalog

// Catalog reads and writes the four booking collections. It is also the
// desk.Backend every operator desk talks to.
type Catalog struct {
	db    *gorm.DB
	cache *Cache
	log   zerolog.Logger
}

var _ desk.Backend = (*Catalog)(nil)

func NewCatalog(db *gorm.DB, cache *Cache, log zerolog.Logger) *Catalog {
	return &Catalog{db: db, cache: cache, log: log}
}

func Init(db *gorm.DB, cache *Cache, log zerolog.Logger) *Catalog {
	Store = NewCatalog(db, cache, log)
	return Store
}

var ticketRelations = []string{"Passenger", "Airplane", "Flight"}

var copyOptions = copier.Option{
	Converters: []copier.TypeConverter{{
		SrcType: copier.String,
		DstType: utils.Date{},
		Fn: func(src any) (any, error) {
			return utils.ParseDate(src.(string))
		},
	}},
}

func listAll[T any](ctx context.Context, db *gorm.DB, preload ...string) ([]T, error) {
	q := db.WithContext(ctx).Order("id")
	for _, p := range preload {
		q = q.Preload(p)
	}
	rows := []T{}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func getOne[T any](ctx context.Context, db *gorm.DB, id uint, preload ...string) (T, error) {
	var row T
	q := db.WithContext(ctx)
	for _, p := range preload {
		q = q.Preload(p)
	}
	if err := q.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return row, fmt.Errorf("%T %d: %w", row, id, desk.ErrNotFound)
		}
		return row, err
	}
	return row, nil
}

// store copies input onto dst and writes it. Relations are never written
// through a ticket; only the foreign keys are.
func store[T any](ctx context.Context, db *gorm.DB, dst *T, input any, create bool) error {
	if err := copier.CopyWithOption(dst, input, copyOptions); err != nil {
		return fmt.Errorf("%w: %w", validate.ErrInvalid, err)
	}
	q := db.WithContext(ctx).Omit(clause.Associations)
	if create {
		return q.Create(dst).Error
	}
	return q.Save(dst).Error
}

func createEntity[T any](ctx context.Context, db *gorm.DB, input any) (T, error) {
	var row T
	err := store(ctx, db, &row, input, true)
	return row, err
}

func updateEntity[T any](ctx context.Context, db *gorm.DB, id uint, input any) (T, error) {
	row, err := getOne[T](ctx, db, id)
	if err != nil {
		return row, err
	}
	err = store(ctx, db, &row, input, false)
	return row, err
}

func (c *Catalog) ListPassengers(ctx context.Context) ([]model.Passenger, error) {
	return cached(ctx, c.cache, desk.KindPassengers, func(ctx context.Context) ([]model.Passenger, error) {
		return listAll[model.Passenger](ctx, c.db)
	})
}

func (c *Catalog) ListAirplanes(ctx context.Context) ([]model.Airplane, error) {
	return cached(ctx, c.cache, desk.KindAirplanes, func(ctx context.Context) ([]model.Airplane, error) {
		return listAll[model.Airplane](ctx, c.db)
	})
}

func (c *Catalog) ListFlights(ctx context.Context) ([]model.Flight, error) {
	return cached(ctx, c.cache, desk.KindFlights, func(ctx context.Context) ([]model.Flight, error) {
		return listAll[model.Flight](ctx, c.db)
	})
}

func (c *Catalog) ListTickets(ctx context.Context) ([]model.Ticket, error) {
	return cached(ctx, c.cache, desk.KindTickets, func(ctx context.Context) ([]model.Ticket, error) {
		return listAll[model.Ticket](ctx, c.db, ticketRelations...)
	})
}

// List returns the collection of kind as the REST layer serves it.
func (c *Catalog) List(ctx context.Context, kind desk.Kind) (any, int, error) {
	switch kind {
	case desk.KindPassengers:
		rows, err := c.ListPassengers(ctx)
		return rows, len(rows), err
	case desk.KindAirplanes:
		rows, err := c.ListAirplanes(ctx)
		return rows, len(rows), err
	case desk.KindFlights:
		rows, err := c.ListFlights(ctx)
		return rows, len(rows), err
	case desk.KindTickets:
		rows, err := c.ListTickets(ctx)
		return rows, len(rows), err
	}
	return nil, 0, fmt.Errorf("%w: %q", desk.ErrUnknownKind, kind)
}

func (c *Catalog) Get(ctx context.Context, kind desk.Kind, id uint) (any, error) {
	switch kind {
	case desk.KindPassengers:
		return getOne[model.Passenger](ctx, c.db, id)
	case desk.KindAirplanes:
		return getOne[model.Airplane](ctx, c.db, id)
	case desk.KindFlights:
		return getOne[model.Flight](ctx, c.db, id)
	case desk.KindTickets:
		return c.Ticket(ctx, id)
	}
	return nil, fmt.Errorf("%w: %q", desk.ErrUnknownKind, kind)
}

func (c *Catalog) Ticket(ctx context.Context, id uint) (model.Ticket, error) {
	return getOne[model.Ticket](ctx, c.db, id, ticketRelations...)
}

func (c *Catalog) Create(ctx context.Context, kind desk.Kind, payload any) (desk.Response, error) {
	item, err := c.create(ctx, kind, payload)
	return c.respond(ctx, kind, "create", item, err)
}

func (c *Catalog) Update(ctx context.Context, kind desk.Kind, payload any) (desk.Response, error) {
	item, err := c.update(ctx, kind, payload)
	return c.respond(ctx, kind, "update", item, err)
}

func (c *Catalog) create(ctx context.Context, kind desk.Kind, payload any) (any, error) {
	if err := checkPayload(kind, payload); err != nil {
		return nil, err
	}
	switch in := payload.(type) {
	case model.PassengerInput:
		return createEntity[model.Passenger](ctx, c.db, in)
	case model.AirplaneInput:
		return createEntity[model.Airplane](ctx, c.db, in)
	case model.FlightInput:
		return createEntity[model.Flight](ctx, c.db, in)
	case model.TicketInput:
		if err := c.checkReferences(ctx, in); err != nil {
			return nil, err
		}
		ticket := model.Ticket{TicketCode: NewTicketCode()}
		if err := store(ctx, c.db, &ticket, in, true); err != nil {
			return nil, err
		}
		return c.Ticket(ctx, ticket.ID)
	}
	return nil, fmt.Errorf("%w: %T", ErrWrongPayload, payload)
}

func (c *Catalog) update(ctx context.Context, kind desk.Kind, payload any) (any, error) {
	if err := checkPayload(kind, payload); err != nil {
		return nil, err
	}
	if id := reflect.ValueOf(payload).FieldByName("ID").Uint(); id == 0 {
		return nil, fmt.Errorf("%w: id is required", validate.ErrInvalid)
	}
	switch in := payload.(type) {
	case model.PassengerInput:
		return updateEntity[model.Passenger](ctx, c.db, in.ID, in)
	case model.AirplaneInput:
		return updateEntity[model.Airplane](ctx, c.db, in.ID, in)
	case model.FlightInput:
		return updateEntity[model.Flight](ctx, c.db, in.ID, in)
	case model.TicketInput:
		if err := c.checkReferences(ctx, in); err != nil {
			return nil, err
		}
		if _, err := updateEntity[model.Ticket](ctx, c.db, in.ID, in); err != nil {
			return nil, err
		}
		return c.Ticket(ctx, in.ID)
	}
	return nil, fmt.Errorf("%w: %T", ErrWrongPayload, payload)
}

var payloadKinds = map[reflect.Type]desk.Kind{
	reflect.TypeOf(model.PassengerInput{}): desk.KindPassengers,
	reflect.TypeOf(model.AirplaneInput{}):  desk.KindAirplanes,
	reflect.TypeOf(model.FlightInput{}):    desk.KindFlights,
	reflect.TypeOf(model.TicketInput{}):    desk.KindTickets,
}

func checkPayload(kind desk.Kind, payload any) error {
	if payloadKinds[reflect.TypeOf(payload)] != kind {
		return fmt.Errorf("%w: %T for %s", ErrWrongPayload, payload, kind)
	}
	return validate.Input(payload)
}

func (c *Catalog) checkReferences(ctx context.Context, in model.TicketInput) error {
	refs := []struct {
		model any
		id    uint
		name  string
	}{
		{&model.Passenger{}, in.PassengerID, "passenger"},
		{&model.Airplane{}, in.AirplaneID, "airplane"},
		{&model.Flight{}, in.FlightID, "flight"},
	}
	for _, ref := range refs {
		var count int64
		if err := c.db.WithContext(ctx).Model(ref.model).Where("id = ?", ref.id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%s %d: %w", ref.name, ref.id, ErrBadReference)
		}
	}
	return nil
}

// respond turns the outcome of a mutation into the status-marked response
// desks expect. Only a dead request context is reported as a transport
// error; everything else travels as a status.
func (c *Catalog) respond(ctx context.Context, kind desk.Kind, op string, item any, err error) (desk.Response, error) {
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return desk.Response{}, err
	}
	status := StatusOf(err)
	if err != nil {
		ev := c.log.Warn()
		if status >= 500 {
			ev = c.log.Error()
		}
		ev.Err(err).Str("kind", string(kind)).Str("op", op).Int("status", status).Msg("mutation failed")
		return desk.Response{Status: status, Body: err}, nil
	}
	c.changed(ctx, kind)
	return desk.Response{Status: status, Body: item}, nil
}

// changed drops the cached snapshots touched by a mutation of kind and tells
// the other desks to reload them. Tickets embed the other three kinds.
func (c *Catalog) changed(ctx context.Context, kind desk.Kind) {
	kinds := []desk.Kind{kind}
	if kind != desk.KindTickets {
		kinds = append(kinds, desk.KindTickets)
	}
	origin := desk.Origin(ctx)
	for _, k := range kinds {
		if err := c.cache.Invalidate(ctx, k); err != nil {
			c.log.Warn().Err(err).Str("kind", string(k)).Msg("cache invalidate")
		}
		if err := c.cache.Publish(ctx, k, origin); err != nil {
			c.log.Warn().Err(err).Str("kind", string(k)).Msg("refresh publish")
		}
	}
}

// Warm reloads every cached snapshot from postgres.
func (c *Catalog) Warm(ctx context.Context) error {
	var errs []error
	for _, kind := range desk.Kinds {
		if err := c.cache.Invalidate(ctx, kind); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, _, err := c.List(ctx, kind); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
