package helper

import (
	"context"
	"encoding/json"
	"errors"
	"flight_desk/desk"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RefreshChannel carries a Refresh every time a collection changes.
const RefreshChannel = "catalog:refresh"

// Refresh tells desks to reload Kind. Origin is the desk that caused the
// change, which has already reloaded.
type Refresh struct {
	Kind   desk.Kind `json:"kind"`
	Origin string    `json:"origin,omitempty"`
}

// Cache keeps JSON snapshots of the collections in redis and fans out
// refresh notices. A nil *Cache, or one without a client, is a no-op.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func NewCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, log: log}
}

func (c *Cache) enabled() bool { return c != nil && c.rdb != nil }

func cacheKey(kind desk.Kind) string { return "catalog:" + string(kind) }

// generationKey counts the invalidations of kind. A snapshot is only stored
// if no invalidation happened while it was being loaded.
func generationKey(kind desk.Kind) string { return "catalog:gen:" + string(kind) }

var errStaleSnapshot = errors.New("collection changed while loading")

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, rdb getter, kind desk.Kind) (int64, error) {
	gen, err := rdb.Get(ctx, generationKey(kind)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// cached serves kind from redis, falling back to load on a miss or any
// redis failure and storing what load returned.
func cached[T any](ctx context.Context, c *Cache, kind desk.Kind, load func(context.Context) ([]T, error)) ([]T, error) {
	if !c.enabled() {
		return load(ctx)
	}
	key := cacheKey(kind)
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var rows []T
		if err := json.Unmarshal(data, &rows); err == nil {
			return rows, nil
		}
		c.log.Warn().Str("key", key).Msg("dropping unreadable cache entry")
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Str("key", key).Msg("cache read")
	}

	gen, genErr := generation(ctx, c.rdb, kind)
	rows, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if genErr != nil {
		c.log.Warn().Err(genErr).Str("key", key).Msg("cache generation read")
		return rows, nil
	}
	if err := c.store(ctx, kind, gen, rows); err != nil {
		ev := c.log.Warn()
		if errors.Is(err, errStaleSnapshot) {
			ev = c.log.Debug()
		}
		ev.Err(err).Str("key", key).Msg("cache write skipped")
	}
	return rows, nil
}

// store writes rows under kind as long as its generation is still gen.
func (c *Cache) store(ctx context.Context, kind desk.Kind, gen int64, rows any) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generation(ctx, tx, kind)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleSnapshot
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, cacheKey(kind), data, c.ttl)
			return nil
		})
		return err
	}, generationKey(kind))
	if errors.Is(err, redis.TxFailedErr) {
		return errStaleSnapshot
	}
	return err
}

// Invalidate drops the snapshot of kind and bumps its generation so loads
// already in flight do not store what they read.
func (c *Cache) Invalidate(ctx context.Context, kind desk.Kind) error {
	if !c.enabled() {
		return nil
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(kind))
		pipe.Del(ctx, cacheKey(kind))
		return nil
	})
	return err
}

func (c *Cache) Publish(ctx context.Context, kind desk.Kind, origin string) error {
	if !c.enabled() {
		return nil
	}
	data, err := json.Marshal(Refresh{Kind: kind, Origin: origin})
	if err != nil {
		return err
	}
	return c.rdb.Publish(ctx, RefreshChannel, data).Err()
}

// Subscribe streams refresh notices until ctx ends or stop is called. It
// returns a nil channel when the cache is disabled.
func (c *Cache) Subscribe(ctx context.Context) (<-chan Refresh, func() error) {
	if !c.enabled() {
		return nil, func() error { return nil }
	}
	pubsub := c.rdb.Subscribe(ctx, RefreshChannel)
	out := make(chan Refresh)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var r Refresh
			if err := json.Unmarshal([]byte(msg.Payload), &r); err != nil {
				c.log.Warn().Err(err).Str("payload", msg.Payload).Msg("bad refresh notice")
				continue
			}
			select {
			case out <- r:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, pubsub.Close
}

// Subscribe on the catalog exposes the refresh stream to the desk handler.
func (c *Catalog) Subscribe(ctx context.Context) (<-chan Refresh, func() error) {
	return c.cache.Subscribe(ctx)
}
