package helper

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

var warmScheduler gocron.Scheduler

// StartCacheWarmer rebuilds the catalog snapshots every interval so desks
// opening after a quiet period do not all miss the cache at once.
func StartCacheWarmer(c *Catalog, every time.Duration, clock clockwork.Clock, log zerolog.Logger) (gocron.Scheduler, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s, err := gocron.NewScheduler(gocron.WithClock(clock))
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), every)
			defer cancel()
			if err := c.Warm(ctx); err != nil {
				log.Error().Err(err).Msg("catalog warm-up")
				return
			}
			log.Debug().Msg("catalog warmed")
		}),
		gocron.WithName("catalog-warm"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}

	s.Start()
	warmScheduler = s
	log.Info().Dur("every", every).Msg("catalog warm-up scheduler started")
	return s, nil
}

func StopCacheWarmer() {
	if warmScheduler != nil {
		_ = warmScheduler.Shutdown()
	}
}
