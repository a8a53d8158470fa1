package database

import (
	"context"
	"flight_desk/config"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var Redis *redis.Client

// ConnectRedis opens the catalog cache. Without REDIS_ADDR, or when the
// server does not answer, Redis stays nil and the catalog reads straight
// from postgres.
func ConnectRedis(log zerolog.Logger) *redis.Client {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		log.Warn().Msg("REDIS_ADDR not set, catalog cache disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Config("REDIS_PASSWORD"),
		DB:       config.Int("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("addr", addr).Msg("redis unreachable, catalog cache disabled")
		client.Close()
		return nil
	}
	log.Info().Str("addr", addr).Msg("connection opened to redis")
	Redis = client
	return client
}
