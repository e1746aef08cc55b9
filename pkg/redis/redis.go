// Package redis builds the shared client backing the circuit breaker
// state and the lead backup buffer.
package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout  = 2 * time.Second
	defaultReadTimeout  = 2 * time.Second
	defaultWriteTimeout = 2 * time.Second
	defaultPoolTimeout  = 2 * time.Second

	// Breaker counters and the occasional buffered lead; a modest pool
	// is plenty.
	defaultPoolSize     = 10
	defaultMinIdleConns = 1
)

type Config struct {
	// Typically "localhost:6379"
	Addr     string
	Password string
	DB       int
}

func clientOptions(c Config) *redis.Options {
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  defaultDialTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		PoolTimeout:  defaultPoolTimeout,
		PoolSize:     defaultPoolSize,
		MinIdleConns: defaultMinIdleConns,
	}
}

// NewClient builds an instrumented client. Connections are lazy, so
// this succeeds even when the server is down; callers that need a
// liveness answer use Ping.
func NewClient(c Config, logger *slog.Logger) *redis.Client {
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(
		slog.String("component", "redis"),
		slog.String("addr", c.Addr),
		slog.Int("db", c.DB),
	)

	rdb := redis.NewClient(clientOptions(c))

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		logger.Warn("redis otel tracing instrumentation failed", slog.Any("err", err))
	}

	if err := redisotel.InstrumentMetrics(rdb); err != nil {
		logger.Warn("redis otel metrics instrumentation failed", slog.Any("err", err))
	}

	logger.Info("redis client ready")

	return rdb
}

// Ping runs under whatever deadline the caller's context carries.
func Ping(ctx context.Context, rdb *redis.Client) error {
	return rdb.Ping(ctx).Err()
}
