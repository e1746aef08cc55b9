package redis

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Works(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rdb := NewClient(Config{Addr: "localhost:6379"}, logger)

	assert.NotNil(t, rdb, "NewClient should not return nil")
	assert.Equal(t, "localhost:6379", rdb.Options().Addr)
}

func TestClientOptions_Tuning(t *testing.T) {
	opts := clientOptions(Config{Addr: "localhost:6379", DB: 2})

	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, defaultDialTimeout, opts.DialTimeout)
	assert.Equal(t, defaultPoolSize, opts.PoolSize)
	assert.Equal(t, defaultMinIdleConns, opts.MinIdleConns)
}

func TestNewClient_NilLoggerFallsBack(t *testing.T) {
	rdb := NewClient(Config{Addr: "localhost:6379"}, nil)

	assert.NotNil(t, rdb)
}

func TestNewClient_Ping_Set_Get(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping live redis test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rdb := NewClient(Config{Addr: addr}, logger)

	err := Ping(ctx, rdb)
	require.NoErrorf(t, err, "Ping(ctx, rdb) returned an error: %v", err)

	key := "leadstore:test:foo"

	err = rdb.Set(ctx, key, "bar", 5*time.Second).Err()
	require.NoError(t, err)

	val, err := rdb.Get(ctx, key).Result()
	require.NoError(t, err)

	assert.Equal(t, "bar", val)

	_ = rdb.Del(ctx, key).Err()
}
