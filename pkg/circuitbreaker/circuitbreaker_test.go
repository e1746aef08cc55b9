package circuitbreaker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions_AreUsable(t *testing.T) {
	opts := DefaultOptions()

	assert.Greater(t, opts.FailureThreshold, 0)
	assert.Greater(t, opts.FailWindow, time.Duration(0))
	assert.Greater(t, opts.OpenCoolDown, time.Duration(0))
	assert.Greater(t, opts.HalfOpenLease, time.Duration(0))
	assert.True(t, opts.FailOpen)
}

func TestMemoryBreaker_UsesDefaults(t *testing.T) {
	breaker := NewMemoryBreaker(Options{})

	def := DefaultOptions()
	assert.Equal(t, def.FailureThreshold, breaker.opts.FailureThreshold)
	assert.Equal(t, def.FailWindow, breaker.opts.FailWindow)
	assert.Equal(t, def.OpenCoolDown, breaker.opts.OpenCoolDown)
}

func TestMemoryBreaker_AllowsWhileClosed(t *testing.T) {
	breaker := NewMemoryBreaker(DefaultOptions())

	err := breaker.Allow(context.Background())

	require.NoErrorf(t, err, "a fresh breaker should allow traffic: %v", err)
}

func TestMemoryBreaker_OpensAfterThreshold(t *testing.T) {
	opts := DefaultOptions()
	opts.FailureThreshold = 2

	breaker := NewMemoryBreaker(opts)
	ctx := context.Background()

	breaker.OnFailure(ctx)
	require.NoError(t, breaker.Allow(ctx), "one failure should not open the circuit")

	breaker.OnFailure(ctx)
	require.ErrorIs(t, breaker.Allow(ctx), ErrCircuitOpen)
}

func TestMemoryBreaker_SuccessResets(t *testing.T) {
	opts := DefaultOptions()
	opts.FailureThreshold = 2

	breaker := NewMemoryBreaker(opts)
	ctx := context.Background()

	breaker.OnFailure(ctx)
	breaker.OnSuccess(ctx)
	breaker.OnFailure(ctx)

	require.NoError(t, breaker.Allow(ctx), "success should reset the failure count")
}

func TestMemoryBreaker_ClosesAfterCooldown(t *testing.T) {
	opts := DefaultOptions()
	opts.FailureThreshold = 1
	opts.OpenCoolDown = 10 * time.Millisecond

	breaker := NewMemoryBreaker(opts)
	ctx := context.Background()

	breaker.OnFailure(ctx)
	require.ErrorIs(t, breaker.Allow(ctx), ErrCircuitOpen)

	time.Sleep(20 * time.Millisecond)

	require.NoError(t, breaker.Allow(ctx))
}
