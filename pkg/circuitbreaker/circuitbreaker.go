package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

const (
	defaultFailureThreshold = 5
	defaultFailWindow       = 10
	defaultOpenCooldown     = 30
	defaultHalfOpenLease    = 5
	defaultFailOpen         = true
	defaultPrefix           = "cb:"
)

type Breaker interface {
	Allow(ctx context.Context) error
	OnSuccess(ctx context.Context)
	OnFailure(ctx context.Context)
}

type Options struct {
	// Number of failures before entering open state.
	FailureThreshold int
	// Time between failures to count as an outage.
	FailWindow time.Duration
	// How long to stay in open state before allowing traffic again.
	OpenCoolDown time.Duration
	// Time lease to allow only one instance at a time to probe whether
	// the circuit can be closed again.
	HalfOpenLease time.Duration
	// If the shared state store is unreachable and the breaker is
	// blind, this determines what Allow does.
	// TRUE: allows requests to proceed without the breaker participating
	// FALSE: blocks requests
	FailOpen bool
	// Key prefix to prevent name clashing.
	Prefix string
}

func DefaultOptions() Options {
	return Options{
		FailureThreshold: defaultFailureThreshold,
		FailWindow:       defaultFailWindow * time.Second,
		OpenCoolDown:     defaultOpenCooldown * time.Second,
		HalfOpenLease:    defaultHalfOpenLease * time.Second,
		FailOpen:         defaultFailOpen,
		Prefix:           defaultPrefix,
	}
}

// MemoryBreaker is a process-local Breaker. It backs routes when no
// Redis is available; state is not shared between instances.
type MemoryBreaker struct {
	mu        sync.Mutex
	opts      Options
	fails     int
	firstFail time.Time
	openUntil time.Time
}

var _ Breaker = (*MemoryBreaker)(nil)

func NewMemoryBreaker(opts Options) *MemoryBreaker {
	if opts.FailureThreshold <= 0 {
		opts = DefaultOptions()
	}

	return &MemoryBreaker{opts: opts}
}

func (b *MemoryBreaker) Allow(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if time.Now().Before(b.openUntil) {
		return ErrCircuitOpen
	}
	return nil
}

func (b *MemoryBreaker) OnSuccess(context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.fails = 0
	b.openUntil = time.Time{}
}

func (b *MemoryBreaker) OnFailure(context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if b.fails == 0 || now.Sub(b.firstFail) > b.opts.FailWindow {
		b.fails = 0
		b.firstFail = now
	}

	b.fails++
	if b.fails >= b.opts.FailureThreshold {
		b.openUntil = now.Add(b.opts.OpenCoolDown)
		b.fails = 0
	}
}
