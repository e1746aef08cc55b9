// Package analytics defines the event sink capability the capture
// flows report into. The sink is always injected; controllers never
// reach for an ambient global.
package analytics

import (
	"log/slog"
	"sync"
)

// Event names fired by the capture flows.
const (
	EventModalOpened   = "modal_opened"
	EventFormSubmit    = "form_submit"
	EventLeadGenerated = "lead_generated"
	EventBeginCheckout = "begin_checkout"
)

type Sink interface {
	Record(event string, attrs map[string]string)
}

// Nop discards every event. Useful default so controllers never need
// nil checks at call sites.
type Nop struct{}

var _ Sink = Nop{}

func (Nop) Record(string, map[string]string) {}

// SlogSink writes events to the structured log; downstream pipelines
// pick them up from there.
type SlogSink struct {
	logger *slog.Logger
}

var _ Sink = (*SlogSink)(nil)

func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogSink{
		logger: logger.With(slog.String("component", "analytics")),
	}
}

func (s *SlogSink) Record(event string, attrs map[string]string) {
	args := make([]any, 0, len(attrs)*2+2)
	args = append(args, slog.String("event", event))
	for k, v := range attrs {
		args = append(args, slog.String(k, v))
	}

	s.logger.Info("analytics event", args...)
}

// Recorder captures events for assertions in tests.
type Recorder struct {
	mu     sync.Mutex
	events []RecordedEvent
}

type RecordedEvent struct {
	Name  string
	Attrs map[string]string
}

var _ Sink = (*Recorder)(nil)

func (r *Recorder) Record(event string, attrs map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make(map[string]string, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}

	r.events = append(r.events, RecordedEvent{Name: event, Attrs: copied})
}

func (r *Recorder) Events() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]RecordedEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Names returns just the event names in firing order.
func (r *Recorder) Names() []string {
	events := r.Events()

	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.Name
	}
	return names
}
