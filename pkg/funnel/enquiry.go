package funnel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/learnspace/lead-capture-api/pkg/analytics"
	"github.com/learnspace/lead-capture-api/pkg/lead"
)

// FocusDelay is how long the UI waits after opening before moving
// focus to the first field, so the open transition can start.
const FocusDelay = 100 * time.Millisecond

// retry message attached to the email field slot, which doubles as the
// generic error surface of the form.
const msgSubmitFailed = "Something went wrong. Please try again."

type EnquiryOptions struct {
	Submitter LeadSubmitter
	Analytics analytics.Sink
	// Shared page scroll lock; may be nil in headless use.
	Lock   *ScrollLock
	Logger *slog.Logger
}

// Enquiry drives the "talk to us" flow: collect contact details and a
// course interest, post them to the lead endpoint, acknowledge.
type Enquiry struct {
	mu sync.Mutex

	submitter LeadSubmitter
	sink      analytics.Sink
	lock      *ScrollLock
	logger    *slog.Logger

	open   bool
	state  State
	fields EnquiryFields
	errs   lead.FieldErrors

	// Bumped on every close so an in-flight submission from a closed
	// (or closed-and-reopened) dialog can tell it has been superseded.
	session int
}

// EnquiryFields is the editable form state.
type EnquiryFields struct {
	FullName   string
	Email      string
	Phone      string
	Background string
	Course     string
}

func NewEnquiry(opts EnquiryOptions) *Enquiry {
	sink := opts.Analytics
	if sink == nil {
		sink = analytics.Nop{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Enquiry{
		submitter: opts.Submitter,
		sink:      sink,
		lock:      opts.Lock,
		logger:    logger.With(slog.String("flow", "enquiry")),
		state:     Idle,
		errs:      lead.FieldErrors{},
	}
}

// Open makes the dialog visible, locks page scroll and fires the
// opened event exactly once per open. Opening an already-open dialog
// is a no-op.
func (e *Enquiry) Open() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.open {
		return
	}

	e.open = true
	if e.lock != nil {
		e.lock.Acquire()
	}

	e.sink.Record(analytics.EventModalOpened, map[string]string{
		"source": lead.SourceWebsiteEnquiry,
	})
}

// Close hides the dialog and resets every field and error so nothing
// stale survives to the next open. Safe to call from any state and
// any close path (success acknowledgement, escape, backdrop, button).
func (e *Enquiry) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.open {
		return
	}

	e.open = false
	e.state = Idle
	e.fields = EnquiryFields{}
	e.errs = lead.FieldErrors{}
	e.session++

	if e.lock != nil {
		e.lock.Release()
	}
}

// SetField updates one editable field and clears that field's error,
// if any.
func (e *Enquiry) SetField(field, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Loading {
		return
	}

	switch field {
	case lead.FieldFullName:
		e.fields.FullName = value
	case lead.FieldEmail:
		e.fields.Email = value
	case lead.FieldPhone:
		e.fields.Phone = value
	case "background":
		e.fields.Background = value
	case "course":
		e.fields.Course = value
	}

	e.errs.ClearField(field)
}

// Submit runs one submission attempt to completion. Invalid input
// stays Idle with field errors and never touches the network. The
// submit-intent event fires before the call resolves; the generated
// event fires only on a confirmed success.
func (e *Enquiry) Submit(ctx context.Context) error {
	e.mu.Lock()

	if !e.open {
		e.mu.Unlock()
		return ErrClosed
	}

	if e.state == Loading {
		e.mu.Unlock()
		return ErrSubmitInFlight
	}

	errs, ok := lead.Validate(lead.Fields{
		FullName: e.fields.FullName,
		Email:    e.fields.Email,
		Phone:    e.fields.Phone,
	})
	if !ok {
		e.errs = errs
		e.state = Idle
		e.mu.Unlock()
		return nil
	}

	e.errs = lead.FieldErrors{}
	e.state = Loading
	session := e.session
	payload := EnquiryPayload{
		FullName:    e.fields.FullName,
		Email:       e.fields.Email,
		Phone:       e.fields.Phone,
		Background:  e.fields.Background,
		Course:      e.fields.Course,
		Source:      lead.SourceWebsiteEnquiry,
		WebhookType: "default",
	}
	e.mu.Unlock()

	e.sink.Record(analytics.EventFormSubmit, map[string]string{
		"course": payload.Course,
		"source": lead.SourceWebsiteEnquiry,
	})

	err := e.submitter.Submit(ctx, payload)

	// The lead reached the endpoint regardless of what happened to the
	// dialog meanwhile, so the generated event still fires.
	if err == nil {
		e.sink.Record(analytics.EventLeadGenerated, map[string]string{
			"course": payload.Course,
		})
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// A close during the call supersedes this session; don't write the
	// outcome onto a closed or reopened dialog.
	if !e.open || e.session != session {
		return nil
	}

	if err != nil {
		e.logger.Warn("enquiry submission failed", slog.Any("error", err))
		e.state = Idle
		e.errs[lead.FieldEmail] = msgSubmitFailed
		return nil
	}

	e.state = Success

	return nil
}

func (e *Enquiry) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Enquiry) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

// Errors returns a copy of the current field errors.
func (e *Enquiry) Errors() lead.FieldErrors {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := lead.FieldErrors{}
	for k, v := range e.errs {
		out[k] = v
	}
	return out
}

// Fields returns a copy of the current form state.
func (e *Enquiry) Fields() EnquiryFields {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fields
}
