package funnel

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/learnspace/lead-capture-api/pkg/analytics"
	"github.com/learnspace/lead-capture-api/pkg/lead"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	mu       sync.Mutex
	calls    int
	payloads []EnquiryPayload
	err      error

	// when non-nil, Submit blocks until released
	started chan struct{}
	release chan struct{}
}

func (f *fakeSubmitter) Submit(_ context.Context, payload EnquiryPayload) error {
	f.mu.Lock()
	f.calls++
	f.payloads = append(f.payloads, payload)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}

	return f.err
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnquiry(submitter LeadSubmitter, sink analytics.Sink) *Enquiry {
	return NewEnquiry(EnquiryOptions{
		Submitter: submitter,
		Analytics: sink,
		Logger:    quietLogger(),
	})
}

func fillValid(e *Enquiry) {
	e.SetField(lead.FieldFullName, "Priya Sharma")
	e.SetField(lead.FieldEmail, "priya@example.com")
	e.SetField(lead.FieldPhone, "+919876543210")
	e.SetField("background", "professional")
	e.SetField("course", "Data Science and AI")
}

func TestEnquiry_OpenFiresEventOnce(t *testing.T) {
	rec := &analytics.Recorder{}
	e := newTestEnquiry(&fakeSubmitter{}, rec)

	e.Open()
	e.Open()

	require.Equal(t, []string{analytics.EventModalOpened}, rec.Names())
	assert.True(t, e.IsOpen())
}

func TestEnquiry_SubmitValid(t *testing.T) {
	sub := &fakeSubmitter{}
	rec := &analytics.Recorder{}
	e := newTestEnquiry(sub, rec)

	e.Open()
	fillValid(e)

	require.NoError(t, e.Submit(context.Background()))

	assert.Equal(t, Success, e.State())
	assert.Equal(t, 1, sub.callCount())

	payload := sub.payloads[0]
	assert.Equal(t, "website_enquiry", payload.Source)
	assert.Equal(t, "default", payload.WebhookType)
	assert.Equal(t, "Data Science and AI", payload.Course)

	names := rec.Names()
	require.Equal(t, []string{
		analytics.EventModalOpened,
		analytics.EventFormSubmit,
		analytics.EventLeadGenerated,
	}, names, "submit-intent must precede the result; generated only after success")
}

func TestEnquiry_SubmitInvalidNeverTouchesNetwork(t *testing.T) {
	sub := &fakeSubmitter{}
	rec := &analytics.Recorder{}
	e := newTestEnquiry(sub, rec)

	e.Open()
	e.SetField(lead.FieldFullName, "   ")
	e.SetField(lead.FieldEmail, "not-an-email")
	e.SetField(lead.FieldPhone, "12")

	require.NoError(t, e.Submit(context.Background()))

	assert.Equal(t, Idle, e.State())
	assert.Equal(t, 0, sub.callCount(), "invalid input must not produce a network call")
	assert.Len(t, e.Errors(), 3)

	assert.NotContains(t, rec.Names(), analytics.EventFormSubmit)
}

func TestEnquiry_SubmitFailureIsRecoverable(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("network down")}
	rec := &analytics.Recorder{}
	e := newTestEnquiry(sub, rec)

	e.Open()
	fillValid(e)

	require.NoError(t, e.Submit(context.Background()))

	assert.Equal(t, Idle, e.State(), "failure returns to idle, never a fatal state")
	assert.Contains(t, e.Errors(), lead.FieldEmail, "retry message lands on the email slot")

	names := rec.Names()
	assert.Contains(t, names, analytics.EventFormSubmit, "submit-intent is recorded even when the call fails")
	assert.NotContains(t, names, analytics.EventLeadGenerated)

	// user retries after the outage
	sub.err = nil
	require.NoError(t, e.Submit(context.Background()))
	assert.Equal(t, Success, e.State())
}

func TestEnquiry_RapidResubmitIgnoredWhileLoading(t *testing.T) {
	sub := &fakeSubmitter{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	e := newTestEnquiry(sub, &analytics.Recorder{})

	e.Open()
	fillValid(e)

	done := make(chan error, 1)
	go func() { done <- e.Submit(context.Background()) }()

	<-sub.started
	assert.Equal(t, Loading, e.State())

	err := e.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmitInFlight)

	close(sub.release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, sub.callCount(), "exactly one network call per submit click")
}

func TestEnquiry_CloseWhileSubmitInFlight(t *testing.T) {
	sub := &fakeSubmitter{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	rec := &analytics.Recorder{}
	e := newTestEnquiry(sub, rec)

	e.Open()
	fillValid(e)

	done := make(chan error, 1)
	go func() { done <- e.Submit(context.Background()) }()

	<-sub.started
	e.Close()
	close(sub.release)

	require.NoError(t, <-done)

	assert.False(t, e.IsOpen())
	assert.Equal(t, Idle, e.State(), "the completed call must not write onto the closed dialog")

	// the lead did reach the endpoint, so the generated event fires
	assert.Contains(t, rec.Names(), analytics.EventLeadGenerated)

	e.Open()

	assert.Equal(t, Idle, e.State())
	assert.Empty(t, e.Errors())
	assert.Empty(t, e.Fields().FullName)
}

func TestEnquiry_CloseDuringFailedSubmitLeavesNoStaleError(t *testing.T) {
	sub := &fakeSubmitter{
		err:     errors.New("connection reset"),
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	e := newTestEnquiry(sub, &analytics.Recorder{})

	e.Open()
	fillValid(e)

	done := make(chan error, 1)
	go func() { done <- e.Submit(context.Background()) }()

	<-sub.started
	e.Close()
	close(sub.release)

	require.NoError(t, <-done)

	e.Open()

	assert.Empty(t, e.Errors(), "retry message belongs to the abandoned session")
	assert.Equal(t, Idle, e.State())
}

func TestEnquiry_CloseResetsEverything(t *testing.T) {
	e := newTestEnquiry(&fakeSubmitter{err: errors.New("boom")}, &analytics.Recorder{})

	e.Open()
	fillValid(e)
	_ = e.Submit(context.Background())
	require.NotEmpty(t, e.Errors())

	e.Close()
	e.Open()

	assert.Equal(t, EnquiryFields{}, e.Fields(), "no stale data across opens")
	assert.Empty(t, e.Errors())
	assert.Equal(t, Idle, e.State())
}

func TestEnquiry_EditClearsThatFieldError(t *testing.T) {
	e := newTestEnquiry(&fakeSubmitter{}, &analytics.Recorder{})

	e.Open()
	_ = e.Submit(context.Background()) // everything empty, all errors set

	require.Contains(t, e.Errors(), lead.FieldEmail)

	e.SetField(lead.FieldEmail, "p")

	assert.NotContains(t, e.Errors(), lead.FieldEmail)
	assert.Contains(t, e.Errors(), lead.FieldPhone, "other errors remain")
}

func TestEnquiry_SubmitWhileClosed(t *testing.T) {
	e := newTestEnquiry(&fakeSubmitter{}, &analytics.Recorder{})

	err := e.Submit(context.Background())
	require.ErrorIs(t, err, ErrClosed)
}

func TestEnquiry_ScrollLockAcquireRelease(t *testing.T) {
	page := &countingPage{}
	lock := NewScrollLock(page)

	e := NewEnquiry(EnquiryOptions{
		Submitter: &fakeSubmitter{},
		Lock:      lock,
		Logger:    quietLogger(),
	})

	e.Open()
	assert.Equal(t, 1, page.locks)

	e.Close()
	assert.Equal(t, 1, page.unlocks)
}
