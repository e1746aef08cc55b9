package funnel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/learnspace/lead-capture-api/pkg/analytics"
	"github.com/learnspace/lead-capture-api/pkg/cratio"
	"github.com/learnspace/lead-capture-api/pkg/lead"
	"github.com/learnspace/lead-capture-api/pkg/pricing"
)

const (
	// Visual-feedback window between entering Redirecting and the
	// actual navigation.
	defaultRedirectDelay = 1 * time.Second
	// Grace period between the navigation and resetting the dialog.
	defaultCloseDelay = 1500 * time.Millisecond
)

type PurchaseOptions struct {
	CRM       cratio.CratioService
	Resolver  *pricing.Resolver
	Analytics analytics.Sink
	Lock      *ScrollLock
	Logger    *slog.Logger

	// Overridable for tests; zero values take the defaults.
	RedirectDelay time.Duration
	CloseDelay    time.Duration
}

// Purchase drives the "buy now" flow: collect contact details for one
// course, record the lead best-effort, then hand the buyer to the
// hosted checkout page. The CRM call is deliberately not a gate, since
// losing a payment opportunity is worse than losing a duplicate CRM
// record.
type Purchase struct {
	mu sync.Mutex

	crm      cratio.CratioService
	resolver *pricing.Resolver
	sink     analytics.Sink
	lock     *ScrollLock
	logger   *slog.Logger

	redirectDelay time.Duration
	closeDelay    time.Duration

	open   bool
	state  State
	course string
	price  int
	fields PurchaseFields
	errs   lead.FieldErrors

	// Bumped on every close so an in-flight submission from a closed
	// (or closed-and-reopened) dialog can tell it has been superseded.
	session int
}

// PurchaseFields is the editable form state; the course is fixed at
// open time.
type PurchaseFields struct {
	FullName string
	Email    string
	Phone    string
}

func NewPurchase(opts PurchaseOptions) *Purchase {
	sink := opts.Analytics
	if sink == nil {
		sink = analytics.Nop{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	redirectDelay := opts.RedirectDelay
	if redirectDelay == 0 {
		redirectDelay = defaultRedirectDelay
	}

	closeDelay := opts.CloseDelay
	if closeDelay == 0 {
		closeDelay = defaultCloseDelay
	}

	return &Purchase{
		crm:           opts.CRM,
		resolver:      opts.Resolver,
		sink:          sink,
		lock:          opts.Lock,
		logger:        logger.With(slog.String("flow", "purchase")),
		redirectDelay: redirectDelay,
		closeDelay:    closeDelay,
		state:         Idle,
		errs:          lead.FieldErrors{},
	}
}

// Open shows the dialog for one course and resolves its price.
func (p *Purchase) Open(course string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.open {
		return
	}

	p.open = true
	p.course = course
	p.price = pricing.CoursePrice(course)

	if p.lock != nil {
		p.lock.Acquire()
	}

	p.sink.Record(analytics.EventModalOpened, map[string]string{
		"source": lead.SourceCoursePurchase,
		"course": course,
	})
}

// Close resets everything; safe from any state.
func (p *Purchase) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}

func (p *Purchase) closeLocked() {
	if !p.open {
		return
	}

	p.open = false
	p.state = Idle
	p.course = ""
	p.price = 0
	p.fields = PurchaseFields{}
	p.errs = lead.FieldErrors{}
	p.session++

	if p.lock != nil {
		p.lock.Release()
	}
}

func (p *Purchase) SetField(field, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Idle {
		return
	}

	switch field {
	case lead.FieldFullName:
		p.fields.FullName = value
	case lead.FieldEmail:
		p.fields.Email = value
	case lead.FieldPhone:
		p.fields.Phone = value
	}

	p.errs.ClearField(field)
}

// Submit runs the whole purchase progression to completion:
// validate, record the lead (best-effort), pause, open the payment
// link exactly once, pause again, reset. Only validation failure or a
// missing price halts with a user-visible error; a CRM failure is
// swallowed.
func (p *Purchase) Submit(ctx context.Context) error {
	p.mu.Lock()

	if !p.open {
		p.mu.Unlock()
		return ErrClosed
	}

	if p.state != Idle {
		p.mu.Unlock()
		return ErrSubmitInFlight
	}

	errs, ok := lead.Validate(lead.Fields{
		FullName: p.fields.FullName,
		Email:    p.fields.Email,
		Phone:    p.fields.Phone,
	})
	if !ok {
		p.errs = errs
		p.mu.Unlock()
		return nil
	}

	if p.price <= 0 {
		p.errs = lead.FieldErrors{lead.FieldEmail: "This course is not available for purchase right now."}
		p.mu.Unlock()
		return nil
	}

	p.errs = lead.FieldErrors{}
	p.state = Loading
	session := p.session

	record := lead.Record{
		FullName: p.fields.FullName,
		Email:    p.fields.Email,
		Phone:    p.fields.Phone,
		Course:   p.course,
		Source:   lead.SourceCoursePurchase,
	}
	checkout := pricing.CheckoutData{
		Course:      p.course,
		StudentName: p.fields.FullName,
		Email:       p.fields.Email,
		Phone:       p.fields.Phone,
		Amount:      p.price,
	}
	p.mu.Unlock()

	p.sink.Record(analytics.EventFormSubmit, map[string]string{
		"course": record.Course,
		"source": lead.SourceCoursePurchase,
	})

	if p.crm != nil {
		result := p.crm.SubmitLead(ctx, record)
		if !result.Success {
			// not a gate; log and move on
			p.logger.Warn("crm submission did not succeed",
				slog.String("error", result.Error),
			)
		}
	}

	p.mu.Lock()
	if !p.stillCurrentLocked(session) {
		p.mu.Unlock()
		return nil
	}
	p.state = Redirecting
	p.mu.Unlock()

	if err := p.wait(ctx, p.redirectDelay); err != nil {
		p.abandon(session)
		return err
	}

	// Closing during the redirect pause cancels the navigation.
	p.mu.Lock()
	current := p.stillCurrentLocked(session)
	p.mu.Unlock()
	if !current {
		return nil
	}

	if err := p.resolver.OpenPaymentLink(checkout); err != nil {
		p.logger.Error("payment link open failed", slog.Any("error", err))
	}

	if err := p.wait(ctx, p.closeDelay); err != nil {
		p.abandon(session)
		return err
	}

	p.mu.Lock()
	if p.stillCurrentLocked(session) {
		p.closeLocked()
	}
	p.mu.Unlock()

	return nil
}

// stillCurrentLocked reports whether this submission still belongs to
// the live dialog session. Caller holds the mutex.
func (p *Purchase) stillCurrentLocked(session int) bool {
	return p.open && p.session == session
}

// abandon returns an interrupted submission's dialog to Idle, unless
// a close already superseded the session.
func (p *Purchase) abandon(session int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stillCurrentLocked(session) {
		p.state = Idle
	}
}

func (p *Purchase) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Purchase) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Purchase) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

func (p *Purchase) Course() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.course
}

// Price is the resolved whole-rupee amount for the open course.
func (p *Purchase) Price() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.price
}

// Errors returns a copy of the current field errors.
func (p *Purchase) Errors() lead.FieldErrors {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := lead.FieldErrors{}
	for k, v := range p.errs {
		out[k] = v
	}
	return out
}
