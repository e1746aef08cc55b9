package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/learnspace/lead-capture-api/pkg/analytics"
	"github.com/learnspace/lead-capture-api/pkg/razorpay"
)

// LinkOpener opens a URL in a new browsing context. Injected so the
// purchase flow can be exercised without a browser.
type LinkOpener interface {
	Open(url string) error
}

// CheckoutData is what the purchase flow knows about the buyer at
// redirect time.
type CheckoutData struct {
	Course      string
	StudentName string
	Email       string
	Phone       string
	Amount      int
}

type ResolverOptions struct {
	// Fixed hosted checkout page for the default purchase path.
	LinkURL string
	Opener  LinkOpener
	// Optional; begin_checkout is skipped when absent.
	Analytics analytics.Sink
	// Optional; enables CreateDynamicLink.
	Payments razorpay.RazorpayService
	Logger   *slog.Logger
}

// Resolver owns the payment-redirect side effects of the purchase
// flow.
type Resolver struct {
	linkURL  string
	opener   LinkOpener
	sink     analytics.Sink
	payments razorpay.RazorpayService
	logger   *slog.Logger
}

func NewResolver(opts ResolverOptions) *Resolver {
	sink := opts.Analytics
	if sink == nil {
		sink = analytics.Nop{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		linkURL:  opts.LinkURL,
		opener:   opts.Opener,
		sink:     sink,
		payments: opts.Payments,
		logger:   logger.With(slog.String("component", "pricing")),
	}
}

// OpenPaymentLink opens the fixed hosted checkout page. The URL does
// not carry amount or identity; reconciliation happens out of band
// unless the dynamic-link path is used instead.
func (r *Resolver) OpenPaymentLink(data CheckoutData) error {
	if r.opener == nil {
		return fmt.Errorf("no link opener configured")
	}

	r.sink.Record(analytics.EventBeginCheckout, map[string]string{
		"course": data.Course,
		"value":  strconv.Itoa(data.Amount),
	})

	if err := r.opener.Open(r.linkURL); err != nil {
		r.logger.Error("failed to open payment link",
			slog.String("url", r.linkURL),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

// CreateDynamicLink asks Razorpay for a per-transaction link carrying
// the buyer's identity, so the payment can be reconciled back to the
// lead. Extension path; not used by the default purchase flow.
func (r *Resolver) CreateDynamicLink(ctx context.Context, data CheckoutData) (string, error) {
	if r.payments == nil {
		return "", fmt.Errorf("dynamic payment links not configured")
	}

	link, err := r.payments.CreatePaymentLink(ctx, razorpay.PaymentLinkRequest{
		Amount:      data.Amount,
		CourseName:  data.Course,
		StudentName: data.StudentName,
		Email:       data.Email,
		Phone:       data.Phone,
	})
	if err != nil {
		return "", err
	}

	return link.ShortURL, nil
}
