// Package razorpay talks server-to-server to Razorpay's Orders and
// Payment Links APIs using basic auth over the key id/secret pair.
package razorpay

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/learnspace/lead-capture-api/pkg/core"
)

// ErrNotConfigured is returned when the key pair is absent. Unlike the
// CRM, payment credentials are mandatory for the endpoints that need
// them: callers fail closed on this.
var ErrNotConfigured = errors.New("razorpay credentials not configured")

type RazorpayService interface {
	CreateOrder(ctx context.Context, req OrderRequest) (Order, error)
	CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (PaymentLink, error)
}

type HTTPTransport interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	// Override for testing the HTTP client
	HTTPClient HTTPTransport
	// Structured logger using slog package
	Logger *slog.Logger
	// Context timeout
	Timeout time.Duration
}

const defaultTimeout = 15 * time.Second

type service struct {
	cfg    *core.RazorpayConfig
	client HTTPTransport
	logger *slog.Logger
	opts   Options
}

func New(cfg *core.RazorpayConfig, opts Options) RazorpayService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(
		slog.String("component", "payments"),
		slog.String("vendor", "razorpay"),
	)

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}

	return &service{
		cfg:    cfg,
		client: client,
		logger: logger,
		opts:   opts,
	}
}

func (s *service) configured() bool {
	return s.cfg != nil && s.cfg.KeyID != "" && s.cfg.KeySecret != ""
}
