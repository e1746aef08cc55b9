// Package cratio submits captured leads to the Cratio CRM. Missing
// configuration is an expected degraded mode: the client reports it in
// the result instead of calling out, and the rest of the capture flow
// carries on.
package cratio

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/learnspace/lead-capture-api/pkg/core"
	"github.com/learnspace/lead-capture-api/pkg/lead"
)

type CratioService interface {
	SubmitLead(ctx context.Context, record lead.Record) Result
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

const defaultTimeout = 10 * time.Second

type service struct {
	cfg    *core.CratioConfig
	client HTTPTransport
	logger *slog.Logger
	opts   Options
}

func New(cfg *core.CratioConfig, opts Options) CratioService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(
		slog.String("component", "crm"),
		slog.String("vendor", "cratio"),
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
