package funnel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// EnquiryPayload is the wire shape the enquiry flow posts to the lead
// endpoint.
type EnquiryPayload struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Background  string `json:"background,omitempty"`
	Course      string `json:"course,omitempty"`
	Source      string `json:"source"`
	WebhookType string `json:"webhookType"`
}

// LeadSubmitter delivers an enquiry to the lead endpoint. A non-nil
// error covers both transport failure and non-2xx responses; the
// enquiry flow treats them identically as recoverable.
type LeadSubmitter interface {
	Submit(ctx context.Context, payload EnquiryPayload) error
}

type HTTPTransport interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPSubmitterOptions configures the real submitter. The endpoint is
// an explicit configuration value resolved once at the application
// boundary, not an environment branch inside the flow.
type HTTPSubmitterOptions struct {
	Endpoint   string
	HTTPClient HTTPTransport
	Logger     *slog.Logger
	Timeout    time.Duration
}

const defaultSubmitTimeout = 10 * time.Second

type httpSubmitter struct {
	endpoint string
	client   HTTPTransport
	logger   *slog.Logger
	timeout  time.Duration
}

var _ LeadSubmitter = (*httpSubmitter)(nil)

func NewHTTPSubmitter(opts HTTPSubmitterOptions) LeadSubmitter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultSubmitTimeout}
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultSubmitTimeout
	}

	return &httpSubmitter{
		endpoint: opts.Endpoint,
		client:   client,
		logger:   logger.With(slog.String("component", "lead-submitter")),
		timeout:  timeout,
	}
}

func (s *httpSubmitter) Submit(ctx context.Context, payload EnquiryPayload) error {
	if s.timeout > 0 {
		if _, hasDeadline := ctx.Deadline(); !hasDeadline {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal enquiry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create enquiry request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	latency := time.Since(start)

	if err != nil {
		s.logger.Error("enquiry submit failed",
			slog.Any("error", err),
			slog.Duration("latency", latency),
		)
		return fmt.Errorf("submit enquiry: %w", err)
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	s.logger.Info("enquiry submit response",
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", latency),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("enquiry submit failed: status=%d", resp.StatusCode)
	}

	return nil
}
