package cratio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/learnspace/lead-capture-api/pkg/lead"
)

// SubmitLead posts one lead to the CRM. Every failure mode, including
// panics in the transport, ends up as a Result with Success=false; the
// caller never sees an error value.
func (s *service) SubmitLead(ctx context.Context, record lead.Record) (result Result) {
	if s.cfg == nil || s.cfg.APIURL == "" || s.cfg.APIKey == "" {
		s.logger.Info("cratio not configured, skipping lead submission")
		return Result{Success: false, Error: ErrNotConfigured}
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("cratio submit panicked", slog.Any("panic", r))
			result = Result{Success: false, Error: "unexpected error submitting lead"}
		}
	}()

	if s.opts.Timeout > 0 {
		if _, hasDeadline := ctx.Deadline(); !hasDeadline {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
			defer cancel()
		}
	}

	log := s.logger.With(
		slog.String("cratio_url", s.cfg.APIURL),
		slog.String("lead_source", record.Source),
	)

	body, err := json.Marshal(payloadFromRecord(record))
	if err != nil {
		log.Error("cratio marshal failed", slog.Any("error", err))
		return Result{Success: false, Error: fmt.Sprintf("marshal lead: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		log.Error("cratio create request failed", slog.Any("error", err))
		return Result{Success: false, Error: fmt.Sprintf("create request: %v", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	start := time.Now()
	resp, err := s.client.Do(req)
	latency := time.Since(start)

	if err != nil {
		log.Error("cratio request failed",
			slog.Any("error", err),
			slog.Duration("latency", latency),
		)
		return Result{Success: false, Error: fmt.Sprintf("submit lead: %v", err)}
	}
	defer resp.Body.Close()

	respBytes, _ := io.ReadAll(resp.Body)

	log.Info("cratio response received",
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", latency),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Success: false, Error: providerError(resp.StatusCode, respBytes, log)}
	}

	var provider providerResponse
	if err := json.Unmarshal(respBytes, &provider); err != nil {
		log.Error("cratio decode failed", slog.Any("error", err))
		return Result{Success: false, Error: fmt.Sprintf("decode cratio response: %v", err)}
	}

	log.Debug("cratio lead accepted", slog.String("lead_id", provider.LeadID))
	return Result{Success: true, LeadID: provider.LeadID}
}

func payloadFromRecord(record lead.Record) leadPayload {
	return leadPayload{
		LeadName:    record.FullName,
		Email:       record.Email,
		Mobile:      record.Phone,
		Background:  record.Background,
		Course:      record.Course,
		LeadSource:  record.Source,
		UTMSource:   record.UTMSource,
		UTMMedium:   record.UTMMedium,
		UTMCampaign: record.UTMCampaign,
	}
}

// providerError turns a non-2xx response into the message surfaced in
// the Result: the provider's own message when the body parses,
// otherwise a generic status-coded one.
func providerError(status int, body []byte, log *slog.Logger) string {
	snippet := string(body)
	if len(snippet) > 800 {
		snippet = snippet[:800] + "..."
	}

	log.Error("cratio non-2xx",
		slog.Int("status", status),
		slog.String("body_snippet", snippet),
	)

	var provider providerResponse
	if err := json.Unmarshal(body, &provider); err == nil && provider.Message != "" {
		return provider.Message
	}

	return fmt.Sprintf("cratio submit failed: status=%d", status)
}
