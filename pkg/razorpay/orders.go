package razorpay

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

const currencyINR = "INR"

// CreateOrder registers an order with Razorpay. The receipt is derived
// from the current timestamp; notes carry course and contact metadata
// so a completed payment can be matched back to the lead.
func (s *service) CreateOrder(ctx context.Context, req OrderRequest) (Order, error) {
	if !s.configured() {
		return Order{}, ErrNotConfigured
	}

	payload := orderPayload{
		// Razorpay wants minor units (paise)
		Amount:   req.Amount * 100,
		Currency: currencyINR,
		Receipt:  fmt.Sprintf("rcpt_%d", time.Now().UnixMilli()),
		Notes:    orderNotes(req),
	}

	var order Order
	err := s.post(ctx, "/orders", payload, &order)
	if err != nil {
		return Order{}, err
	}

	return order, nil
}

func orderNotes(req OrderRequest) map[string]string {
	notes := map[string]string{
		"source": "website",
	}
	if req.CourseName != "" {
		notes["course"] = req.CourseName
	}
	if req.StudentName != "" {
		notes["student_name"] = req.StudentName
	}
	if req.Email != "" {
		notes["email"] = req.Email
	}
	if req.Phone != "" {
		notes["phone"] = req.Phone
	}
	return notes
}

// post issues one authenticated call and decodes the response into
// out. Non-2xx responses come back as errors carrying the provider's
// description when present.
func (s *service) post(ctx context.Context, path string, payload, out any) error {
	if s.opts.Timeout > 0 {
		if _, hasDeadline := ctx.Deadline(); !hasDeadline {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
			defer cancel()
		}
	}

	log := s.logger.With(slog.String("path", path))

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error("razorpay marshal failed", slog.Any("error", err))
		return fmt.Errorf("marshal razorpay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		log.Error("razorpay create request failed", slog.Any("error", err))
		return fmt.Errorf("create razorpay request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(s.cfg.KeyID, s.cfg.KeySecret)

	start := time.Now()
	resp, err := s.client.Do(req)
	latency := time.Since(start)

	if err != nil {
		log.Error("razorpay request failed",
			slog.Any("error", err),
			slog.Duration("latency", latency),
		)
		return fmt.Errorf("razorpay request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, _ := io.ReadAll(resp.Body)

	log.Info("razorpay response received",
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", latency),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(respBytes)
		if len(snippet) > 800 {
			snippet = snippet[:800] + "..."
		}

		log.Error("razorpay non-2xx",
			slog.Int("status", resp.StatusCode),
			slog.String("body_snippet", snippet),
		)

		var pe providerError
		if jsonErr := json.Unmarshal(respBytes, &pe); jsonErr == nil && pe.Error.Description != "" {
			return fmt.Errorf("razorpay: %s (status=%d)", pe.Error.Description, resp.StatusCode)
		}

		return fmt.Errorf("razorpay call failed: status=%d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBytes, out); err != nil {
		log.Error("razorpay decode failed", slog.Any("error", err))
		return fmt.Errorf("decode razorpay response: %w", err)
	}

	return nil
}
