package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/learnspace/lead-capture-api/pkg/cratio"
	"github.com/learnspace/lead-capture-api/pkg/lead"
	"github.com/learnspace/lead-capture-api/pkg/leadstore"
)

const leadContextTimeout = 15 * time.Second

type leadSubmitRequest struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Background string `json:"background"`
	Course     string `json:"course"`
	Source     string `json:"source"`

	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
}

// SubmitLeadHandler accepts a lead, buffers it locally and forwards it
// to the CRM. Only malformed input produces a non-200: once a lead
// validates, the response is a success even when the CRM is down, so
// the capture surface never turns a backend outage into a lost lead.
func SubmitLeadHandler(crm cratio.CratioService, store *leadstore.Store, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "SubmitLeadHandler"))

	return func(c *fiber.Ctx) error {
		var req leadSubmitRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing required fields",
			})
		}

		record := lead.Record{
			FullName:   req.FullName,
			Email:      req.Email,
			Phone:      req.Phone,
			Background: req.Background,
			Course:     req.Course,
			Source:     req.Source,
		}
		if record.Source == "" {
			record.Source = lead.SourceWebsiteEnquiry
		}

		if !record.HasRequired() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing required fields",
			})
		}

		if errs, ok := lead.ValidateRecord(record); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Invalid fields",
				"fields": errs,
			})
		}

		// referrer attribution wins over whatever the client posted
		utm := lead.UTMFromReferrer(c.Get(fiber.HeaderReferer), lead.UTM{
			Source:   req.UTMSource,
			Medium:   req.UTMMedium,
			Campaign: req.UTMCampaign,
		})
		utm.Apply(&record)

		ctx, cancel := context.WithTimeout(c.Context(), leadContextTimeout)
		defer cancel()

		if store != nil {
			if err := store.Push(ctx, record); err != nil {
				logger.Warn("lead buffer write failed", slog.Any("err", err))
			}
		}

		result := crm.SubmitLead(ctx, record)
		if !result.Success {
			logger.Warn("crm submission failed",
				slog.String("error", result.Error),
				slog.String("email", record.Email),
			)
		}

		leadID := result.LeadID
		if leadID == "" {
			leadID = uuid.NewString()
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"message": "Lead captured successfully",
			"leadId":  leadID,
		})
	}
}
