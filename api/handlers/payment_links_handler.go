package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/learnspace/lead-capture-api/pkg/razorpay"
)

type createPaymentLinkRequest struct {
	Amount      int    `json:"amount"`
	CourseName  string `json:"courseName"`
	StudentName string `json:"studentName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// CreatePaymentLinkHandler mints a per-transaction hosted checkout
// link, used instead of the static payment page when the buyer's
// details should be prefilled.
func CreatePaymentLinkHandler(payments razorpay.RazorpayService, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "CreatePaymentLinkHandler"))

	return func(c *fiber.Ctx) error {
		var req createPaymentLinkRequest
		if err := c.BodyParser(&req); err != nil || req.Amount < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Valid amount is required",
			})
		}

		ctx, cancel := context.WithTimeout(c.Context(), razorpayContextTimeout)
		defer cancel()

		link, err := payments.CreatePaymentLink(ctx, razorpay.PaymentLinkRequest{
			Amount:      req.Amount,
			CourseName:  req.CourseName,
			StudentName: req.StudentName,
			Email:       req.Email,
			Phone:       req.Phone,
		})
		if err != nil {
			if errors.Is(err, razorpay.ErrNotConfigured) {
				logger.Error("razorpay credentials missing")
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Internal server error",
				})
			}

			logger.Error("payment link creation failed", slog.Any("err", err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create payment link",
			})
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":     true,
			"paymentLink": link.ShortURL,
			"linkId":      link.ID,
		})
	}
}
