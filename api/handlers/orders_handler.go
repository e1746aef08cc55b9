package handlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/learnspace/lead-capture-api/pkg/razorpay"
)

const razorpayContextTimeout = 20 * time.Second

type createOrderRequest struct {
	Amount      int    `json:"amount"`
	CourseName  string `json:"courseName"`
	StudentName string `json:"studentName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// CreateOrderHandler creates a provider-side payment order ahead of
// checkout.
func CreateOrderHandler(payments razorpay.RazorpayService, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "CreateOrderHandler"))

	return func(c *fiber.Ctx) error {
		var req createOrderRequest
		if err := c.BodyParser(&req); err != nil || req.Amount < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Valid amount is required",
			})
		}

		ctx, cancel := context.WithTimeout(c.Context(), razorpayContextTimeout)
		defer cancel()

		order, err := payments.CreateOrder(ctx, razorpay.OrderRequest{
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

			logger.Error("order creation failed", slog.Any("err", err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create payment order",
			})
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"orderId":  order.ID,
			"amount":   order.Amount,
			"currency": "INR",
		})
	}
}
