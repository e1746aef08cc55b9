package handlers

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/learnspace/lead-capture-api/pkg/leadstore"
)

// RecentLeadsHandler exposes the backup buffer to operators, newest
// first. Sits behind the bearer-token middleware.
func RecentLeadsHandler(store *leadstore.Store, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "RecentLeadsHandler"))

	return func(c *fiber.Ctx) error {
		if store == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "lead buffer unavailable",
			})
		}

		var limit int64
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || n < 1 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "limit must be a positive integer",
				})
			}
			limit = n
		}

		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		records, err := store.Recent(ctx, limit)
		if err != nil {
			logger.Error("lead buffer read failed", slog.Any("err", err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"count": len(records),
			"leads": records,
		})
	}
}
