package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"

	redisLocal "github.com/learnspace/lead-capture-api/pkg/redis"
)

// Build a handler that returns a 2** status when the service is
// running properly
func GetRDBStatus(rdb *goredis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil {
			return fiber.ErrServiceUnavailable
		}

		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		err := redisLocal.Ping(ctx, rdb)
		if err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusOK)
	}
}
