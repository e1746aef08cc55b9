package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/learnspace/lead-capture-api/api/handlers"
	"github.com/learnspace/lead-capture-api/api/middleware"
	"github.com/learnspace/lead-capture-api/pkg/circuitbreaker"
)

func StatusRouter(app fiber.Router, rdb *redis.Client, logger *slog.Logger) {
	withBreaker := middleware.WithCircuitBreaker(func(name string) circuitbreaker.Breaker {
		if rdb == nil {
			return circuitbreaker.NewMemoryBreaker(circuitbreaker.DefaultOptions())
		}
		return circuitbreaker.NewRedisBreaker(rdb, name, circuitbreaker.DefaultOptions(), logger)
	})

	app.Get("/status", withBreaker(handlers.GetRDBStatus(rdb)))
}
