package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/learnspace/lead-capture-api/api/handlers"
	"github.com/learnspace/lead-capture-api/api/middleware"
	"github.com/learnspace/lead-capture-api/pkg/circuitbreaker"
	"github.com/learnspace/lead-capture-api/pkg/core"
	"github.com/learnspace/lead-capture-api/pkg/cratio"
	"github.com/learnspace/lead-capture-api/pkg/leadstore"
	"github.com/learnspace/lead-capture-api/pkg/razorpay"
)

func RegisterRoutes(app fiber.Router, cfg *core.Config, rdb *redis.Client, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Backend running!")
	})

	api := app.Group("/api")

	crm := cratio.New(&cfg.Cratio, cratio.Options{
		Logger: logger,
	})

	payments := razorpay.New(&cfg.Razorpay, razorpay.Options{
		Logger: logger,
	})

	var store *leadstore.Store
	if rdb != nil {
		store = leadstore.New(rdb, leadstore.Options{Logger: logger})
	}

	withCB := middleware.WithCircuitBreaker(func(name string) circuitbreaker.Breaker {
		if rdb == nil {
			return circuitbreaker.NewMemoryBreaker(circuitbreaker.DefaultOptions())
		}
		return circuitbreaker.NewRedisBreaker(
			rdb,
			name,
			circuitbreaker.DefaultOptions(),
			logger,
		)
	})

	api.Post("/leads/submit", withCB(handlers.SubmitLeadHandler(crm, store, logger)))

	api.Post(
		"/razorpay/create-order",
		withCB(handlers.CreateOrderHandler(payments, logger)),
	)

	api.Post(
		"/razorpay/create-payment-link",
		withCB(handlers.CreatePaymentLinkHandler(payments, logger)),
	)

	recent := api.Group("/leads/recent")
	if !cfg.Admin.Disable {
		verifier, err := middleware.NewBearerVerifier(cfg.Admin)
		if err != nil {
			return fmt.Errorf("failed to initialize admin middleware: %w", err)
		}
		recent.Use(verifier.FiberMiddleware())
	}
	recent.Get("/", handlers.RecentLeadsHandler(store, logger))

	return nil
}
