package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/learnspace/lead-capture-api/api"
	"github.com/learnspace/lead-capture-api/pkg/core"
	"github.com/learnspace/lead-capture-api/pkg/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := core.LoadEnv(); err != nil {
		log.Printf("env files not loaded: %v", err)
	}

	cfg, err := core.NewConfigFromEnv()
	if err != nil {
		log.Printf("invalid configuration: %v", err)
		return
	}

	otelService, err := core.NewOtelService(ctx, &cfg)
	if err != nil {
		log.Printf("otel init failed, continuing without: %v", err)
		otelService = core.NopOtelService{}
	}

	logger := core.NewLoggerWithOtel(cfg, otelService)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		otelService.Shutdown(shutdownCtx, logger)
	}()

	rdb := redis.NewClient(redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)

	app, err := api.New(&api.Config{
		Otel:   otelService,
		Logger: logger,
		Config: cfg,
	}, rdb)
	if err != nil {
		logger.Error("failed to build app", "err", err)
		return
	}

	logger.Info("starting server",
		"port", cfg.Port,
		"environment", cfg.Environment,
	)

	if err := runServer(ctx, app, fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Error("server error", "err", err)
	}
}

func runServer(ctx context.Context, app *fiber.App, addr string) error {
	srvErr := make(chan error, 1)

	go func() {
		srvErr <- app.Listen(addr)
	}()

	select {
	case err := <-srvErr:
		return err
	case <-ctx.Done():
	}

	// inline if since this err is only needed in the scope of this if statement.
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	return nil
}
