package handlers

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestGetRDBStatus_NoClient(t *testing.T) {
	app := fiber.New()
	app.Get("/status", GetRDBStatus(nil))

	resp := getRecent(t, app, "/status")

	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestGetRDBStatus_UnreachableRedis(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "localhost:1",
		DialTimeout: 50 * time.Millisecond,
		ReadTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})

	app := fiber.New()
	app.Get("/status", GetRDBStatus(rdb))

	resp := getRecent(t, app, "/status")

	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
