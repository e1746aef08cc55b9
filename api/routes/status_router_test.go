package routes

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *slog.Logger {
	t.Helper()

	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStatusEndpointRegistered(t *testing.T) {
	app := fiber.New()
	StatusRouter(app, nil, newTestLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/status", http.NoBody)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// no redis client wired in this test, so the health probe reports
	// unavailable rather than 404
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
