package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnspace/lead-capture-api/pkg/circuitbreaker"
	"github.com/learnspace/lead-capture-api/pkg/core"
)

func TestNewBearerVerifierValidation(t *testing.T) {
	_, err := NewBearerVerifier(core.AdminConfig{Issuer: "https://auth.example"})
	require.Error(t, err)

	_, err = NewBearerVerifier(core.AdminConfig{JWKSURL: "https://auth.example/jwks"})
	require.Error(t, err)

	v, err := NewBearerVerifier(core.AdminConfig{
		JWKSURL: "https://auth.example/jwks",
		Issuer:  "https://auth.example",
	})
	require.NoError(t, err)
	require.NotNil(t, v)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", bearerToken("Bearer abc.def.ghi"))
	assert.Equal(t, "", bearerToken(""))
	assert.Equal(t, "", bearerToken("Basic dXNlcjpwYXNz"))
	assert.Equal(t, "", bearerToken("abc.def.ghi"))
}

func TestFiberMiddlewareRejectsMissingToken(t *testing.T) {
	v, err := NewBearerVerifier(core.AdminConfig{
		JWKSURL: "https://auth.example/jwks",
		Issuer:  "https://auth.example",
	})
	require.NoError(t, err)

	app := fiber.New()
	app.Use(v.FiberMiddleware())
	app.Get("/protected", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for _, header := range []string{"", "Basic dXNlcjpwYXNz", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", http.NoBody)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}

		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header: %q", header)
	}
}

type scriptedBreaker struct {
	mu       sync.Mutex
	allowErr error
	success  int
	failure  int
}

func (b *scriptedBreaker) Allow(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.allowErr
}

func (b *scriptedBreaker) OnSuccess(context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.success++
}

func (b *scriptedBreaker) OnFailure(context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failure++
}

func breakerApp(breaker circuitbreaker.Breaker, handler fiber.Handler) *fiber.App {
	withCB := WithCircuitBreaker(func(string) circuitbreaker.Breaker { return breaker })

	app := fiber.New()
	app.Get("/guarded", withCB(handler))
	return app
}

func testRequest(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/guarded", http.NoBody)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestWithCircuitBreakerPassesThrough(t *testing.T) {
	breaker := &scriptedBreaker{}
	app := breakerApp(breaker, func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp := testRequest(t, app)
	resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, breaker.success)
	assert.Equal(t, 0, breaker.failure)
}

func TestWithCircuitBreakerRecordsFailures(t *testing.T) {
	breaker := &scriptedBreaker{}
	app := breakerApp(breaker, func(c *fiber.Ctx) error {
		return errors.New("upstream exploded")
	})

	resp := testRequest(t, app)
	resp.Body.Close()

	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 1, breaker.failure)
}

func TestWithCircuitBreakerOpenCircuit(t *testing.T) {
	breaker := &scriptedBreaker{allowErr: circuitbreaker.ErrCircuitOpen}
	app := breakerApp(breaker, func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp := testRequest(t, app)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "CIRCUIT_OPEN", body["code"])
}

func TestWithCircuitBreakerBlindStore(t *testing.T) {
	breaker := &scriptedBreaker{allowErr: errors.New("redis unreachable")}
	app := breakerApp(breaker, func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp := testRequest(t, app)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "BREAKER_ERROR", body["code"])
}

func TestWithCircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	opts := circuitbreaker.DefaultOptions()
	opts.FailureThreshold = 2
	opts.FailWindow = time.Minute
	opts.OpenCoolDown = time.Minute

	breaker := circuitbreaker.NewMemoryBreaker(opts)
	app := breakerApp(breaker, func(c *fiber.Ctx) error {
		return errors.New("upstream exploded")
	})

	for i := 0; i < 2; i++ {
		resp := testRequest(t, app)
		resp.Body.Close()
		require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	}

	resp := testRequest(t, app)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "CIRCUIT_OPEN", body["code"])
}
