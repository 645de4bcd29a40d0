package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civic-kit/complaint-service/internal/api/http/handlers"
	"github.com/civic-kit/complaint-service/internal/persistence"
)

func TestHealthLive(t *testing.T) {
	handler := handlers.NewHealthHandler("complaint-service", "1.2.3", &persistence.Postgres{}, &persistence.Redis{})

	app := fiber.New()
	app.Get("/health/live", handler.Live)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "alive", body["status"])
	assert.Equal(t, "complaint-service", body["service"])
	assert.Equal(t, "1.2.3", body["version"])
}

func TestHealthReadyReportsUnavailableDependencies(t *testing.T) {
	handler := handlers.NewHealthHandler("complaint-service", "dev", &persistence.Postgres{}, &persistence.Redis{})

	app := fiber.New()
	app.Get("/health/ready", handler.Ready)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

// The dependency pings must inherit the request's context so the timeout
// middleware bounds them; a cancelled request aborts the probe immediately
// instead of waiting out dials.
func TestHealthReadyInheritsRequestContext(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	handler := handlers.NewHealthHandler("complaint-service", "dev", &persistence.Postgres{}, &persistence.Redis{Client: client})

	app := fiber.New()
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithCancel(c.UserContext())
		cancel()
		c.SetUserContext(ctx)
		return handler.Ready(c)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "context canceled")
}
