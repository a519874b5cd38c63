package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"storefront/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsEndpoint(t *testing.T) {
	app := fiber.New()
	app.Use(metrics.Middleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/metrics", metrics.Handler())

	metrics.RecordOrder(decimal.RequireFromString("22.50"))
	metrics.RecordCheckoutFailure()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `storefront_http_requests_total{method="GET",route="/ping",status="200"} 1`)
	assert.Contains(t, text, "storefront_checkout_orders_total")
	assert.Contains(t, text, "storefront_checkout_revenue_total")
	assert.Contains(t, text, "storefront_checkout_failures_total")
}
