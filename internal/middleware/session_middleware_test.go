package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"storefront/internal/logging"
	"storefront/internal/middleware"
	"storefront/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.Session(session.NewManager(session.Config{}), logging.Discard()))

	app.Get("/as/customer", func(c *fiber.Ctx) error {
		session.FromContext(c).SignIn(session.CustomerIdentity(1))
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/as/admin", func(c *fiber.Ctx) error {
		session.FromContext(c).SignIn(session.AdminIdentity())
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/checkout", middleware.CustomerRequired(), func(c *fiber.Ctx) error {
		return c.SendString("checkout")
	})
	app.Get("/admin/dashboard", middleware.AdminRequired(), func(c *fiber.Ctx) error {
		return c.SendString("dashboard")
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		session.FromContext(c).Error("Something broke.")
		return fiber.ErrTeapot
	})
	app.Get("/notices", func(c *fiber.Ctx) error {
		notices := session.FromContext(c).PopNotices()
		if len(notices) == 0 {
			return c.SendString("")
		}
		return c.SendString(notices[0].Message)
	})
	return app
}

func get(t *testing.T, app *fiber.App, path string, cookies []*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestGuards_RedirectAnonymousVisitors(t *testing.T) {
	app := setupApp()

	resp := get(t, app, "/checkout", nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = get(t, app, "/admin/dashboard", nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))
}

func TestGuards_AllowMatchingIdentity(t *testing.T) {
	app := setupApp()

	customer := get(t, app, "/as/customer", nil).Cookies()
	require.NotEmpty(t, customer)
	resp := get(t, app, "/checkout", customer)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "checkout", body(t, resp))

	resp = get(t, app, "/admin/dashboard", customer)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode, "customers are not administrators")

	admin := get(t, app, "/as/admin", nil).Cookies()
	resp = get(t, app, "/admin/dashboard", admin)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = get(t, app, "/checkout", admin)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode, "administrators cannot check out")
}

func TestSession_SavedWhenHandlerFails(t *testing.T) {
	app := setupApp()

	resp := get(t, app, "/fail", nil)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	assert.Equal(t, "Something broke.", body(t, get(t, app, "/notices", cookies)))
	assert.Empty(t, body(t, get(t, app, "/notices", cookies)), "notices are shown once")
}

func TestSession_ErrorPageConsumesNotices(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			message := ""
			if notices := session.FromContext(c).PopNotices(); len(notices) > 0 {
				message = notices[0].Message
			}
			return c.Status(fiber.StatusNotFound).SendString(message)
		},
	})
	app.Use(middleware.Session(session.NewManager(session.Config{}), logging.Discard()))
	app.Get("/notify", func(c *fiber.Ctx) error {
		session.FromContext(c).Error("Invalid credentials.")
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/notices", func(c *fiber.Ctx) error {
		return c.SendString(strconv.Itoa(len(session.FromContext(c).PopNotices())))
	})

	cookies := get(t, app, "/notify", nil).Cookies()
	require.NotEmpty(t, cookies)

	resp := get(t, app, "/no-such-page", cookies)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Invalid credentials.", body(t, resp))

	assert.Equal(t, "0", body(t, get(t, app, "/notices", cookies)))
}
