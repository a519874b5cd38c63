package middleware

import (
	"storefront/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Session loads the per-browser session state before the handler runs and
// saves it afterwards. A handler error is passed to the app's error handler
// first.
func Session(manager *session.Manager, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := manager.Load(c)
		if err != nil {
			log.WithError(err).Warn("Discarding unreadable session")
			state = session.NewState()
		}
		session.Attach(c, state)

		// Errors are rendered before saving so that notices shown on the
		// error page are consumed.
		if err := c.Next(); err != nil {
			if renderErr := c.App().ErrorHandler(c, err); renderErr != nil {
				log.WithError(renderErr).Error("Failed to handle request error")
				c.Status(fiber.StatusInternalServerError)
			}
		}

		if err := manager.Save(c, state); err != nil {
			log.WithError(err).Error("Failed to save session")
			return err
		}
		return nil
	}
}

// CustomerRequired redirects visitors that are not logged in as a customer
// to the login page.
func CustomerRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !session.FromContext(c).Identity.IsCustomer() {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// AdminRequired redirects anyone but the administrator to the admin login.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !session.FromContext(c).Identity.IsAdmin() {
			return c.Redirect("/admin/login", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
