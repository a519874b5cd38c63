package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ErrorHandler logs unhandled errors and renders the error page.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "An unexpected error occurred. Please try again later."

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			if code == fiber.StatusNotFound {
				message = "Page not found."
			}
		}
		if code >= fiber.StatusInternalServerError {
			log.WithError(err).WithFields(logrus.Fields{
				"method": c.Method(),
				"path":   c.Path(),
			}).Error("Unhandled request error")
		}

		c.Status(code)
		if renderErr := render(c, "error", fiber.Map{"Title": "Error", "Message": message}); renderErr != nil {
			return c.SendString(message)
		}
		return nil
	}
}
