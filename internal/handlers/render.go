package handlers

import (
	"storefront/internal/session"

	"github.com/gofiber/fiber/v2"
)

// render executes a page template with the values every page needs: the
// pending notices, the cart badge and the session identity.
func render(c *fiber.Ctx, page string, data fiber.Map) error {
	state := session.FromContext(c)
	binding := fiber.Map{
		"Title":     "",
		"Notices":   state.PopNotices(),
		"CartCount": state.Cart.Count(),
		"Identity":  state.Identity,
	}
	for k, v := range data {
		binding[k] = v
	}
	return c.Render(page, binding)
}

// redirect answers a form submission with a See Other redirect.
func redirect(c *fiber.Ctx, location string) error {
	return c.Redirect(location, fiber.StatusSeeOther)
}

func redirectWithError(c *fiber.Ctx, location, message string) error {
	session.FromContext(c).Error(message)
	return redirect(c, location)
}

func redirectWithSuccess(c *fiber.Ctx, location, message string) error {
	session.FromContext(c).Success(message)
	return redirect(c, location)
}

// productID reads the :id route parameter. ok is false for anything that
// is not a positive integer.
func productID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
