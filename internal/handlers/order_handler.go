package handlers

import (
	"errors"

	"storefront/internal/services"
	"storefront/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// OrderHandler handles the checkout form.
type OrderHandler struct {
	service *services.OrderService
	log     logrus.FieldLogger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, log logrus.FieldLogger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the checkout route behind the given guards.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	handlers := append(append([]fiber.Handler{}, guards...), h.HandleCheckout)
	router.Post("/checkout", handlers...)
}

// HandleCheckout records a paid order for the session cart.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	state := session.FromContext(c)

	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.WithError(err).Debug("Error parsing checkout form")
	}

	order, err := h.service.Checkout(state.Cart, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			return redirectWithError(c, "/cart", "Your cart is empty.")
		case errors.Is(err, services.ErrMissingPaymentDetails):
			return redirectWithError(c, "/cart", "Please complete all payment details.")
		}
		h.log.WithError(err).WithField("user_id", state.Identity.UserID).Error("Error creating order")
		return err
	}

	state.ClearCart()
	h.log.WithFields(logrus.Fields{"order_id": order.ID, "user_id": state.Identity.UserID}).Info("Checkout completed")
	return redirectWithSuccess(c, "/", "Payment confirmed. Thank you for your order!")
}
