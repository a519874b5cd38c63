package handlers

import (
	"errors"

	"storefront/internal/services"
	"storefront/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// StoreHandler serves the public catalogue and the cart.
type StoreHandler struct {
	catalog *services.CatalogService
	carts   *services.CartService
	log     logrus.FieldLogger
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(catalog *services.CatalogService, carts *services.CartService, log logrus.FieldLogger) *StoreHandler {
	return &StoreHandler{
		catalog: catalog,
		carts:   carts,
		log:     log,
	}
}

// RegisterRoutes registers the storefront routes with the Fiber app.
func (h *StoreHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleIndex)
	router.Get("/product/:id", h.HandleProduct)
	router.Get("/cart", h.HandleCart)
	router.Post("/add-to-cart/:id", h.HandleAddToCart)
	router.Post("/remove-from-cart/:id", h.HandleRemoveFromCart)
}

// HandleIndex renders the catalogue, optionally filtered by colour, size
// and category.
func (h *StoreHandler) HandleIndex(c *fiber.Ctx) error {
	filter := services.ProductFilter{
		Color:    c.Query("color"),
		Size:     c.Query("size"),
		Category: c.Query("category"),
	}
	front, err := h.catalog.Storefront(filter)
	if err != nil {
		return err
	}

	tab := c.Query("tab", "catalogue")
	if tab != "categories" {
		tab = "catalogue"
	}
	return render(c, "index", fiber.Map{
		"Front":  front,
		"Filter": filter,
		"Tab":    tab,
	})
}

// HandleProduct renders a single product page.
func (h *StoreHandler) HandleProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return redirectWithError(c, "/", "Product not found.")
	}
	detail, err := h.catalog.Product(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return redirectWithError(c, "/", "Product not found.")
		}
		return err
	}
	return render(c, "product", fiber.Map{
		"Title":  detail.Product.Name,
		"Detail": detail,
	})
}

// HandleCart renders the cart with its totals and the checkout form.
func (h *StoreHandler) HandleCart(c *fiber.Ctx) error {
	view, err := h.carts.View(session.FromContext(c).Cart)
	if err != nil {
		return err
	}
	return render(c, "cart", fiber.Map{
		"Title": "Cart",
		"Cart":  view,
	})
}

// HandleAddToCart adds the posted quantity of a product to the cart.
func (h *StoreHandler) HandleAddToCart(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return redirectWithError(c, "/", "Product not found.")
	}
	qty := services.ParseQuantity(c.FormValue("quantity"))
	h.carts.Add(session.FromContext(c).Cart, id, qty)
	return redirectWithSuccess(c, "/cart", "Item added to your cart.")
}

// HandleRemoveFromCart removes a product from the cart.
func (h *StoreHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	if id, ok := productID(c); ok {
		h.carts.Remove(session.FromContext(c).Cart, id)
	}
	return redirect(c, "/cart")
}
