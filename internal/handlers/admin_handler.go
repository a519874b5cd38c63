package handlers

import (
	"errors"
	"mime/multipart"
	"time"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AdminHandler serves the back office.
type AdminHandler struct {
	service *services.AdminService
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *services.AdminService, log logrus.FieldLogger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log,
		now:     time.Now,
	}
}

// RegisterRoutes registers the admin routes, each behind the given guards.
// The guards are attached per route so that /admin/login stays reachable.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	guarded := func(handler fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guards...), handler)
	}
	admin := router.Group("/admin")
	admin.Get("/dashboard", guarded(h.HandleDashboard)...)
	admin.Get("/products/new", guarded(h.ShowNewProduct)...)
	admin.Post("/products", guarded(h.HandleCreateProduct)...)
	admin.Post("/products/:id/stock", guarded(h.HandleUpdateStock)...)
	admin.Post("/products/:id/toggle-listing", guarded(h.HandleToggleListing)...)
}

// HandleDashboard renders products, paid orders and sales totals.
func (h *AdminHandler) HandleDashboard(c *fiber.Ctx) error {
	dashboard, err := h.service.Dashboard(h.now().UTC())
	if err != nil {
		h.log.WithError(err).Error("Error building dashboard")
		return err
	}
	return render(c, "admin_dashboard", fiber.Map{
		"Title":     "Dashboard",
		"Dashboard": dashboard,
	})
}

func (h *AdminHandler) ShowNewProduct(c *fiber.Ctx) error {
	return render(c, "admin_new_product", fiber.Map{
		"Title":     "New product",
		"MaxImages": models.MaxProductImages,
	})
}

// HandleCreateProduct creates an unlisted product from the multipart form.
func (h *AdminHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input services.NewProduct
	if err := c.BodyParser(&input); err != nil {
		h.log.WithError(err).Debug("Error parsing product form")
		return redirectWithError(c, "/admin/products/new", "Please fill in the required fields.")
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		files = form.File["images"]
	}

	product, err := h.service.CreateProduct(input, files)
	if err != nil {
		if errors.Is(err, services.ErrInvalidProduct) {
			return redirectWithError(c, "/admin/products/new", "Please fill in the required fields.")
		}
		h.log.WithError(err).Error("Error creating product")
		return err
	}

	h.log.WithField("product_id", product.ID).Debug("Product form accepted")
	return redirectWithSuccess(c, "/admin/dashboard", "Product added. It stays hidden until you list it.")
}

// HandleUpdateStock overwrites the stock and price of a product.
func (h *AdminHandler) HandleUpdateStock(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return redirectWithError(c, "/admin/dashboard", "Product not found.")
	}
	err := h.service.UpdateStockAndPrice(id, c.FormValue("stock"), c.FormValue("price"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidProduct) {
			return redirectWithError(c, "/admin/dashboard", "Stock and price must be numbers.")
		}
		return err
	}
	return redirectWithSuccess(c, "/admin/dashboard", "Stock and price updated.")
}

// HandleToggleListing shows or hides a product on the storefront.
func (h *AdminHandler) HandleToggleListing(c *fiber.Ctx) error {
	if id, ok := productID(c); ok {
		if err := h.service.ToggleListing(id); err != nil {
			return err
		}
	}
	return redirectWithSuccess(c, "/admin/dashboard", "Listing updated.")
}
