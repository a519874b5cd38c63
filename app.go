package main

import (
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/session"
	"storefront/internal/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxUploadBody leaves room for four product images in one request.
const maxUploadBody = 20 * 1024 * 1024

// Dependencies are the resources the application is assembled from.
type Dependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *logrus.Logger
	// SessionStorage persists sessions. Nil keeps them in memory.
	SessionStorage fiber.Storage
	// Publisher receives order events. Nil disables them.
	Publisher services.OrderEventPublisher
	Images    services.ImageStore
}

// NewApp wires repositories, services and handlers into a Fiber app.
func NewApp(deps Dependencies) *fiber.App {
	cfg := deps.Config
	log := deps.Log

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	orderRepo := repositories.NewGORMOrderRepository(deps.DB)
	userRepo := repositories.NewGORMUserRepository(deps.DB)

	// --- Services ---
	catalogService := services.NewCatalogService(productRepo)
	cartService := services.NewCartService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, deps.Publisher, log)
	authService := services.NewAuthService(userRepo, cfg.Admin)
	adminService := services.NewAdminService(productRepo, orderRepo, deps.Images, log)

	// --- Handlers ---
	storeHandler := handlers.NewStoreHandler(catalogService, cartService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	authHandler := handlers.NewAuthHandler(authService, log)
	adminHandler := handlers.NewAdminHandler(adminService, log)

	app := fiber.New(fiber.Config{
		Views:        views.New(),
		ErrorHandler: handlers.ErrorHandler(log),
		BodyLimit:    maxUploadBody,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{Output: log.Writer()}))
	app.Use(metrics.Middleware())

	// --- Infrastructure endpoints ---
	app.Get("/health", healthHandler(deps))
	app.Get("/metrics", metrics.Handler())
	app.Static("/static", cfg.StaticDir)

	// --- Pages ---
	sessions := session.NewManager(session.Config{
		Expiration:   cfg.SessionExpiration,
		CookieSecure: cfg.CookieSecure,
		Storage:      deps.SessionStorage,
	})
	app.Use(middleware.Session(sessions, log))

	storeHandler.RegisterRoutes(app)
	authHandler.RegisterRoutes(app)
	orderHandler.RegisterRoutes(app, middleware.CustomerRequired())
	adminHandler.RegisterRoutes(app, middleware.AdminRequired())

	return app
}

type brokerStatus interface {
	Connected() bool
}

func healthHandler(deps Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.StatusOK
		body := fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "connected",
			"broker":   "disabled",
		}
		if err := database.Ping(deps.DB); err != nil {
			status = fiber.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["database"] = err.Error()
		}
		if b, ok := deps.Publisher.(brokerStatus); ok {
			body["broker"] = "connected"
			if !b.Connected() {
				body["broker"] = "disconnected"
			}
		}
		return c.Status(status).JSON(body)
	}
}
