package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logging"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/session"
	"storefront/internal/uploads"
	"storefront/pkg/rabbitmq"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

func main() {
	settingsPath := flag.String("config", config.DefaultSettingsFile, "path to the TOML settings file")
	flag.Parse()

	// --- Configuration ---
	cfg, err := config.Load(*settingsPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, log)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if cfg.SeedDemo {
		seedProducts(repositories.NewGORMProductRepository(db), log)
	}

	deps := Dependencies{Config: cfg, DB: db, Log: log}

	// --- Sessions ---
	if cfg.RedisURL != "" {
		storage, err := session.NewRedisStorage(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to initialize session storage: %v", err)
		}
		defer storage.Close()
		deps.SessionStorage = storage
		log.Info("Sessions stored in Redis")
	}

	// --- Order events ---
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		deps.Publisher = mqClient

		if err := mqClient.ConsumeOrderEvents(auditOrderEvent(log)); err != nil {
			log.WithError(err).Error("Failed to start RabbitMQ consumer")
		}
	}

	// --- Uploads ---
	images, err := uploads.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}
	deps.Images = images

	app := NewApp(deps)

	// --- Start HTTP Server ---
	log.Infof("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.WithError(err).Error("Error during Fiber shutdown")
	}
	log.Info("Server gracefully stopped")
}

// auditOrderEvent logs every order event read back from the queue.
func auditOrderEvent(log logrus.FieldLogger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		event, err := rabbitmq.DecodeOrderPaid(msg.Body)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"order_id": event.OrderID,
			"total":    event.Total,
			"items":    len(event.Items),
		}).Info("Order event received")
		return nil
	}
}

// seedProducts fills an empty catalogue with a few listed demo products.
func seedProducts(repo repositories.ProductRepository, log logrus.FieldLogger) {
	existing, err := repo.ListAll()
	if err != nil {
		log.WithError(err).Error("Error checking catalogue before seeding")
		return
	}
	if len(existing) > 0 {
		return
	}

	products := []models.Product{
		{Name: "Linen shirt", Category: "Shirts", Description: "Breathable summer shirt", Price: decimal.RequireFromString("45.00"), Stock: 12, Color: "white", Size: "M", Listed: true},
		{Name: "Wool sweater", Category: "Knitwear", Description: "Warm merino sweater", Price: decimal.RequireFromString("89.90"), Stock: 6, Color: "navy", Size: "L", Listed: true},
		{Name: "Canvas tote", Category: "Accessories", Description: "Everyday tote bag", Price: decimal.RequireFromString("19.50"), Stock: 30, Color: "beige", Listed: true},
	}
	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			log.WithError(err).WithField("name", products[i].Name).Error("Error seeding product")
			continue
		}
		log.WithField("product_id", products[i].ID).Infof("Seeded product: %s", products[i].Name)
	}
}
