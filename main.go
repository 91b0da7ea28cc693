package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"domemily/internal/handlers"
	"domemily/internal/models"
	"domemily/internal/repositories"
	"domemily/internal/services"
	"domemily/pkg/logger"
	"domemily/pkg/media"
	"domemily/pkg/metrics"
	"domemily/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "domemily.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("RABBITMQ_CONSUME", false)
	viper.SetDefault("MEDIA_ENDPOINT", "")
	viper.SetDefault("MEDIA_ACCESS_KEY", "")
	viper.SetDefault("MEDIA_SECRET_KEY", "")
	viper.SetDefault("MEDIA_BUCKET", "domemily-products")
	viper.SetDefault("MEDIA_USE_SSL", true)
	viper.SetDefault("MEDIA_BASE_URL", "")
	viper.AutomaticEnv()

	if err := logger.Init(logger.Config{
		Level:       viper.GetString("LOG_LEVEL"),
		Environment: viper.GetString("APP_ENV"),
		ServiceName: "domemily",
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zlog := logger.L()
	defer zlog.Sync()

	// --- Database ---
	db, err := openDatabase(viper.GetString("DB_DRIVER"), viper.GetString("DB_DSN"))
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ContactMessage{}); err != nil {
		zlog.Fatal("Failed to migrate database", zap.Error(err))
	}

	// --- Media Upload Gateway ---
	// Left nil when unconfigured; the catalog service then reports image
	// uploads as recoverable validation failures.
	var uploader media.Uploader
	if endpoint := viper.GetString("MEDIA_ENDPOINT"); endpoint != "" {
		minioUploader, err := media.NewMinIOUploader(media.Config{
			Endpoint:  endpoint,
			AccessKey: viper.GetString("MEDIA_ACCESS_KEY"),
			SecretKey: viper.GetString("MEDIA_SECRET_KEY"),
			Bucket:    viper.GetString("MEDIA_BUCKET"),
			UseSSL:    viper.GetBool("MEDIA_USE_SSL"),
			BaseURL:   viper.GetString("MEDIA_BASE_URL"),
		})
		if err != nil {
			zlog.Fatal("Failed to initialize media uploader", zap.Error(err))
		}
		uploader = minioUploader
	} else {
		zlog.Warn("MEDIA_ENDPOINT not set, image uploads will be rejected")
	}

	// --- Catalog Event Publisher ---
	var publisher services.EventPublisher
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			zlog.Fatal("Failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = mqClient

		// Optional in-process subscriber. Standalone consumers usually own
		// the queue; this flag lets a single-binary deployment observe its
		// own events.
		if viper.GetBool("RABBITMQ_CONSUME") {
			zlog.Info("Starting catalog events consumer...")
			if err := startCatalogConsumer(mqClient, zlog); err != nil {
				zlog.Error("Failed to start catalog events consumer", zap.Error(err))
			}
		}
	} else {
		zlog.Info("RABBITMQ_URL not set, catalog events disabled")
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)

	// --- Services ---
	catalogService := services.NewCatalogService(productRepo, uploader, publisher, zlog)
	contactService := services.NewContactService(contactRepo)

	// --- Handlers ---
	catalogHandler := handlers.NewCatalogHandler(catalogService, contactService, zlog)
	adminHandler := handlers.NewDressAdminHandler(catalogService, contactService, zlog)

	// --- Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.RequestLogger())
	app.Use(metrics.NewHTTPMetrics("domemily").Middleware())

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	catalogHandler.RegisterRoutes(apiV1)
	adminHandler.RegisterRoutes(apiV1)

	// --- Operational Endpoints ---
	app.Get("/metrics", metrics.Handler())
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	appPort := viper.GetString("APP_PORT")
	zlog.Info("Starting server", zap.String("port", appPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			zlog.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	zlog.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		zlog.Error("Error during Fiber shutdown", zap.Error(err))
	}
	zlog.Info("Server gracefully stopped")
}

// catalogEventConsumer is the slice of the RabbitMQ client the consumer
// wiring needs.
type catalogEventConsumer interface {
	ConsumeCatalogEvents(messageHandler func(msg amqp.Delivery) error) error
}

// startCatalogConsumer subscribes to the catalog events queue and logs each
// delivery.
func startCatalogConsumer(consumer catalogEventConsumer, zlog *zap.Logger) error {
	return consumer.ConsumeCatalogEvents(func(msg amqp.Delivery) error {
		zlog.Info("Catalog event received",
			zap.Uint64("delivery_tag", msg.DeliveryTag),
			zap.ByteString("body", msg.Body))
		return nil
	})
}

// openDatabase opens the configured database. TranslateError is required so
// the repositories see unique violations as gorm.ErrDuplicatedKey.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	config := &gorm.Config{TranslateError: true}
	if driver == "postgres" {
		return gorm.Open(postgres.Open(dsn), config)
	}
	return gorm.Open(sqlite.Open(dsn), config)
}
