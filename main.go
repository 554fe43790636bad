package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "file:storefront.db?cache=shared")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("SEED_DATA", false)
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Database ---
	db, err := openDatabase(viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := autoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// With no broker URL configured, order events are simply skipped.
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	if viper.GetBool("SEED_DATA") {
		seedCatalog(db)
	}

	app := NewApp(db, publisher, jwtSecret)

	// --- Start RabbitMQ Consumer ---
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for order events...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received order event %s (tag %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
			return nil
		}
		if consumerErr := mqClient.ConsumeOrderEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase connects via the postgres driver for postgres DSNs and
// falls back to sqlite for anything else (file paths, :memory:).
func openDatabase(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host=") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// autoMigrate creates or updates the schema for every model.
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RevokedToken{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	)
}

// NewApp wires repositories, services, handlers and routes into a
// Fiber app. The publisher may be nil, which disables order events.
func NewApp(db *gorm.DB, publisher services.EventPublisher, jwtSecret string) *fiber.App {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	tokenRepo := repositories.NewGORMTokenRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, tokenRepo, jwtSecret)
	catalogService := services.NewCatalogService(productRepo, categoryRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, publisher)
	reviewService := services.NewReviewService(reviewRepo, productRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	app := fiber.New()
	app.Use(logger.New())

	// --- API Routes ---
	// Catalog reads, registration and login are public; everything else
	// requires a bearer token.
	apiV1 := app.Group("/api/v1")
	protected := apiV1.Group("", middleware.AuthRequired(authService))

	authHandler.RegisterRoutes(apiV1, protected)
	catalogHandler.RegisterRoutes(apiV1, protected)
	reviewHandler.RegisterRoutes(apiV1, protected)
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected, middleware.AdminRequired())

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

// seedCatalog populates an empty database with sample categories and
// products for local development.
func seedCatalog(db *gorm.DB) {
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return
	}

	categories := []models.Category{
		{Name: "Electronics", Description: "Electronic devices and gadgets"},
		{Name: "Clothing", Description: "Fashion and apparel"},
		{Name: "Books", Description: "Books and educational materials"},
	}
	for i := range categories {
		if err := categoryRepo.Create(&categories[i]); err != nil {
			log.Printf("Error seeding category %s: %v", categories[i].Name, err)
		}
	}

	products := []models.Product{
		{Name: "Smartphone", Description: "Latest smartphone with advanced features", Price: decimal.NewFromFloat(599.99), CategoryID: categories[0].ID, StockQuantity: 50, IsActive: true},
		{Name: "Laptop", Description: "High-performance laptop for work and gaming", Price: decimal.NewFromFloat(1299.99), CategoryID: categories[0].ID, StockQuantity: 25, IsActive: true},
		{Name: "T-Shirt", Description: "Comfortable cotton t-shirt", Price: decimal.NewFromFloat(19.99), CategoryID: categories[1].ID, StockQuantity: 100, IsActive: true},
		{Name: "Programming Guide", Description: "Learn modern backend development", Price: decimal.NewFromFloat(49.99), CategoryID: categories[2].ID, StockQuantity: 30, IsActive: true},
	}
	for i := range products {
		if err := productRepo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		} else {
			log.Printf("Seeded product: %s (ID: %s)", products[i].Name, products[i].ID)
		}
	}
}
