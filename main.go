package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"supermart/internal/config"
	"supermart/internal/handlers"
	"supermart/internal/middleware"
	"supermart/internal/models"
	"supermart/internal/repositories"
	"supermart/internal/services"
	"supermart/internal/uploads"
	"supermart/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// --- Database ---
	db, err := openDatabase(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Employee{},
		&models.User{},
		&models.Role{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set; order events will not be published.")
	}

	// --- Repositories ---
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	orderItemRepo := repositories.NewGORMOrderItemRepository(db)
	employeeRepo := repositories.NewGORMEmployeeRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Services ---
	fileSaver := uploads.NewSaver(cfg.UploadDir)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, fileSaver)
	customerService := services.NewCustomerService(customerRepo)
	orderService := services.NewOrderService(orderRepo, fileSaver, mqClient)
	orderItemService := services.NewOrderItemService(orderItemRepo, fileSaver)
	employeeService := services.NewEmployeeService(employeeRepo, fileSaver)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)

	// --- Handlers ---
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	orderHandler := handlers.NewOrderHandler(orderService)
	orderItemHandler := handlers.NewOrderItemHandler(orderItemService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Uploaded images are served straight from the upload directory; the
	// stored imageUrl values resolve against this root.
	app.Static("/", cfg.UploadDir)

	api := app.Group("/api")

	// Authentication routes are public.
	authHandler.RegisterRoutes(api)

	// Every resource group requires a valid bearer token.
	protected := api.Group("", middleware.AuthRequired(authService))
	categoryHandler.RegisterRoutes(protected)
	productHandler.RegisterRoutes(protected)
	customerHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	orderItemHandler.RegisterRoutes(protected)
	employeeHandler.RegisterRoutes(protected)

	// --- Start HTTP server with graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
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

// openDatabase picks the GORM driver from the DSN shape: postgres for
// URL/keyword DSNs, SQLite for plain file paths.
func openDatabase(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host=") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	// SQLite keeps foreign keys off per connection unless the DSN asks;
	// without this the ON DELETE SET NULL constraints never fire.
	if strings.Contains(dsn, "?") {
		dsn += "&_foreign_keys=on"
	} else {
		dsn += "?_foreign_keys=on"
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}
