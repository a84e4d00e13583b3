package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"geugeu/internal/config"
	"geugeu/internal/handlers"
	"geugeu/internal/models"
	"geugeu/internal/repositories"
	"geugeu/internal/services"
	"geugeu/pkg/rabbitmq"
	"geugeu/pkg/storage"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Drawing{},
		&models.Image{},
		&models.Comment{},
		&models.Interest{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Image Storage ---
	store, err := storage.NewClient(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	// --- RabbitMQ Client ---
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
	}
	defer mqClient.Close()

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	postRepo := repositories.NewGORMPostRepository(db)
	drawingRepo := repositories.NewGORMDrawingRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)
	interestRepo := repositories.NewGORMInterestRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, services.AuthConfig{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Google:    cfg.Google,
		Apple:     cfg.Apple,
	})
	userService := services.NewUserService(userRepo, store)
	postService := services.NewPostService(postRepo, store, mqClient)
	drawingService := services.NewDrawingService(drawingRepo, postRepo, store, mqClient)
	commentService := services.NewCommentService(commentRepo, postRepo, drawingRepo, mqClient)
	interestService := services.NewInterestService(interestRepo, postRepo, userRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, authService)
	postHandler := handlers.NewPostHandler(postService, authService)
	drawingHandler := handlers.NewDrawingHandler(drawingService, authService)
	commentHandler := handlers.NewCommentHandler(commentService, authService)
	interestHandler := handlers.NewInterestHandler(interestService, authService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)
	userHandler.RegisterRoutes(apiV1)
	postHandler.RegisterRoutes(apiV1)
	drawingHandler.RegisterRoutes(apiV1)
	commentHandler.RegisterRoutes(apiV1)
	interestHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Activity Consumer ---
	// Activity events published by the services are consumed here and, for
	// now, only logged. Downstream fan-out (feeds, notifications) hangs off
	// this handler.
	go func() {
		log.Println("Starting RabbitMQ consumer for activity events...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received activity event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}
		if consumerErr := mqClient.ConsumeActivityEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}()

	// --- Start HTTP Server ---
	log.Printf("Starting server on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
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
