package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/schellingx/piggyweb/internal/assistant"
	"github.com/schellingx/piggyweb/internal/config"
	"github.com/schellingx/piggyweb/internal/database"
	"github.com/schellingx/piggyweb/internal/handlers"
	"github.com/schellingx/piggyweb/internal/middleware"
	"github.com/schellingx/piggyweb/internal/services"
	"github.com/schellingx/piggyweb/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to the chat session database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Open the full-state document file
	dataFile, err := services.NewDataFile(cfg.DataFile)
	if err != nil {
		log.Fatalf("Failed to open data file: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		// The state document can carry data-URI photos; allow large bodies
		BodyLimit: 64 * 1024 * 1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("piggyweb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Media mount
	app.Static("/media", cfg.MediaDir)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	dataHandler := &handlers.DataHandler{DataFile: dataFile}
	chatHandler := &handlers.ChatHandler{DB: db}
	if cfg.AssistantEnabled() {
		chatHandler.Assistant = assistant.New(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
		log.Printf("Assistant enabled: model=%s", cfg.GeminiModel)
	}

	// Whole-document state routes
	api.Get("/data", dataHandler.GetData)
	api.Post("/data", dataHandler.SetData)

	// Chat session routes
	api.Get("/chat/:userId", chatHandler.GetSessions)
	api.Post("/chat/:userId", chatHandler.SaveSession)
	api.Delete("/chat/:userId", chatHandler.DeleteSessions)
	if cfg.AssistantEnabled() {
		api.Post("/chat/:userId/assistant", chatHandler.AssistantReply)
	}

	// Health
	api.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db, dataFile)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.ErrorResponse(c, "[404] Resource Not Found", fiber.StatusNotFound, "notFound")
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
