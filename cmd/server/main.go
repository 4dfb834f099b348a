package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"agriloan-portal/internal/adapters/http/middleware"
	"agriloan-portal/internal/adapters/http/routes"
	"agriloan-portal/internal/adapters/persistence/models"
	"agriloan-portal/internal/config"
	"agriloan-portal/internal/core/session"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	_ "agriloan-portal/docs" // Swagger docs
)

// @title AgriLoan Portal API
// @version 1.0
// @description Web portal for the AgriLoan agricultural loan platform. The portal owns browser sessions and proxies to the AgriLoan REST API.
// @termsOfService http://swagger.io/terms/

// @contact.name Portal Support
// @contact.email support@agriloan.mw

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host portal.agriloan.mw
// @BasePath /
// @schemes https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to the session store database (MySQL store only; the
	// in-memory store needs no database at all)
	var db *gorm.DB
	if cfg.Session.Store == config.StoreMySQL {
		db, err = config.ConnectDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to connect to session store: %v", err)
		}
		defer config.CloseDatabase()

		// Auto migrate (creates the sessions table if not exist)
		if err := models.AutoMigrate(db); err != nil {
			log.Fatalf("❌ Failed to auto migrate: %v", err)
		}
		log.Println("✅ Session store migration completed")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AgriLoan Portal v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (wires session manager and upstream façades)
	manager, err := routes.Setup(app, db, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to set up routes: %v", err)
	}

	// Start the session janitor (expired record sweep)
	janitor := session.NewJanitor(manager, cfg.Session.JanitorSpec)
	if err := janitor.Start(); err != nil {
		log.Fatalf("❌ Failed to schedule session janitor: %v", err)
	}
	defer janitor.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Portal starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down portal...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Portal stopped gracefully")
}
