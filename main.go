// File: /main.go
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ryde-api/config"
	"ryde-api/database"
	"ryde-api/middleware"
	"ryde-api/routes"
	"ryde-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		logrus.WithError(err).Warn("Failed to seed database")
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	emailService := services.NewEmailService(cfg)

	// Create router
	router := gin.New()

	router.Use(routes.SetupCORS())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(120, 20))
	router.Use(gin.Recovery())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService)

	// Start server
	logrus.WithField("port", cfg.Port).Info("Starting Ryde API server")

	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
