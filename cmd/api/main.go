package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"go-drive-api/database/migrations"
	"go-drive-api/internal/api/routes"
	"go-drive-api/internal/config"
	"go-drive-api/internal/database"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize Router
	router := gin.Default()

	// Initialize Database
	if err := database.Initialize(cfg); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Migrate tables
	if err := migrations.Migrate(); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Routes
	routes.SetupRoutes(router, cfg)

	// Start Server
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
