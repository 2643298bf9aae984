package routes

import (
	"go-drive-api/internal/api/handlers"
	"go-drive-api/internal/api/middleware"
	"go-drive-api/internal/config"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	// Public routes
	router.GET("/health", handlers.HealthCheck)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg))

	// Folder routes
	folders := protected.Group("/folders")
	{
		folders.GET("/me", handlers.ListMyFolders)
		folders.GET("/:id", handlers.GetFolder)
		folders.POST("", handlers.CreateFolder)
		folders.PUT("/:id", handlers.UpdateFolder)
		folders.DELETE("/:id", handlers.DeleteFolder)
	}

	// File routes
	files := protected.Group("/files")
	{
		files.GET("/me", handlers.ListMyFiles)
		files.GET("/:id", handlers.GetFile)
		files.GET("/:id/thumbnail", handlers.FileThumbnail)
		files.POST("/upload", handlers.UploadFile)
		files.PUT("/:id", handlers.UpdateFile)
		files.DELETE("/:id", handlers.DeleteFile)
		files.GET("/download/:id", handlers.DownloadFile)
	}

	// Export routes
	export := protected.Group("/export")
	{
		export.GET("/csv", handlers.ExportCSV)
		export.GET("/json", handlers.ExportJSON)
	}

	// Notifications
	protected.GET("/ws", handlers.WebSocketHandler)
}
