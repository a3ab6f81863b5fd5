package main

import (
	"context"
	"log"
	"os"
	"time"

	"grant-management-api/config"
	"grant-management-api/middleware"
	"grant-management-api/monitor"
	"grant-management-api/routes"
	"grant-management-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitLogging()
	config.InitJWT()
	config.InitDB()
	config.InitStorage()
	config.InitCache()

	ctx := context.Background()

	// Background workers
	services.Notifications = services.NewNotificationService(config.DB)
	services.Notifications.Start(ctx)
	services.NewGrantReconcilerService(config.DB).StartDaemon(ctx, time.Hour)

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Security headers
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	router.Use(middleware.CORSMiddleware())

	monitor.RegisterMonitorPage(router)
	monitor.RegisterLogsRoute(router)

	routes.SetupRoutes(router)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if ginMode == "release" {
		log.Printf("Running in production mode")
	} else {
		log.Printf("Running in development mode")
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
