package main

import (
	"net/http"

	"github.com/ichi1107/bento-order-system/config"
	"github.com/ichi1107/bento-order-system/jobs"
	"github.com/ichi1107/bento-order-system/routes"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration (.env + environment)
	config.Load()
	gin.SetMode(config.App.GinMode)

	// Initialize database
	config.InitDB()

	// Seed baseline data
	if err := config.SeedRoles(); err != nil {
		logrus.Fatalf("Failed to seed roles with error: %+v", err)
	}
	if err := config.SeedOwner(); err != nil {
		logrus.Errorf("Failed to seed owner account with error: %+v", err)
	}

	// Background housekeeping
	c := cron.New()
	c.AddFunc("@hourly", jobs.PurgeExpiredResetTokens)
	c.Start()

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Bento Order System API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍱 Welcome to the Bento Order System API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "store"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	logrus.Infof("🚀 Server running on http://localhost:%s", config.App.Port)
	if err := r.Run(":" + config.App.Port); err != nil {
		logrus.Fatalf("Failed to start server with error: %+v", err)
	}
}
