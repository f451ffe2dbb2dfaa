package main

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"maternal-health-server/internal/config"
	"maternal-health-server/internal/middleware"
	"maternal-health-server/internal/models"
	"maternal-health-server/internal/routes"
)

func main() {
	// Load environment variables; a missing .env just means the
	// environment is configured externally
	if err := godotenv.Load(); err != nil {
		log.WithField("prefix", "main").Info("no .env file found, using process environment")
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithField("prefix", "main").Fatalf("error loading config: %v", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("prefix", "main").Fatalf("invalid log level %q: %v", cfg.LogLevel, err)
	}
	log.SetLevel(level)

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		log.WithField("prefix", "main").Fatalf("error connecting to database: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes
	routes.SetupRoutes(router, db, cfg)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	log.WithFields(log.Fields{
		"prefix": "main",
		"port":   cfg.Port,
	}).Info("server starting")
	if err := router.Run(serverAddr); err != nil {
		log.WithField("prefix", "main").Fatalf("failed to start server: %v", err)
	}
}
