package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/clients"
	"storefront-service/internal/config"
	"storefront-service/internal/events"
	"storefront-service/internal/handlers"
	"storefront-service/internal/middleware"
	"storefront-service/internal/repository"
	"storefront-service/internal/services"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.New()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize Redis client (optional - graceful degradation to the
	// in-memory store when Redis is unavailable)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Warn("Failed to parse Redis URL, continuing with in-memory storage")
		} else {
			redisClient = redis.NewClient(opt)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := redisClient.Ping(ctx).Err(); err != nil {
				logger.WithError(err).Warn("Failed to connect to Redis, continuing with in-memory storage")
				redisClient = nil
			} else {
				logger.Info("Connected to Redis for session storage")
			}
		}
	} else {
		logger.Info("REDIS_URL not configured, using in-memory session storage")
	}

	// Initialize events publisher (optional)
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		var err error
		publisher, err = events.NewPublisher(logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize events publisher, continuing without events")
			publisher = nil
		} else {
			logger.Info("Events publisher initialized")
		}
	} else {
		logger.Info("NATS_URL not configured, events disabled")
	}

	// Initialize storage, clients, and services
	sessionStore := repository.NewSessionStore(redisClient, logger)
	catalogClient := clients.NewCatalogClient(cfg.CatalogAPIURL)

	catalogService := services.NewCatalogService(catalogClient, logger)
	cartService := services.NewCartService(sessionStore, publisher, logger)
	checkoutService := services.NewCheckoutService(sessionStore, publisher, logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(redisClient)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health endpoints
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)

	// API v1 routes, all session-scoped
	v1 := router.Group("/api/v1")
	v1.Use(middleware.SessionMiddleware())
	{
		catalog := v1.Group("/catalog")
		{
			catalog.GET("", catalogHandler.Browse)
			catalog.POST("/show-more", catalogHandler.ShowMore)
			catalog.GET("/categories", catalogHandler.ListCategories)
			catalog.GET("/products/:id", catalogHandler.GetProduct)
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items", cartHandler.UpdateItem)
			cart.DELETE("/items", cartHandler.RemoveItem)
		}

		checkout := v1.Group("/checkout")
		{
			checkout.GET("", checkoutHandler.GetStaging)
			checkout.POST("/direct", checkoutHandler.StageDirect)
			checkout.POST("/from-cart", checkoutHandler.StageFromCart)
			checkout.POST("/enter", checkoutHandler.Enter)
			checkout.POST("/items/adjust", checkoutHandler.AdjustItem)
			checkout.POST("/merge-cart", checkoutHandler.MergeCart)
			checkout.POST("/submit", checkoutHandler.Submit)
			checkout.GET("/summary", checkoutHandler.Summary)
		}
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		logger.WithField("port", cfg.Port).Info("Starting storefront-service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down storefront-service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	if publisher != nil {
		publisher.Close()
	}

	logger.Info("Storefront service stopped")
}
