package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mealcart/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check and metrics endpoints
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Planning endpoints
		plan := v1.Group("/plan")
		{
			plan.POST("", handler.PlanMeal)
			plan.POST("/ingredients", handler.PlanIngredients)
		}

		// Catalog endpoints
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/stores", handler.ListStores)
			catalog.POST("/reload", handler.ReloadCatalog)
		}
	}

	return router
}
