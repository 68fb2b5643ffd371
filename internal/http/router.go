package http

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go.sunfold.io/lcoe-api/internal/usecase"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(surfaceUC *usecase.SurfaceUseCase) *gin.Engine {

	router := gin.Default()

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable.
	// Default to allow all origins if not specified.
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}

	router.Use(cors.New(corsConfig))

	// Create handler.
	handler := NewHandler(surfaceUC)

	// API v1 routes.
	v1 := router.Group("/v1")

	// LCOE surface and selection.
	lcoe := v1.Group("/lcoe")
	lcoe.GET("/surface", handler.GetSurface)
	lcoe.POST("/selection", handler.PostSelection)
	lcoe.GET("/selection", handler.GetSelection)

	// Assumption documentation and presets.
	v1.GET("/assumptions", handler.GetAssumptions)
	v1.GET("/scenarios", handler.GetScenarios)

	// Health check.
	router.GET("/health", handler.HealthCheck)

	return router
}
