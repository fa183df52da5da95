package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/rune-metrics/player-tracker/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Name-change submission (open, no authentication required)
		v1.POST("/name-changes", handler.SubmitNameChange)

		// Request details with comparison report (public read access)
		v1.GET("/name-changes/:id", handler.GetNameChangeDetails)

		// Moderation endpoints (require authentication)
		v1.POST("/name-changes/:id/approve", middleware.Auth(authCfg), handler.ApproveNameChange)
		v1.POST("/name-changes/:id/deny", middleware.Auth(authCfg), handler.DenyNameChange)
	}
}
