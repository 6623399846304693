package api

import (
	"net/http"
	"strings"

	"solar-thermal-sizing/internal/api/handlers"
	"solar-thermal-sizing/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the middleware chain and the v1 routes.
func NewRouter(sizing *handlers.SizingHandler) *gin.Engine {
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/collectors", handlers.ListCollectors)
		v1.GET("/climates", sizing.ListClimates)

		v1.POST("/sizing", sizing.Size)
		v1.POST("/simulate", sizing.Simulate)
		v1.POST("/rank", sizing.Rank)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
			return
		}
		c.Status(http.StatusNotFound)
	})

	return router
}
