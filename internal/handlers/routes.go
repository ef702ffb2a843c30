package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "freshsilver-api/docs"
	"freshsilver-api/internal/metrics"
)

// RouterConfig holds what the local server reports on /health
type RouterConfig struct {
	Dispatcher  *Dispatcher
	StorageType string
	Stage       string
	Mode        string
}

// SetupRoutes configures the local server. The API routes themselves are
// served by the dispatcher so they match the Lambda entrypoint.
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "healthy",
			"timestamp":    time.Now().UTC(),
			"storage_type": config.StorageType,
			"stage":        config.Stage,
			"mode":         config.Mode,
			"swagger_url":  "/swagger/index.html",
		})
	})

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.NoRoute(GinHandler(config.Dispatcher))
}
