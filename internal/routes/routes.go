package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tailorix_backend/internal/handlers"
)

// RegisterRoutes wires every handler into the HTTP API.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.DiscoveryHandler.RegisterRoutes(api)
		appHandlers.TailorHandler.RegisterRoutes(api)
		appHandlers.FavoriteHandler.RegisterRoutes(api)
		appHandlers.SubscriptionHandler.RegisterRoutes(api)
	}
}
