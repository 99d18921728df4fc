package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tailorix_backend/internal/middleware"
	"tailorix_backend/internal/services"
	"tailorix_backend/internal/services/dto"
)

// DiscoveryHandler exposes the nearby-tailor search.
type DiscoveryHandler struct {
	*BaseHandler
	discoveryService services.DiscoveryService
}

func NewDiscoveryHandler(base *BaseHandler, discoveryService services.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{
		BaseHandler:      base,
		discoveryService: discoveryService,
	}
}

func (h *DiscoveryHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public, but personalized when a valid token is supplied.
	tailors := r.Group("/tailors")
	tailors.Use(middleware.OptionalAuth())
	{
		tailors.GET("/nearby", h.NearbyTailors)
	}
}

// NearbyTailors handles GET /tailors/nearby. Accepts either coordinates
// (lat, lng, optional radius_km) or a city name, plus service filters.
func (h *DiscoveryHandler) NearbyTailors(c *gin.Context) {
	var req dto.NearbyTailorsRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	response, err := h.discoveryService.DiscoverTailors(c.Request.Context(), &req, middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
