package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tailorix_backend/internal/middleware"
	"tailorix_backend/internal/services"
	"tailorix_backend/internal/services/dto"
)

// TailorHandler exposes the public tailor listing, search and profile
// endpoints.
type TailorHandler struct {
	*BaseHandler
	tailorService services.TailorService
}

func NewTailorHandler(base *BaseHandler, tailorService services.TailorService) *TailorHandler {
	return &TailorHandler{
		BaseHandler:   base,
		tailorService: tailorService,
	}
}

func (h *TailorHandler) RegisterRoutes(r *gin.RouterGroup) {
	tailors := r.Group("/tailors")
	tailors.Use(middleware.OptionalAuth())
	{
		tailors.GET("", h.ListTailors)
		tailors.GET("/search", h.SearchTailors)
		tailors.GET("/new", h.NewlyJoined)
		tailors.GET("/stats", h.Stats)
		tailors.GET("/:id", h.TailorDetails)
	}
}

// ListTailors handles GET /tailors: the ranked public listing with filters.
func (h *TailorHandler) ListTailors(c *gin.Context) {
	var req dto.ListTailorsRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	response, err := h.tailorService.ListTailors(c.Request.Context(), &req, middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SearchTailors handles GET /tailors/search?q=...
func (h *TailorHandler) SearchTailors(c *gin.Context) {
	var req dto.SearchTailorsRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	response, err := h.tailorService.SearchTailors(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// NewlyJoined handles GET /tailors/new?days=30
func (h *TailorHandler) NewlyJoined(c *gin.Context) {
	days := ParseQueryInt(c, "days", 30)
	page, pageSize := ParsePagination(c)

	response, err := h.tailorService.GetNewlyJoined(c.Request.Context(), days, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Stats handles GET /tailors/stats
func (h *TailorHandler) Stats(c *gin.Context) {
	stats, err := h.tailorService.GetTailorStats(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// TailorDetails handles GET /tailors/:id
func (h *TailorHandler) TailorDetails(c *gin.Context) {
	view, err := h.tailorService.GetTailorDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
