package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tailorix_backend/internal/middleware"
	"tailorix_backend/internal/models"
	"tailorix_backend/internal/services"
	"tailorix_backend/internal/services/dto"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(r *gin.RouterGroup) {
	subs := r.Group("/subscriptions")
	{
		subs.GET("/plans", h.ListPlans)
	}

	subsAuth := r.Group("/subscriptions")
	subsAuth.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleTailor))
	{
		subsAuth.POST("/activate", h.Activate)
		subsAuth.GET("/status", h.Status)
	}
}

func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	plans, err := h.subscriptionService.ListPlans(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *SubscriptionHandler) Activate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ActivateSubscriptionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	status, err := h.subscriptionService.Activate(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *SubscriptionHandler) Status(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	status, err := h.subscriptionService.Status(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
