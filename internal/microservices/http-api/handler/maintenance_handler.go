package handler

import (
	"context"
	"net/http"
	"time"

	"mangareader/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// MaintenanceHandler exposes the scheduled jobs for on-demand runs by admins.
type MaintenanceHandler struct {
	svc service.MaintenanceService
}

func NewMaintenanceHandler(svc service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{svc: svc}
}

func (h *MaintenanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ratings/reconcile", h.ReconcileRatings)
	rg.POST("/tokens/purge", h.PurgeTokens)
}

func (h *MaintenanceHandler) ReconcileRatings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	n, err := h.svc.ReconcileRatings(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (h *MaintenanceHandler) PurgeTokens(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	n, err := h.svc.PurgeRefreshTokens(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purged": n})
}
