package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"razones/internal/shared/utils"
)

// HealthHandler reports service liveness
type HealthHandler struct {
	startedAt time.Time
	version   string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{
		startedAt: time.Now(),
		version:   version,
	}
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.startedAt).String(),
	})
}
