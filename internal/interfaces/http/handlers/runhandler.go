package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"razones/internal/domain/run"
	"razones/internal/shared/logger"
	"razones/internal/shared/utils"
)

// RunHandler exposes the generation run history
type RunHandler struct {
	runs   run.Repository
	logger logger.Interface
}

// NewRunHandler creates a new RunHandler
func NewRunHandler(runs run.Repository, logger logger.Interface) *RunHandler {
	return &RunHandler{
		runs:   runs,
		logger: logger,
	}
}

// List handles GET /api/runs
func (h *RunHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.ErrorResponse(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := h.runs.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list runs", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", runs)
}
