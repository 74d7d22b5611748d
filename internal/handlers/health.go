package handlers

import (
	"context"
	"net/http"
	"time"

	"trivia-api/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthHandler struct {
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Live godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200 {object} SuccessResponse
// @Router       /healthz [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Ready godoc
// @Summary      Readiness probe, checks the database
// @Tags         health
// @Produce      json
// @Success      200 {object} SuccessResponse
// @Failure      503 {object} ErrorResponse
// @Router       /readyz [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			logger.Warn(c.Request.Context(), "readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{
				Success: false,
				Error:   http.StatusServiceUnavailable,
				Message: "Service Unavailable",
			})
			return
		}
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// AddForm godoc
// @Summary      Placeholder backing the client's add-question form
// @Tags         health
// @Produce      json
// @Success      200 {object} SuccessResponse
// @Router       /add [get]
func (h *HealthHandler) AddForm(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
