package handler

import (
	"context"
	"net/http"

	"github.com/ErlanBelekov/grocery-api/internal/health"
	"github.com/gin-gonic/gin"
)

type readinessChecker interface {
	Readiness(ctx context.Context) health.HealthResult
}

type HealthHandler struct {
	checker readinessChecker
}

func NewHealthHandler(checker readinessChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// GET /api/health
// 503 when any dependency is down.
func (h *HealthHandler) Check(c *gin.Context) {
	result := h.checker.Readiness(c.Request.Context())
	status := http.StatusOK
	if !result.Up() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, result)
}
