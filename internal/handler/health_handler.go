package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sbcanalyzer/internal/port"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	client port.GenerationClient
}

// NewHealthHandler creates a new HealthHandler. client may be nil when no
// generation backend could be configured.
func NewHealthHandler(client port.GenerationClient) *HealthHandler {
	return &HealthHandler{client: client}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.client == nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: "generation backend not configured"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
