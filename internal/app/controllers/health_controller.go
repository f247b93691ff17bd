package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/drivingschool/internal/app/models/dto"
)

// Pinger checks that the school API answers
type Pinger interface {
	Health(ctx context.Context) error
}

// HealthController reports liveness and backend reachability
type HealthController struct {
	backend Pinger
	timeout time.Duration
}

// NewHealthController creates a new HealthController
func NewHealthController(backend Pinger, timeout time.Duration) *HealthController {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HealthController{backend: backend, timeout: timeout}
}

// Health answers 200 when the backend is reachable, 503 otherwise
func (c *HealthController) Health(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), c.timeout)
	defer cancel()

	backendHealthy := c.backend.Health(reqCtx) == nil
	status := http.StatusOK
	if !backendHealthy {
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, dto.HealthResponse{
		Status:  http.StatusText(status),
		Backend: backendHealthy,
		Time:    time.Now().UTC(),
	})
}
