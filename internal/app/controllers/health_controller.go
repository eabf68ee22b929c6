package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/canvasstudy/internal/app/models/dto"
)

// HealthCheck checks one dependency. A nil check reports the dependency as disabled.
type HealthCheck func(ctx context.Context) error

const healthCheckTimeout = 2 * time.Second

// HealthController reports liveness and dependency state
type HealthController struct {
	checks map[string]HealthCheck
	now    func() time.Time
}

// NewHealthController creates a new HealthController
func NewHealthController(checks map[string]HealthCheck) *HealthController {
	return &HealthController{checks: checks, now: time.Now}
}

// Health godoc
// @Summary Health check
// @Description Always 200 while the process serves requests; services lists dependency state.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (hc *HealthController) Health(ctx *gin.Context) {
	names := make([]string, 0, len(hc.checks))
	for name := range hc.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	services := make(map[string]string, len(names))
	for _, name := range names {
		check := hc.checks[name]
		if check == nil {
			services[name] = "disabled"
			continue
		}
		cctx, cancel := context.WithTimeout(ctx.Request.Context(), healthCheckTimeout)
		if err := check(cctx); err != nil {
			services[name] = "down"
		} else {
			services[name] = "up"
		}
		cancel()
	}

	ctx.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "OK",
		Timestamp: hc.now().UTC(),
		Services:  services,
	})
}
