package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molgraph/internal/infrastructure/storage"
	"github.com/turtacn/molgraph/pkg/types/common"
)

// healthTimeout bounds one round of component checks.
const healthTimeout = 5 * time.Second

// HealthHandler handles liveness and component health probes.
type HealthHandler struct {
	checkers []storage.HealthChecker
	version  string
	startAt  time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(version string, checkers ...storage.HealthChecker) *HealthHandler {
	return &HealthHandler{
		checkers: checkers,
		version:  version,
		startAt:  time.Now(),
	}
}

// RegisterRoutes registers the probe routes.
func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/livez", h.Liveness)
	r.GET("/healthz", h.Health)
}

// LivenessResponse is the response for the liveness probe.
type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// HealthResponse reports every component.
type HealthResponse struct {
	Status     common.HealthStatus      `json:"status"`
	Version    string                   `json:"version"`
	Uptime     string                   `json:"uptime"`
	Components []common.ComponentHealth `json:"components"`
}

// Liveness handles GET /livez.  It always returns 200 while the process runs.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, LivenessResponse{
		Status:  "alive",
		Version: h.version,
		Uptime:  h.uptime(),
	})
}

// Health handles GET /healthz.  Any component reporting down yields 503; a
// degraded component degrades the overall status but still returns 200.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	components := h.checkAll(ctx)

	resp := HealthResponse{
		Status:     common.HealthUp,
		Version:    h.version,
		Uptime:     h.uptime(),
		Components: components,
	}
	for _, comp := range components {
		switch comp.Status {
		case common.HealthDown:
			resp.Status = common.HealthDown
		case common.HealthDegraded:
			if resp.Status == common.HealthUp {
				resp.Status = common.HealthDegraded
			}
		}
	}

	code := http.StatusOK
	if resp.Status == common.HealthDown {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

func (h *HealthHandler) uptime() string {
	return time.Since(h.startAt).Truncate(time.Second).String()
}

// checkAll runs all checkers concurrently.  Results keep checker order.
func (h *HealthHandler) checkAll(ctx context.Context) []common.ComponentHealth {
	results := make([]common.ComponentHealth, len(h.checkers))
	var wg sync.WaitGroup
	for i, checker := range h.checkers {
		wg.Add(1)
		go func(i int, hc storage.HealthChecker) {
			defer wg.Done()
			results[i] = hc.HealthCheck(ctx)
		}(i, checker)
	}
	wg.Wait()
	return results
}

//Personal.AI order the ending
