package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReadinessProbe checks one backing dependency by name.
type ReadinessProbe struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	probes []ReadinessProbe
}

func NewHealthHandler(probes ...ReadinessProbe) *HealthHandler {
	return &HealthHandler{probes: probes}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz runs every probe instead of stopping at the first failure, so one
// response shows the state of all dependencies.
func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx := c.Request.Context()

	resp := gin.H{}
	ready := true
	for _, p := range h.probes {
		if err := p.Check(ctx); err != nil {
			resp[p.Name] = "unavailable"
			ready = false
		} else {
			resp[p.Name] = "connected"
		}
	}

	if !ready {
		resp["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	resp["status"] = "ok"
	c.JSON(http.StatusOK, resp)
}
