package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/addresskit/internal/utils"
	"github.com/GTDGit/addresskit/pkg/addresskit"
)

var startTime = time.Now()

// ProvinceLister is the upstream probe used by the health check.
type ProvinceLister interface {
	GetProvinces(ctx context.Context) ([]addresskit.Province, error)
}

// HealthHandler provides health endpoint.
type HealthHandler struct {
	upstream ProvinceLister
	version  string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(upstream ProvinceLister, version string) *HealthHandler {
	return &HealthHandler{upstream: upstream, version: version}
}

// GetHealth responds with service and upstream status. The service itself is
// healthy even when AddressKit is unreachable.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	provinces, err := h.upstream.GetProvinces(c.Request.Context())

	upstream := gin.H{"status": "connected", "provinces": len(provinces)}
	if err != nil {
		upstream = gin.H{"status": "disconnected", "error": err.Error()}
	}

	utils.Success(c, http.StatusOK, "Service is healthy", gin.H{
		"status":     "healthy",
		"version":    h.version,
		"uptime":     int(time.Since(startTime).Seconds()),
		"addresskit": upstream,
	})
}
