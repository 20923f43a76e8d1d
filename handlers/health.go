package handlers

import (
	"net/http"

	"catering/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness together with the dependency snapshot.
type HealthHandler struct {
	Monitor *utils.HealthMonitor
}

func NewHealthHandler(monitor *utils.HealthMonitor) *HealthHandler {
	return &HealthHandler{Monitor: monitor}
}

// GetHealthHandler handles GET /health. The server stays up when the store is
// down, so degraded dependencies never turn this into an error.
func (h *HealthHandler) GetHealthHandler(c *gin.Context) {
	status := h.Monitor.Status()
	if status.CheckedAt.IsZero() {
		status = h.Monitor.Check(c.Request.Context())
	}

	state := "ok"
	if !status.Store || (status.Cache != nil && !*status.Cache) || (status.Queue != nil && !*status.Queue) {
		state = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       state,
		"message":      "Hi, I'm the catering API",
		"dependencies": status,
	})
}
