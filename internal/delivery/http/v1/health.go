package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const serviceName = "Task Management Service"

func (h *handlerImpl) HandleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name": serviceName,
		"endpoints": gin.H{
			"health":  "/health",
			"ready":   "/ready",
			"metrics": "/metrics",
			"tasks":   "/api/v1/tasks",
			"users":   "/api/v1/users",
		},
	})
}

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"uptime":    time.Since(h.startedAt).Seconds(),
	})
}

func (h *handlerImpl) HandleReady(c *gin.Context) {
	if h.ready != nil {
		err := h.ready(c)
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("storage is not ready")
			abort(c, newAPIError(http.StatusServiceUnavailable, codeNotReady, "Storage is unavailable"))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *handlerImpl) HandleNotFound(c *gin.Context) {
	abort(c, newAPIError(http.StatusNotFound, codeNotFound, msgNotFound))
}
