package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	version string
	now     func() time.Time
}

func NewStatusHandler(version string) *StatusHandler {
	return &StatusHandler{version: version, now: time.Now}
}

// Banner handles GET /api/.
func (h *StatusHandler) Banner(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{
		"message":   "Server AI Garudie berjalan!",
		"status":    "OK",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"endpoints": gin.H{
			"health":       "/health",
			"chat":         "/api/chat",
			"story_places": "/api/story-places",
		},
		"version": h.version,
	})
}

// Health handles GET /health.
func (h *StatusHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
