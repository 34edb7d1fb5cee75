// README: Story places listing for the home screen.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"nusavarta/internal/modules/sites"
)

type SiteLister interface {
	Grouped(ctx context.Context, category string) sites.Grouped
}

type PlacesHandler struct {
	sites SiteLister
}

func NewPlacesHandler(lister SiteLister) *PlacesHandler {
	return &PlacesHandler{sites: lister}
}

// StoryPlaces handles GET /api/story-places?category=.
func (h *PlacesHandler) StoryPlaces(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.sites.Grouped(c.Request.Context(), c.Query("category")))
}
