// README: Cultural site gazetteer types.
package sites

import (
	"strings"

	"nusavarta/internal/types"
)

type Category string

const (
	CategoryLandmark Category = "landmark"
	CategoryCulture  Category = "culture"
	CategoryMuseum   Category = "museum"
	CategoryTemple   Category = "temple"
)

// ParseCategory maps free text to a Category, defaulting to landmark.
func ParseCategory(s string) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryCulture, CategoryMuseum, CategoryTemple:
		return c
	default:
		return CategoryLandmark
	}
}

// Site is a point of cultural interest. Intangible heritage (dances, crafts)
// has no fixed coordinates and is never used as a waypoint.
type Site struct {
	ID          types.ID    `json:"id"`
	Name        string      `json:"name"`
	Aliases     []string    `json:"aliases,omitempty"`
	Category    Category    `json:"category"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Coordinates types.Point `json:"coordinates"`
	ImageURL    string      `json:"imageUrl,omitempty"`
}

// Located reports whether the site has usable coordinates.
func (s Site) Located() bool {
	return s.Coordinates != (types.Point{})
}

// MentionedIn reports whether the site's name or one of its aliases occurs in
// the already lowercased text.
func (s Site) MentionedIn(lowerText string) bool {
	if s.Name != "" && strings.Contains(lowerText, strings.ToLower(s.Name)) {
		return true
	}
	for _, a := range s.Aliases {
		if a != "" && strings.Contains(lowerText, strings.ToLower(a)) {
			return true
		}
	}
	return false
}

// Grouped is the home-screen view of the gazetteer.
type Grouped struct {
	Landmarks []Site `json:"landmarks"`
	Cultures  []Site `json:"cultures"`
	Museums   []Site `json:"museums"`
	Temples   []Site `json:"temples"`
	Total     int    `json:"total"`
	AllPlaces []Site `json:"allPlaces"`
}
