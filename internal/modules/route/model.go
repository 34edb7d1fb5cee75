// README: Cultural route result types and the builder's typed failures.
package route

import (
	"errors"
	"fmt"

	"nusavarta/internal/types"
)

type MarkerType string

const (
	MarkerOrigin      MarkerType = "origin"
	MarkerWaypoint    MarkerType = "waypoint"
	MarkerDestination MarkerType = "destination"
)

type Marker struct {
	Type        MarkerType  `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	SiteID      types.ID    `json:"siteId,omitempty"`
	Coordinates types.Point `json:"coordinates"`
}

type Summary struct {
	DistanceMeters  int   `json:"distanceMeters"`
	DurationSeconds int64 `json:"durationSeconds"`
}

// Result is what the client draws: an encoded polyline plus markers in
// travel order.
type Result struct {
	Polyline string   `json:"polyline"`
	Markers  []Marker `json:"markers"`
	Summary  Summary  `json:"summary"`
}

type Side string

const (
	SideOrigin      Side = "origin"
	SideDestination Side = "destination"
)

// LocationNotFoundError means the provider answered but knows no place by
// that name. Provider failures while geocoding are *RoutingError instead.
type LocationNotFoundError struct {
	Side  Side
	Query string
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("route: %s %q not found", e.Side, e.Query)
}

// ErrNoRoute is wrapped by RoutingError when the provider found nothing.
var ErrNoRoute = errors.New("route: no route between the endpoints")

// RoutingError means a provider call failed (geocoding or directions) or the
// directions call returned no route.
type RoutingError struct {
	Err error
}

func (e *RoutingError) Error() string {
	return "route: directions failed: " + e.Err.Error()
}

func (e *RoutingError) Unwrap() error { return e.Err }
