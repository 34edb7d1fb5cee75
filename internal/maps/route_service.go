package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"nusavarta/internal/metrics"
	"nusavarta/internal/types"
)

// ErrNoRoute is returned when the provider answers but finds no route.
var ErrNoRoute = errors.New("maps: no route found")

// Options applies to every request a service sends.
type Options struct {
	Region   string
	Language string
}

// NewClient creates the shared Google Maps client.
func NewClient(apiKey string) (*maps.Client, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}

// Leg is one segment of a route between consecutive stops.
type Leg struct {
	Start          types.Point
	End            types.Point
	StartAddress   string
	EndAddress     string
	DistanceMeters int
	Duration       time.Duration
}

// RouteSolution is the first route the provider returned.
type RouteSolution struct {
	Legs []Leg
	// WaypointOrder[i] is the index into the request waypoints of the i-th
	// visited stop, when the provider reordered them.
	WaypointOrder []int
	Polyline      string
}

// RouteService handles interactions with the Google Directions API.
type RouteService struct {
	client *maps.Client
	opts   Options
}

func NewRouteService(client *maps.Client, opts Options) *RouteService {
	return &RouteService{client: client, opts: opts}
}

// Route asks for a driving route from origin to destination through waypoints.
// With optimize set the provider may reorder the waypoints.
func (s *RouteService) Route(ctx context.Context, origin, destination types.Point, waypoints []types.Point, optimize bool) (*RouteSolution, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin.String(),
		Destination: destination.String(),
		Mode:        maps.TravelModeDriving,
		Language:    s.opts.Language,
		Region:      s.opts.Region,
	}
	if len(waypoints) > 0 {
		r.Waypoints = make([]string, len(waypoints))
		for i, w := range waypoints {
			r.Waypoints[i] = w.String()
		}
		r.Optimize = optimize
	}

	routes, _, err := s.client.Directions(ctx, r)
	metrics.MapsRequests.WithLabelValues("directions", metrics.Status(err)).Inc()
	if isNoResult(err) {
		return nil, ErrNoRoute
	}
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, ErrNoRoute
	}

	route := routes[0]
	sol := &RouteSolution{
		Legs:          make([]Leg, 0, len(route.Legs)),
		WaypointOrder: route.WaypointOrder,
		Polyline:      route.OverviewPolyline.Points,
	}
	for _, leg := range route.Legs {
		sol.Legs = append(sol.Legs, Leg{
			Start:          types.Point{Lat: leg.StartLocation.Lat, Lng: leg.StartLocation.Lng},
			End:            types.Point{Lat: leg.EndLocation.Lat, Lng: leg.EndLocation.Lng},
			StartAddress:   leg.StartAddress,
			EndAddress:     leg.EndAddress,
			DistanceMeters: leg.Distance.Meters,
			Duration:       leg.Duration,
		})
	}
	return sol, nil
}

// isNoResult reports provider statuses that mean "nothing matched" rather
// than a failed request.
func isNoResult(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "ZERO_RESULTS") || strings.Contains(msg, "NOT_FOUND")
}
