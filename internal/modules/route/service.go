// README: Route builder; geocodes the endpoints, picks cultural stops and asks for directions.
package route

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nusavarta/internal/geo"
	"nusavarta/internal/logger"
	"nusavarta/internal/maps"
	"nusavarta/internal/metrics"
	"nusavarta/internal/modules/sites"
	"nusavarta/internal/types"
)

// unnamedStopTitle labels a stop the provider kept but we could not match to a site.
const unnamedStopTitle = "Titik singgah"

type Geocoder interface {
	Geocode(ctx context.Context, address string) (types.Point, bool, error)
}

type Directions interface {
	Route(ctx context.Context, origin, destination types.Point, waypoints []types.Point, optimize bool) (*maps.RouteSolution, error)
}

// SiteSource lists the sites that have coordinates.
type SiteSource interface {
	Located(ctx context.Context) []sites.Site
}

type Config struct {
	// MaxWaypoints caps the cultural stops per route; zero means no cap.
	MaxWaypoints int
	// Timeout bounds every individual provider call.
	Timeout time.Duration
}

type Builder struct {
	geocoder   Geocoder
	directions Directions
	sites      SiteSource
	cfg        Config
	log        *zap.Logger
}

func NewBuilder(geocoder Geocoder, directions Directions, src SiteSource, cfg Config, log *zap.Logger) *Builder {
	return &Builder{
		geocoder:   geocoder,
		directions: directions,
		sites:      src,
		cfg:        cfg,
		log:        logger.OrNop(log).Named("route"),
	}
}

// Build returns a complete route or an error; never a partial result.
// Errors are *LocationNotFoundError when a name is unknown to the provider, or
// *RoutingError when a provider call fails or no route exists.
func (b *Builder) Build(ctx context.Context, origin, destination string, includeCulturalWaypoints bool) (result *Result, err error) {
	start := time.Now()
	defer func() {
		metrics.RouteBuildDuration.WithLabelValues(buildStatus(err)).Observe(time.Since(start).Seconds())
	}()

	from, to, err := b.geocodeEndpoints(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	var stops []sites.Site
	if includeCulturalWaypoints {
		stops = SelectWaypoints(b.sites.Located(ctx), from, to, b.cfg.MaxWaypoints)
	}
	points := make([]types.Point, len(stops))
	for i, s := range stops {
		points[i] = s.Coordinates
	}

	dctx, cancel := b.withTimeout(ctx)
	defer cancel()
	sol, err := b.directions.Route(dctx, from, to, points, len(points) > 0)
	if err != nil {
		if errors.Is(err, maps.ErrNoRoute) {
			err = fmt.Errorf("%w: %w", ErrNoRoute, err)
		}
		return nil, &RoutingError{Err: err}
	}
	if sol == nil || len(sol.Legs) == 0 {
		return nil, &RoutingError{Err: ErrNoRoute}
	}

	b.log.Debug("route built",
		zap.String("origin", origin),
		zap.String("destination", destination),
		zap.Int("requested_stops", len(stops)),
		zap.Int("legs", len(sol.Legs)),
	)
	return assemble(origin, destination, sol, stops), nil
}

// geocodeEndpoints resolves both names concurrently. When both fail the
// origin's error is reported.
func (b *Builder) geocodeEndpoints(ctx context.Context, origin, destination string) (types.Point, types.Point, error) {
	var (
		g              errgroup.Group
		from, to       types.Point
		fromErr, toErr error
	)
	g.Go(func() error {
		from, fromErr = b.geocode(ctx, SideOrigin, origin)
		return nil
	})
	g.Go(func() error {
		to, toErr = b.geocode(ctx, SideDestination, destination)
		return nil
	})
	_ = g.Wait()

	if fromErr != nil {
		return types.Point{}, types.Point{}, fromErr
	}
	if toErr != nil {
		return types.Point{}, types.Point{}, toErr
	}
	return from, to, nil
}

func (b *Builder) geocode(ctx context.Context, side Side, query string) (types.Point, error) {
	if strings.TrimSpace(query) == "" {
		return types.Point{}, &LocationNotFoundError{Side: side, Query: query}
	}
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	p, ok, err := b.geocoder.Geocode(ctx, query)
	if err != nil {
		return types.Point{}, &RoutingError{Err: fmt.Errorf("geocode %s %q: %w", side, query, err)}
	}
	if !ok {
		return types.Point{}, &LocationNotFoundError{Side: side, Query: query}
	}
	return p, nil
}

func (b *Builder) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, b.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

// assemble walks the legs in the provider's order: origin at the first leg's
// start, a stop at every later leg's start, destination at the last leg's end.
func assemble(origin, destination string, sol *maps.RouteSolution, stops []sites.Site) *Result {
	legs := sol.Legs
	labels := matchStops(sol, stops)

	res := &Result{
		Polyline: sol.Polyline,
		Markers:  make([]Marker, 0, len(legs)+1),
	}
	res.Markers = append(res.Markers, Marker{Type: MarkerOrigin, Title: origin, Coordinates: legs[0].Start})
	for i := 1; i < len(legs); i++ {
		m := Marker{Type: MarkerWaypoint, Title: unnamedStopTitle, Coordinates: legs[i].Start}
		if s := labels[i-1]; s != nil {
			m.Title = s.Name
			m.Description = s.Description
			m.SiteID = s.ID
		}
		res.Markers = append(res.Markers, m)
	}
	res.Markers = append(res.Markers, Marker{Type: MarkerDestination, Title: destination, Coordinates: legs[len(legs)-1].End})

	for _, leg := range legs {
		res.Summary.DistanceMeters += leg.DistanceMeters
		res.Summary.DurationSeconds += int64(leg.Duration / time.Second)
	}
	return res
}

// matchStops pairs each interior leg boundary with the site visited there.
// The provider's waypoint order is trusted when it is consistent; otherwise
// each boundary takes the nearest unused site.
func matchStops(sol *maps.RouteSolution, stops []sites.Site) []*sites.Site {
	n := len(sol.Legs) - 1
	out := make([]*sites.Site, n)
	if n == 0 {
		return out
	}

	if validOrder(sol.WaypointOrder, n, len(stops)) {
		for i, idx := range sol.WaypointOrder {
			out[i] = &stops[idx]
		}
		return out
	}

	used := make([]bool, len(stops))
	for i := 0; i < n; i++ {
		best, bestDist := -1, math.Inf(1)
		for j := range stops {
			if used[j] {
				continue
			}
			if d := geo.HaversineKm(stops[j].Coordinates, sol.Legs[i+1].Start); d < bestDist {
				best, bestDist = j, d
			}
		}
		if best >= 0 {
			used[best] = true
			out[i] = &stops[best]
		}
	}
	return out
}

func validOrder(order []int, n, stops int) bool {
	if len(order) != n {
		return false
	}
	seen := make(map[int]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= stops || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}

func buildStatus(err error) string {
	var nf *LocationNotFoundError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &nf):
		return "location_not_found"
	default:
		return "routing_error"
	}
}
