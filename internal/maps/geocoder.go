package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"nusavarta/internal/metrics"
	"nusavarta/internal/types"
)

// Geocoder resolves free-text place names, trying the Geocoding API first and
// Places text search second.
type Geocoder struct {
	client *maps.Client
	places *PlacesService
	opts   Options
}

func NewGeocoder(client *maps.Client, places *PlacesService, opts Options) *Geocoder {
	return &Geocoder{client: client, places: places, opts: opts}
}

// Geocode returns found=false with a nil error when neither API knows the name.
func (g *Geocoder) Geocode(ctx context.Context, address string) (types.Point, bool, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  address,
		Region:   g.opts.Region,
		Language: g.opts.Language,
	})
	metrics.MapsRequests.WithLabelValues("geocode", metrics.Status(err)).Inc()
	if err != nil && !isNoResult(err) {
		return types.Point{}, false, fmt.Errorf("geocoding api error: %w", err)
	}
	if err == nil && len(results) > 0 {
		loc := results[0].Geometry.Location
		return types.Point{Lat: loc.Lat, Lng: loc.Lng}, true, nil
	}

	if g.places == nil {
		return types.Point{}, false, nil
	}
	place, ok, err := g.places.FindPlace(ctx, address)
	if err != nil || !ok {
		return types.Point{}, false, err
	}
	return place.Location, true, nil
}
