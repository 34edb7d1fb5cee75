package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"nusavarta/internal/metrics"
	"nusavarta/internal/types"
)

// Place represents a simplified location result.
type Place struct {
	Name     string
	Address  string
	PlaceID  string
	Location types.Point
}

// PlacesService handles interactions with the Google Places API.
type PlacesService struct {
	client *maps.Client
	opts   Options
}

func NewPlacesService(client *maps.Client, opts Options) *PlacesService {
	return &PlacesService{client: client, opts: opts}
}

// FindPlace runs a text search and returns the best match. Useful for
// landmark names the geocoder does not know ("Saung Angklung Udjo").
func (s *PlacesService) FindPlace(ctx context.Context, query string) (Place, bool, error) {
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    query,
		Language: s.opts.Language,
		Region:   s.opts.Region,
	})
	metrics.MapsRequests.WithLabelValues("text_search", metrics.Status(err)).Inc()
	if isNoResult(err) {
		return Place{}, false, nil
	}
	if err != nil {
		return Place{}, false, fmt.Errorf("places api error: %w", err)
	}
	if len(resp.Results) == 0 {
		return Place{}, false, nil
	}

	r := resp.Results[0]
	return Place{
		Name:     r.Name,
		Address:  r.FormattedAddress,
		PlaceID:  r.PlaceID,
		Location: types.Point{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
	}, true, nil
}
