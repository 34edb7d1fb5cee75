package route

import (
	"cmp"
	"slices"

	"nusavarta/internal/geo"
	"nusavarta/internal/modules/sites"
	"nusavarta/internal/types"
)

// SelectWaypoints returns the located sites strictly inside the bounding box
// of a and b, nearest to the straight a-b segment first, at most limit of them
// (limit <= 0 means no cap). The result does not depend on the order of a and b.
func SelectWaypoints(candidates []sites.Site, a, b types.Point, limit int) []sites.Site {
	box := geo.BoundsOf(a, b)

	type scored struct {
		site sites.Site
		dist float64
	}
	var inside []scored
	for _, s := range candidates {
		if !s.Located() || !box.ContainsStrict(s.Coordinates) {
			continue
		}
		inside = append(inside, scored{site: s, dist: geo.DistanceToSegmentKm(s.Coordinates, a, b)})
	}

	// Both sorts are stable: ordering by id first breaks distance ties by id.
	slices.SortStableFunc(inside, func(x, y scored) int { return cmp.Compare(x.site.ID, y.site.ID) })
	geo.SortByDistance(inside, func(s scored) float64 { return s.dist })

	if limit > 0 && len(inside) > limit {
		inside = inside[:limit]
	}
	out := make([]sites.Site, len(inside))
	for i, s := range inside {
		out[i] = s.site
	}
	return out
}
