// Package geo contains pure geographic computation helpers.
package geo

import (
	"math"

	"nusavarta/internal/types"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometres between two points.
func HaversineKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// BBox is an axis-aligned latitude/longitude rectangle.
type BBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// BoundsOf returns the smallest box containing both points. The result does
// not depend on argument order.
func BoundsOf(a, b types.Point) BBox {
	return BBox{
		MinLat: math.Min(a.Lat, b.Lat),
		MaxLat: math.Max(a.Lat, b.Lat),
		MinLng: math.Min(a.Lng, b.Lng),
		MaxLng: math.Max(a.Lng, b.Lng),
	}
}

// ContainsStrict reports whether p lies strictly inside the box. Points on an
// edge are outside, so a degenerate box (shared latitude or longitude)
// contains nothing.
func (b BBox) ContainsStrict(p types.Point) bool {
	return p.Lat > b.MinLat && p.Lat < b.MaxLat &&
		p.Lng > b.MinLng && p.Lng < b.MaxLng
}

// DistanceToSegmentKm approximates the distance from p to the segment a-b using
// an equirectangular projection centred on the segment. Good enough at city scale.
func DistanceToSegmentKm(p, a, b types.Point) float64 {
	// Canonical endpoint order keeps the result bit-identical when a and b are swapped.
	if b.Lat < a.Lat || (b.Lat == a.Lat && b.Lng < a.Lng) {
		a, b = b, a
	}

	refLat := degreesToRadians((a.Lat + b.Lat) / 2)
	project := func(q types.Point) (float64, float64) {
		x := degreesToRadians(q.Lng) * math.Cos(refLat) * earthRadiusKm
		y := degreesToRadians(q.Lat) * earthRadiusKm
		return x, y
	}

	ax, ay := project(a)
	bx, by := project(b)
	px, py := project(p)

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}

// SortByDistance performs a stable insertion sort (fine for small N) on any
// slice where each element exposes a distance via the accessor function.
func SortByDistance[T any](items []T, dist func(T) float64) {
	for i := 1; i < len(items); i++ {
		key := items[i]
		j := i - 1
		for j >= 0 && dist(items[j]) > dist(key) {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
}
