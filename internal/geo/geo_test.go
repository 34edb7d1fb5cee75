package geo

import (
	"math"
	"testing"

	"nusavarta/internal/types"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      types.Point
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         types.Point{Lat: -6.9022, Lng: 107.6186},
			b:         types.Point{Lat: -6.9022, Lng: 107.6186},
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "Gedung Sate to Jalan Braga (~2km)",
			a:         types.Point{Lat: -6.9022, Lng: 107.6186},
			b:         types.Point{Lat: -6.9173, Lng: 107.6098},
			wantKm:    1.9,
			tolerance: 0.3,
		},
		{
			name:      "Monas to Borobudur (~400km)",
			a:         types.Point{Lat: -6.1754, Lng: 106.8272},
			b:         types.Point{Lat: -7.6079, Lng: 110.2038},
			wantKm:    405,
			tolerance: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("HaversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	a := types.Point{Lat: -6.0, Lng: 106.0}
	b := types.Point{Lat: -7.0, Lng: 107.0}
	if d1, d2 := HaversineKm(a, b), HaversineKm(b, a); math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

func TestBBox_ContainsStrict(t *testing.T) {
	box := BoundsOf(types.Point{Lat: -6.0, Lng: 108.0}, types.Point{Lat: -7.0, Lng: 107.0})

	tests := []struct {
		name string
		p    types.Point
		want bool
	}{
		{"interior", types.Point{Lat: -6.5, Lng: 107.5}, true},
		{"on min latitude edge", types.Point{Lat: -7.0, Lng: 107.5}, false},
		{"on max longitude edge", types.Point{Lat: -6.5, Lng: 108.0}, false},
		{"corner", types.Point{Lat: -6.0, Lng: 107.0}, false},
		{"outside", types.Point{Lat: -5.0, Lng: 107.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.ContainsStrict(tt.p); got != tt.want {
				t.Errorf("ContainsStrict(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBBox_DegenerateContainsNothing(t *testing.T) {
	box := BoundsOf(types.Point{Lat: -6.9, Lng: 107.0}, types.Point{Lat: -6.9, Lng: 108.0})
	if box.ContainsStrict(types.Point{Lat: -6.9, Lng: 107.5}) {
		t.Error("a zero-height box must not contain points on its line")
	}
}

func TestBoundsOf_OrderIndependent(t *testing.T) {
	a := types.Point{Lat: -6.1, Lng: 106.8}
	b := types.Point{Lat: -6.9, Lng: 107.6}
	if BoundsOf(a, b) != BoundsOf(b, a) {
		t.Error("BoundsOf depends on argument order")
	}
}

func TestDistanceToSegmentKm(t *testing.T) {
	a := types.Point{Lat: 0, Lng: 0}
	b := types.Point{Lat: 0, Lng: 1}

	on := DistanceToSegmentKm(types.Point{Lat: 0, Lng: 0.5}, a, b)
	if on > 1e-9 {
		t.Errorf("point on segment: got %f km", on)
	}

	off := DistanceToSegmentKm(types.Point{Lat: 0.1, Lng: 0.5}, a, b)
	if math.Abs(off-11.1) > 0.2 {
		t.Errorf("0.1 degree north of equator segment: got %f km, want ~11.1", off)
	}

	p := types.Point{Lat: 0.03, Lng: 0.2}
	if DistanceToSegmentKm(p, a, b) != DistanceToSegmentKm(p, b, a) {
		t.Error("distance must be identical when endpoints are swapped")
	}

	beyond := DistanceToSegmentKm(types.Point{Lat: 0, Lng: 2}, a, b)
	if math.Abs(beyond-HaversineKm(b, types.Point{Lat: 0, Lng: 2})) > 0.5 {
		t.Errorf("point beyond endpoint should measure to that endpoint, got %f", beyond)
	}
}

func TestSortByDistance(t *testing.T) {
	type item struct {
		id   string
		dist float64
	}
	items := []item{{"c", 5}, {"a", 1}, {"b", 3}, {"a2", 1}}

	SortByDistance(items, func(i item) float64 { return i.dist })

	want := []string{"a", "a2", "b", "c"}
	for i, w := range want {
		if items[i].id != w {
			t.Fatalf("unexpected sort order: %v", items)
		}
	}
}

func TestSortByDistance_Empty(t *testing.T) {
	var items []float64
	SortByDistance(items, func(f float64) float64 { return f })
}
