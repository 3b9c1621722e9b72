package csg

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestSnapMergesNearVertices(t *testing.T) {
	// Two faces meeting at a corner that drifted apart by ~1e-6 during
	// clipping. Snapping at 1e-4 must land both on the same grid point.
	a := NewPolygon([]v3.Vec{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
	})
	b := NewPolygon([]v3.Vec{
		{X: 1 + 1e-6, Y: 1 - 1e-6, Z: 1e-6},
		{X: 2, Y: 1},
		{X: 2, Y: 2},
	})
	snapped := SnapPolygons(1e-4, []*Polygon{a, b})
	if len(snapped) != 2 {
		t.Fatalf("polygon count = %d, want 2", len(snapped))
	}
	corner := snapped[0].Vertices()[2]
	drifted := snapped[1].Vertices()[0]
	if corner != drifted {
		t.Errorf("vertices did not converge: %v vs %v", corner, drifted)
	}
}

func TestSnapPreservesDistinctVertices(t *testing.T) {
	// A 1e-3 separation is ten grid steps at tolerance 1e-4. It must
	// survive, and the snapped coordinate must stay where it was.
	p := NewPolygon([]v3.Vec{
		{X: 1, Y: 0},
		{X: 1.001, Y: 0},
		{X: 1.001, Y: 1},
		{X: 1, Y: 1},
	})
	snapped := SnapPolygons(1e-4, []*Polygon{p})
	if len(snapped) != 1 {
		t.Fatalf("polygon count = %d, want 1", len(snapped))
	}
	vs := snapped[0].Vertices()
	if len(vs) != 4 {
		t.Fatalf("vertex count = %d, want 4", len(vs))
	}
	if vs[0].X == vs[1].X {
		t.Error("distinct vertices collapsed")
	}
	if math.Abs(vs[1].X-1.001) > 1e-12 {
		t.Errorf("on-grid coordinate moved: %g", vs[1].X)
	}
}

func TestSnapDropsDegenerate(t *testing.T) {
	tests := []struct {
		name string
		poly *Polygon
	}{
		{
			// All three vertices collapse onto two grid points.
			"collapses below three vertices",
			NewPolygon([]v3.Vec{
				{X: 0, Y: 0},
				{X: 1, Y: 0},
				{X: 1, Y: 2e-5},
			}),
		},
		{
			// Distinct grid points but the area is quantization noise.
			"area at noise floor",
			NewPolygon([]v3.Vec{
				{X: 0, Y: 0},
				{X: 1, Y: 0},
				{X: 0.5, Y: 1e-5},
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SnapPolygons(1e-4, []*Polygon{tt.poly}); len(got) != 0 {
				t.Errorf("degenerate polygon survived: %v", got[0].Vertices())
			}
		})
	}
}

func TestSnapDefaultTolerance(t *testing.T) {
	p := NewPolygon([]v3.Vec{
		{X: 1e-7, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
	})
	// Non-positive tolerance falls back to the default grid.
	snapped := SnapPolygons(0, []*Polygon{p})
	if len(snapped) != 1 {
		t.Fatalf("polygon count = %d, want 1", len(snapped))
	}
	if got := snapped[0].Vertices()[0]; got != (v3.Vec{}) {
		t.Errorf("vertex = %v, want origin", got)
	}
}

func TestSolidSnapped(t *testing.T) {
	// A grid-aligned solid passes through snapping unchanged.
	cube := FromPolygons([]*Polygon{
		NewPolygon([]v3.Vec{{X: -5, Y: -5, Z: -5}, {X: -5, Y: -5, Z: 5}, {X: -5, Y: 5, Z: 5}, {X: -5, Y: 5, Z: -5}}),
		NewPolygon([]v3.Vec{{X: 5, Y: -5, Z: -5}, {X: 5, Y: 5, Z: -5}, {X: 5, Y: 5, Z: 5}, {X: 5, Y: -5, Z: 5}}),
		NewPolygon([]v3.Vec{{X: -5, Y: -5, Z: -5}, {X: 5, Y: -5, Z: -5}, {X: 5, Y: -5, Z: 5}, {X: -5, Y: -5, Z: 5}}),
		NewPolygon([]v3.Vec{{X: -5, Y: 5, Z: -5}, {X: -5, Y: 5, Z: 5}, {X: 5, Y: 5, Z: 5}, {X: 5, Y: 5, Z: -5}}),
		NewPolygon([]v3.Vec{{X: -5, Y: -5, Z: -5}, {X: -5, Y: 5, Z: -5}, {X: 5, Y: 5, Z: -5}, {X: 5, Y: -5, Z: -5}}),
		NewPolygon([]v3.Vec{{X: -5, Y: -5, Z: 5}, {X: 5, Y: -5, Z: 5}, {X: 5, Y: 5, Z: 5}, {X: -5, Y: 5, Z: 5}}),
	})
	snapped := cube.Snapped(DefaultSnapTolerance)
	if got := len(snapped.Polygons()); got != 6 {
		t.Fatalf("polygon count = %d, want 6", got)
	}
	if v := snapped.Volume(); math.Abs(v-1000) > 1e-9 {
		t.Errorf("volume = %g, want 1000", v)
	}
}
