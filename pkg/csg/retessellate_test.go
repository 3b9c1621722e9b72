package csg

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func xySquare(x0, y0, x1, y1 float64) *Polygon {
	return NewPolygon([]v3.Vec{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
	})
}

func totalArea(t *testing.T, s *Solid) float64 {
	t.Helper()
	var sum float64
	for _, p := range s.Polygons() {
		sum += math.Abs(p.Area())
	}
	return sum
}

func TestRetessellateMergesSharedEdge(t *testing.T) {
	s := FromPolygons([]*Polygon{
		xySquare(0, 0, 1, 1),
		xySquare(1, 0, 2, 1),
	})
	got := Retessellate(s)
	if n := len(got.Polygons()); n != 1 {
		t.Fatalf("polygon count = %d, want 1", n)
	}
	merged := got.Polygons()[0]
	if n := len(merged.Vertices()); n != 4 {
		t.Errorf("vertex count = %d, want 4 (collinear seam vertices dropped)", n)
	}
	if a := merged.Area(); math.Abs(a-2) > 1e-9 {
		t.Errorf("area = %g, want 2", a)
	}
}

func TestRetessellateMergesToFixpoint(t *testing.T) {
	// Four quadrants of a 2x2 face merge pairwise into rectangles, then
	// into the full face on a later pass.
	s := FromPolygons([]*Polygon{
		xySquare(0, 0, 1, 1),
		xySquare(1, 0, 2, 1),
		xySquare(0, 1, 1, 2),
		xySquare(1, 1, 2, 2),
	})
	got := Retessellate(s)
	if n := len(got.Polygons()); n != 1 {
		t.Fatalf("polygon count = %d, want 1", n)
	}
	if a := got.Polygons()[0].Area(); math.Abs(a-4) > 1e-9 {
		t.Errorf("area = %g, want 4", a)
	}
}

func TestRetessellateNoMerge(t *testing.T) {
	tests := []struct {
		name  string
		polys []*Polygon
	}{
		{
			// The shared boundary is only half an edge on one side, so
			// the directed edge keys never pair up.
			"partial edge overlap",
			[]*Polygon{
				xySquare(0, 0, 1, 1),
				xySquare(1, 0.5, 2, 1.5),
			},
		},
		{
			// Merging would produce a reflex vertex.
			"non-convex result",
			[]*Polygon{
				xySquare(0, 0, 1, 1),
				NewPolygon([]v3.Vec{{X: 1, Y: 1}, {X: 1, Y: 0}, {X: 3, Y: 2}}),
			},
		},
		{
			// Same shape, opposite facing: different plane buckets.
			"opposed normals",
			[]*Polygon{
				xySquare(0, 0, 1, 1),
				xySquare(1, 0, 2, 1).Flipped(),
			},
		},
		{
			// Parallel but offset planes.
			"different planes",
			[]*Polygon{
				xySquare(0, 0, 1, 1),
				NewPolygon([]v3.Vec{{X: 1, Z: 1}, {X: 2, Z: 1}, {X: 2, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}}),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := FromPolygons(tt.polys)
			got := Retessellate(before)
			if n := len(got.Polygons()); n != len(tt.polys) {
				t.Errorf("polygon count = %d, want %d", n, len(tt.polys))
			}
			if ba, ga := totalArea(t, before), totalArea(t, got); math.Abs(ba-ga) > 1e-9 {
				t.Errorf("total area changed: %g -> %g", ba, ga)
			}
		})
	}
}

func TestRetessellatePreservesVolume(t *testing.T) {
	// A cube with one face pre-split in two. Merging the face back must
	// not change the enclosed volume.
	top := []*Polygon{
		NewPolygon([]v3.Vec{{X: -1, Y: -1, Z: 1}, {X: 0, Y: -1, Z: 1}, {X: 0, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1}}),
		NewPolygon([]v3.Vec{{X: 0, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1}}),
	}
	rest := []*Polygon{
		NewPolygon([]v3.Vec{{X: -1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: -1, Z: -1}}),
		NewPolygon([]v3.Vec{{X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}}),
		NewPolygon([]v3.Vec{{X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: 1}}),
		NewPolygon([]v3.Vec{{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1}}),
		NewPolygon([]v3.Vec{{X: -1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}}),
	}
	s := FromPolygons(append(top, rest...))
	volBefore := s.Volume()
	got := Retessellate(s)
	if n := len(got.Polygons()); n != 6 {
		t.Errorf("polygon count = %d, want 6", n)
	}
	if v := got.Volume(); math.Abs(v-volBefore) > 1e-9 {
		t.Errorf("volume changed: %g -> %g", volBefore, v)
	}
	if math.Abs(volBefore-8) > 1e-9 {
		t.Errorf("cube volume = %g, want 8", volBefore)
	}
}
