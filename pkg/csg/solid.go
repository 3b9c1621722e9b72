package csg

import v3 "github.com/deadsy/sdfx/vec/v3"

// Solid is a 3D solid bounded by convex planar polygons. The polygon
// list is flat; any transform a caller wants applied must be baked into
// the vertex coordinates (see Transform) before the solid reaches the
// boolean engine.
type Solid struct {
	polygons []*Polygon
}

// FromPolygons wraps a polygon list as a solid. The caller must not
// modify the slice afterwards.
func FromPolygons(polygons []*Polygon) *Solid {
	return &Solid{polygons: polygons}
}

// Empty returns a solid with no polygons.
func Empty() *Solid {
	return &Solid{}
}

// Polygons returns the solid's polygon list. The caller must not modify it.
func (s *Solid) Polygons() []*Polygon {
	return s.polygons
}

// IsEmpty reports whether the solid has no polygons.
func (s *Solid) IsEmpty() bool {
	return len(s.polygons) == 0
}

// Inverted returns the complement solid: every polygon winding flipped,
// so what was inside is now outside.
func (s *Solid) Inverted() *Solid {
	flipped := make([]*Polygon, len(s.polygons))
	for i, p := range s.polygons {
		flipped[i] = p.Flipped()
	}
	return FromPolygons(flipped)
}

// BoundingBox returns the axis-aligned bounding box over all vertices.
// An empty solid returns zero vectors.
func (s *Solid) BoundingBox() (min, max v3.Vec) {
	first := true
	for _, p := range s.polygons {
		for _, v := range p.vertices {
			if first {
				min, max = v, v
				first = false
				continue
			}
			min = min.Min(v)
			max = max.Max(v)
		}
	}
	return min, max
}

// Volume returns the enclosed volume, summing signed tetrahedron volumes
// over every polygon fan. The result is negative for inverted solids.
func (s *Solid) Volume() float64 {
	var total float64
	for _, p := range s.polygons {
		total += p.signedVolume()
	}
	return total
}

// SurfaceArea returns the total area of the solid's polygons.
func (s *Solid) SurfaceArea() float64 {
	var total float64
	for _, p := range s.polygons {
		total += p.Area()
	}
	return total
}
