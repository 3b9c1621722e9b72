package csg

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultSnapTolerance is the grid size used when snapping solids that
// came out of long boolean chains. It matches EPS so snapping can never
// move a vertex across a classification boundary it was not already
// straddling.
const DefaultSnapTolerance = EPS

// SnapPolygons quantizes every vertex to a grid of the given tolerance,
// merging vertices that land on the same grid point. Repeated splitting
// accumulates tiny positional drift; snapping between operations keeps
// that drift from compounding into cracked meshes. Polygons that
// degenerate in the process (fewer than three distinct vertices, or an
// area at the quantization noise floor) are dropped.
func SnapPolygons(tolerance float64, polygons []*Polygon) []*Polygon {
	if tolerance <= 0 {
		tolerance = DefaultSnapTolerance
	}
	// Area below that of an equilateral triangle with tolerance-length
	// sides is quantization noise, not geometry.
	minArea := tolerance * tolerance * math.Sqrt(3) / 4

	result := make([]*Polygon, 0, len(polygons))
	for _, p := range polygons {
		snapped := make([]v3.Vec, 0, len(p.vertices))
		for _, v := range p.vertices {
			snapped = append(snapped, snapVertex(v, tolerance))
		}
		// Merge consecutive vertices that collapsed onto one grid point.
		distinct := make([]v3.Vec, 0, len(snapped))
		for i, v := range snapped {
			next := snapped[(i+1)%len(snapped)]
			if v != next {
				distinct = append(distinct, v)
			}
		}
		if len(distinct) < 3 {
			continue
		}
		q := NewPolygon(distinct)
		if math.Abs(q.Area()) <= minArea {
			continue
		}
		result = append(result, q)
	}
	return result
}

// Snapped returns the solid with all polygons snapped to the given grid.
func (s *Solid) Snapped(tolerance float64) *Solid {
	return FromPolygons(SnapPolygons(tolerance, s.polygons))
}

func snapVertex(v v3.Vec, tolerance float64) v3.Vec {
	return v3.Vec{
		X: math.Round(v.X/tolerance) * tolerance,
		Y: math.Round(v.Y/tolerance) * tolerance,
		Z: math.Round(v.Z/tolerance) * tolerance,
	}
}
