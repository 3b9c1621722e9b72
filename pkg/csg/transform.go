package csg

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Transform returns a copy of the solid with m baked into every vertex.
// Solids never carry a pending matrix; downstream code always sees final
// coordinates. A mirroring transform reverses each polygon's vertex
// order so windings keep their normals pointing outward.
func (s *Solid) Transform(m sdf.M44) *Solid {
	mirror := isMirroring(m)
	polys := make([]*Polygon, 0, len(s.polygons))
	for _, p := range s.polygons {
		vs := make([]v3.Vec, len(p.vertices))
		for i, v := range p.vertices {
			vs[i] = m.MulPosition(v)
		}
		if mirror {
			for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
				vs[i], vs[j] = vs[j], vs[i]
			}
		}
		// Planes are recomputed lazily from the transformed vertices.
		polys = append(polys, NewPolygon(vs))
	}
	return FromPolygons(polys)
}

// Translate moves the solid by v.
func (s *Solid) Translate(v v3.Vec) *Solid {
	return s.Transform(sdf.Translate3d(v))
}

// Rotate rotates the solid around the X, Y then Z axes by the given
// angles in radians.
func (s *Solid) Rotate(x, y, z float64) *Solid {
	m := sdf.RotateZ(z).Mul(sdf.RotateY(y)).Mul(sdf.RotateX(x))
	return s.Transform(m)
}

// Scale scales the solid per axis. Negative factors mirror.
func (s *Solid) Scale(v v3.Vec) *Solid {
	return s.Transform(sdf.Scale3d(v))
}

// isMirroring reports whether m flips handedness, by testing whether the
// transformed basis is left-handed.
func isMirroring(m sdf.M44) bool {
	o := m.MulPosition(v3.Vec{})
	x := m.MulPosition(v3.Vec{X: 1}).Sub(o)
	y := m.MulPosition(v3.Vec{Y: 1}).Sub(o)
	z := m.MulPosition(v3.Vec{Z: 1}).Sub(o)
	return x.Cross(y).Dot(z) < 0
}
