package csg

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Polygon is a convex, planar, simple loop of three or more vertices.
// Winding order determines the outward normal by the right-hand rule.
//
// A polygon's vertex list is never mutated after construction, so the
// plane and bounding sphere are computed at most once and cached for the
// life of the instance.
type Polygon struct {
	vertices []v3.Vec

	plane  *Plane
	sphere *boundingSphere
}

// boundingSphere is a cheap enclosing sphere: the center of the vertex
// bounding box and the largest vertex distance from it.
type boundingSphere struct {
	center v3.Vec
	radius float64
}

// NewPolygon wraps an ordered vertex loop as a polygon. The vertices are
// not validated; non-planar or concave input produces undefined results
// in later operations.
func NewPolygon(vertices []v3.Vec) *Polygon {
	return &Polygon{vertices: vertices}
}

// newPolygonWithPlane wraps a vertex loop whose plane is already known.
// Split fragments inherit the parent polygon's plane this way, so a
// sliver fragment never has to derive a plane from near-collinear points.
func newPolygonWithPlane(vertices []v3.Vec, plane Plane) *Polygon {
	pl := plane
	return &Polygon{vertices: vertices, plane: &pl}
}

// Vertices returns the polygon's vertex loop. The caller must not modify it.
func (p *Polygon) Vertices() []v3.Vec {
	return p.vertices
}

// Plane returns the polygon's plane, derived from the first three
// vertices on first use and cached afterwards.
func (p *Polygon) Plane() (Plane, error) {
	if p.plane != nil {
		return *p.plane, nil
	}
	if len(p.vertices) < 3 {
		return Plane{}, fmt.Errorf("csg: polygon with %d vertices has no plane", len(p.vertices))
	}
	pl, err := NewPlane(p.vertices[0], p.vertices[1], p.vertices[2])
	if err != nil {
		return Plane{}, err
	}
	p.plane = &pl
	return pl, nil
}

// BoundingSphere returns a sphere containing every vertex of the polygon.
// Computed on first use and cached afterwards.
func (p *Polygon) BoundingSphere() (center v3.Vec, radius float64) {
	if p.sphere != nil {
		return p.sphere.center, p.sphere.radius
	}
	s := &boundingSphere{}
	if len(p.vertices) > 0 {
		min := p.vertices[0]
		max := p.vertices[0]
		for _, v := range p.vertices[1:] {
			min = min.Min(v)
			max = max.Max(v)
		}
		s.center = min.Add(max).MulScalar(0.5)
		for _, v := range p.vertices {
			if d := v.Sub(s.center).Length(); d > s.radius {
				s.radius = d
			}
		}
	}
	p.sphere = s
	return s.center, s.radius
}

// Flipped returns a copy of the polygon with reversed winding, so its
// normal points the other way. Cached quantities carry over.
func (p *Polygon) Flipped() *Polygon {
	n := len(p.vertices)
	rev := make([]v3.Vec, n)
	for i, v := range p.vertices {
		rev[n-1-i] = v
	}
	q := &Polygon{vertices: rev, sphere: p.sphere}
	if p.plane != nil {
		fl := p.plane.Flipped()
		q.plane = &fl
	}
	return q
}

// Area returns the polygon's area. Degenerate polygons measure zero.
func (p *Polygon) Area() float64 {
	if len(p.vertices) < 3 {
		return 0
	}
	pl, err := p.Plane()
	if err != nil {
		return 0
	}
	var sum v3.Vec
	for i, v := range p.vertices {
		next := p.vertices[(i+1)%len(p.vertices)]
		sum = sum.Add(v.Cross(next))
	}
	return pl.Normal.Dot(sum) / 2
}

// signedVolume returns the polygon's contribution to the volume of the
// solid that contains it, as a fan of tetrahedra against the origin.
func (p *Polygon) signedVolume() float64 {
	var total float64
	for i := 2; i < len(p.vertices); i++ {
		a, b, c := p.vertices[0], p.vertices[i-1], p.vertices[i]
		total += a.Dot(b.Cross(c)) / 6
	}
	return total
}
