package csg

import (
	"errors"
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrDegeneratePlane is reported when a plane is derived from collinear
// or coincident points. The error surfaces on first use of a polygon's
// plane, not when the polygon is constructed.
var ErrDegeneratePlane = errors.New("csg: degenerate plane from collinear points")

// minNormalLength is the smallest cross product magnitude accepted when
// deriving a plane normal from three points.
const minNormalLength = 1e-12

// Plane is the oriented plane n·p = w with unit normal n. Points with
// positive signed distance are in front of the plane.
type Plane struct {
	Normal v3.Vec
	W      float64
}

// NewPlane derives a plane from three points wound counter-clockwise
// when viewed from the front (right-hand rule).
func NewPlane(a, b, c v3.Vec) (Plane, error) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Length() < minNormalLength {
		return Plane{}, ErrDegeneratePlane
	}
	n = n.Normalize()
	return Plane{Normal: n, W: n.Dot(a)}, nil
}

// Flipped returns the same plane facing the other way.
func (p Plane) Flipped() Plane {
	return Plane{Normal: p.Normal.Neg(), W: -p.W}
}

// SignedDistanceTo returns the signed distance from pt to the plane.
func (p Plane) SignedDistanceTo(pt v3.Vec) float64 {
	return p.Normal.Dot(pt) - p.W
}

// String returns the plane as its four coefficients.
func (p Plane) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", p.Normal.X, p.Normal.Y, p.Normal.Z, p.W)
}
