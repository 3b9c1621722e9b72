// Package primitives generates polygon solids consumed by the csg
// boolean engine. Every generator returns a closed, convex-faced solid
// centered at the origin; callers position shapes with csg transforms.
package primitives

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/solidmodel/csgkit/pkg/csg"
)

// Corner i of a box has coordinate signs taken from the low three bits
// of i: bit 0 is +X, bit 1 is +Y, bit 2 is +Z.
var boxFaces = [6][4]int{
	{0, 4, 6, 2}, // -X
	{1, 3, 7, 5}, // +X
	{0, 1, 5, 4}, // -Y
	{2, 6, 7, 3}, // +Y
	{0, 2, 3, 1}, // -Z
	{4, 5, 7, 6}, // +Z
}

// Cube returns an axis-aligned cube with the given edge length.
func Cube(size float64) (*csg.Solid, error) {
	return Box(v3.Vec{X: size, Y: size, Z: size})
}

// Box returns an axis-aligned box with the given dimensions.
func Box(dims v3.Vec) (*csg.Solid, error) {
	if dims.X <= 0 || dims.Y <= 0 || dims.Z <= 0 {
		return nil, fmt.Errorf("primitives: box dimensions must be positive, got (%g, %g, %g)", dims.X, dims.Y, dims.Z)
	}
	half := dims.MulScalar(0.5)
	var corners [8]v3.Vec
	for i := range corners {
		c := half.Neg()
		if i&1 != 0 {
			c.X = half.X
		}
		if i&2 != 0 {
			c.Y = half.Y
		}
		if i&4 != 0 {
			c.Z = half.Z
		}
		corners[i] = c
	}
	polys := make([]*csg.Polygon, 0, len(boxFaces))
	for _, face := range boxFaces {
		vs := []v3.Vec{corners[face[0]], corners[face[1]], corners[face[2]], corners[face[3]]}
		polys = append(polys, csg.NewPolygon(vs))
	}
	return csg.FromPolygons(polys), nil
}
