// Package csg implements the kernel.Kernel interface with the native
// BSP-tree boolean engine from pkg/csg. Unlike the SDF backend it works
// directly on polygon meshes, so boolean results are exact to the input
// tessellation and ToMesh is a straight triangulation rather than a
// surface reconstruction.
package csg

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	geom "github.com/solidmodel/csgkit/pkg/csg"
	"github.com/solidmodel/csgkit/pkg/csg/primitives"
	"github.com/solidmodel/csgkit/pkg/kernel"
	"github.com/solidmodel/csgkit/pkg/tessellate"
)

// Compile-time interface check.
var _ kernel.Kernel = (*CSGKernel)(nil)

// csgSolid wraps a *geom.Solid to implement kernel.Solid.
type csgSolid struct {
	s *geom.Solid
}

// BoundingBox returns the axis-aligned bounding box.
func (s *csgSolid) BoundingBox() (min, max [3]float64) {
	lo, hi := s.s.BoundingBox()
	min = [3]float64{lo.X, lo.Y, lo.Z}
	max = [3]float64{hi.X, hi.Y, hi.Z}
	return min, max
}

// CSGKernel implements kernel.Kernel using the native boolean engine.
type CSGKernel struct{}

// New returns a new CSGKernel.
func New() *CSGKernel {
	return &CSGKernel{}
}

// unwrap extracts the underlying solid from a kernel.Solid.
func unwrap(s kernel.Solid) *geom.Solid {
	return s.(*csgSolid).s
}

// wrap creates a kernel.Solid from a *geom.Solid.
func wrap(s *geom.Solid) kernel.Solid {
	return &csgSolid{s: s}
}

// Box creates a box with the given dimensions. The resulting solid has
// its minimum corner at the origin (0,0,0), matching the sdfx backend,
// so placement translations work the same against either kernel.
func (k *CSGKernel) Box(x, y, z float64) kernel.Solid {
	s, err := primitives.Box(v3.Vec{X: x, Y: y, Z: z})
	if err != nil {
		panic(fmt.Sprintf("csg.Box: %v", err))
	}
	// Shift from center-origin to min-corner-origin.
	return wrap(s.Translate(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2}))
}

// Cylinder creates a cylinder with the given height, radius and number
// of circular segments, centered at the origin.
func (k *CSGKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	s, err := primitives.Cylinder(radius, height, segments)
	if err != nil {
		panic(fmt.Sprintf("csg.Cylinder: %v", err))
	}
	return wrap(s)
}

// Sphere creates a sphere with the given radius and longitudinal segment
// count, centered at the origin.
func (k *CSGKernel) Sphere(radius float64, segments int) kernel.Solid {
	s, err := primitives.Sphere(radius, segments)
	if err != nil {
		panic(fmt.Sprintf("csg.Sphere: %v", err))
	}
	return wrap(s)
}

// Union returns the union of two solids.
func (k *CSGKernel) Union(a, b kernel.Solid) kernel.Solid {
	s, err := geom.Union(unwrap(a), unwrap(b))
	if err != nil {
		panic(fmt.Sprintf("csg.Union: %v", err))
	}
	return wrap(s)
}

// Difference returns the difference a - b.
func (k *CSGKernel) Difference(a, b kernel.Solid) kernel.Solid {
	s, err := geom.Subtract(unwrap(a), unwrap(b))
	if err != nil {
		panic(fmt.Sprintf("csg.Difference: %v", err))
	}
	return wrap(s)
}

// Intersection returns the intersection of two solids.
func (k *CSGKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	s, err := geom.Intersect(unwrap(a), unwrap(b))
	if err != nil {
		panic(fmt.Sprintf("csg.Intersection: %v", err))
	}
	return wrap(s)
}

// Translate moves a solid by (x, y, z).
func (k *CSGKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return wrap(unwrap(s).Translate(v3.Vec{X: x, Y: y, Z: z}))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *CSGKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0
	return wrap(unwrap(s).Rotate(xRad, yRad, zRad))
}

// ToMesh converts a solid to a triangle mesh by fanning its polygons.
func (k *CSGKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	return tessellate.Solid(unwrap(s), "")
}
