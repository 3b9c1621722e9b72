package primitives

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/solidmodel/csgkit/pkg/csg"
)

// Cylinder returns a cylinder along the Z axis, centered at the origin.
// The side is tessellated into the given number of quads; the caps are
// single convex n-gons.
func Cylinder(radius, height float64, segments int) (*csg.Solid, error) {
	if radius <= 0 || height <= 0 {
		return nil, fmt.Errorf("primitives: cylinder radius and height must be positive, got r=%g h=%g", radius, height)
	}
	if segments <= 0 {
		segments = DefaultSegments
	}
	if segments < 3 {
		segments = 3
	}

	rim := func(slice int, z float64) v3.Vec {
		theta := 2 * math.Pi * float64(slice%segments) / float64(segments)
		return v3.Vec{
			X: radius * math.Cos(theta),
			Y: radius * math.Sin(theta),
			Z: z,
		}
	}

	top := height / 2
	bottom := -height / 2
	polys := make([]*csg.Polygon, 0, segments+2)
	topCap := make([]v3.Vec, 0, segments)
	bottomCap := make([]v3.Vec, 0, segments)
	for slice := 0; slice < segments; slice++ {
		polys = append(polys, csg.NewPolygon([]v3.Vec{
			rim(slice, bottom),
			rim(slice+1, bottom),
			rim(slice+1, top),
			rim(slice, top),
		}))
		topCap = append(topCap, rim(slice, top))
		// The bottom cap winds the other way so its normal points down.
		bottomCap = append(bottomCap, rim(segments-slice, bottom))
	}
	polys = append(polys, csg.NewPolygon(topCap), csg.NewPolygon(bottomCap))
	return csg.FromPolygons(polys), nil
}
