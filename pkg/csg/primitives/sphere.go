package primitives

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/solidmodel/csgkit/pkg/csg"
)

// DefaultSegments is the longitudinal resolution used when a caller
// passes a non-positive segment count.
const DefaultSegments = 32

// Sphere returns a latitude/longitude tessellated sphere. segments sets
// the slice count around the equator; the stack count is half that. The
// faces are quads except for the triangles meeting at the poles.
func Sphere(radius float64, segments int) (*csg.Solid, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("primitives: sphere radius must be positive, got %g", radius)
	}
	if segments <= 0 {
		segments = DefaultSegments
	}
	if segments < 4 {
		segments = 4
	}
	stacks := segments / 2

	point := func(slice, stack int) v3.Vec {
		// Exact poles, so the degenerate quad corners there compare
		// equal and collapse cleanly.
		if stack == 0 {
			return v3.Vec{Z: radius}
		}
		if stack == stacks {
			return v3.Vec{Z: -radius}
		}
		// Wrap the seam so slice==segments reproduces slice==0 exactly.
		theta := 2 * math.Pi * float64(slice%segments) / float64(segments)
		phi := math.Pi * float64(stack) / float64(stacks)
		return v3.Vec{
			X: radius * math.Sin(phi) * math.Cos(theta),
			Y: radius * math.Sin(phi) * math.Sin(theta),
			Z: radius * math.Cos(phi),
		}
	}

	var polys []*csg.Polygon
	for stack := 0; stack < stacks; stack++ {
		for slice := 0; slice < segments; slice++ {
			quad := []v3.Vec{
				point(slice, stack),
				point(slice, stack+1),
				point(slice+1, stack+1),
				point(slice+1, stack),
			}
			// At the poles two corners coincide and the quad is really
			// a triangle.
			vs := make([]v3.Vec, 0, len(quad))
			for i, v := range quad {
				if v != quad[(i+1)%len(quad)] {
					vs = append(vs, v)
				}
			}
			if len(vs) < 3 {
				continue
			}
			polys = append(polys, csg.NewPolygon(vs))
		}
	}
	return csg.FromPolygons(polys), nil
}
