package csg

import v3 "github.com/deadsy/sdfx/vec/v3"

// planeRelation classifies a polygon relative to a splitting plane.
type planeRelation int

const (
	relCoplanarFront planeRelation = iota // in the plane, normals agree
	relCoplanarBack                       // in the plane, normals oppose
	relFront                              // entirely on the normal side
	relBack                               // entirely behind the plane
	relSpanning                           // vertices on both sides
)

// splitResult is the outcome of splitPolygonByPlane. front and back are
// set only for relSpanning; either may be nil when the fragment on that
// side collapsed below three vertices and was dropped.
type splitResult struct {
	relation planeRelation
	front    *Polygon
	back     *Polygon
}

// splitPolygonByPlane classifies polygon against plane and, when the
// polygon spans the plane, clips it into a front and a back fragment.
// Vertices within EPS of the plane count as lying on it.
func splitPolygonByPlane(plane Plane, polygon *Polygon) (splitResult, error) {
	// A fragment produced by an earlier split against this same plane
	// carries the plane verbatim; no vertex test needed.
	if polygon.plane != nil && *polygon.plane == plane {
		return splitResult{relation: relCoplanarFront}, nil
	}

	// Bounding sphere fast path: when the sphere lies entirely on one
	// side of the plane the per-vertex classification must agree, so
	// skip it.
	center, radius := polygon.BoundingSphere()
	d := plane.SignedDistanceTo(center)
	if d > radius+EPS {
		return splitResult{relation: relFront}, nil
	}
	if d < -(radius + EPS) {
		return splitResult{relation: relBack}, nil
	}

	vertices := polygon.vertices
	numVertices := len(vertices)
	dists := make([]float64, numVertices)
	hasFront := false
	hasBack := false
	for i, v := range vertices {
		t := plane.SignedDistanceTo(v)
		dists[i] = t
		if t > EPS {
			hasFront = true
		}
		if t < -EPS {
			hasBack = true
		}
	}

	switch {
	case !hasFront && !hasBack:
		// All vertices within EPS of the plane.
		ownPlane, err := polygon.Plane()
		if err != nil {
			return splitResult{}, err
		}
		if plane.Normal.Dot(ownPlane.Normal) >= 0 {
			return splitResult{relation: relCoplanarFront}, nil
		}
		return splitResult{relation: relCoplanarBack}, nil
	case !hasBack:
		return splitResult{relation: relFront}, nil
	case !hasFront:
		return splitResult{relation: relBack}, nil
	}

	// Spanning: walk the edge loop, routing each vertex by sign and
	// inserting the shared intersection point where an edge crosses.
	ownPlane, err := polygon.Plane()
	if err != nil {
		return splitResult{}, err
	}
	frontVertices := make([]v3.Vec, 0, numVertices+2)
	backVertices := make([]v3.Vec, 0, numVertices+2)
	for i, v := range vertices {
		j := (i + 1) % numVertices
		isBack := dists[i] < 0
		nextIsBack := dists[j] < 0
		if isBack == nextIsBack {
			if isBack {
				backVertices = append(backVertices, v)
			} else {
				frontVertices = append(frontVertices, v)
			}
			continue
		}
		// t is the fraction of the edge in front of the crossing.
		t := dists[i] / (dists[i] - dists[j])
		next := vertices[j]
		crossing := v.Add(next.Sub(v).MulScalar(t))
		if isBack {
			backVertices = append(backVertices, v, crossing)
			frontVertices = append(frontVertices, crossing)
		} else {
			frontVertices = append(frontVertices, v, crossing)
			backVertices = append(backVertices, crossing)
		}
	}

	frontVertices = removeNearDuplicates(frontVertices)
	backVertices = removeNearDuplicates(backVertices)

	result := splitResult{relation: relSpanning}
	if len(frontVertices) >= 3 {
		result.front = newPolygonWithPlane(frontVertices, ownPlane)
	}
	if len(backVertices) >= 3 {
		result.back = newPolygonWithPlane(backVertices, ownPlane)
	}
	return result, nil
}

// removeNearDuplicates drops vertices within EPS of their cyclic
// predecessor, preventing near-zero-length edges on split fragments.
func removeNearDuplicates(vertices []v3.Vec) []v3.Vec {
	if len(vertices) == 0 {
		return vertices
	}
	out := vertices[:0]
	prev := vertices[len(vertices)-1]
	for _, v := range vertices {
		if v.Sub(prev).Length2() >= epsSquared {
			out = append(out, v)
			prev = v
		}
	}
	return out
}
