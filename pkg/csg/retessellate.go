package csg

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Retessellate merges coplanar polygons that share a complete edge, as
// long as the merged loop stays convex. Boolean clipping fragments each
// face along the other operand's planes; merging the fragments back
// together removes the shared-edge seams (T-junction sources) those
// splits leave behind. Polygons that cannot merge pass through
// untouched, so the enclosed volume never changes.
func Retessellate(s *Solid) *Solid {
	if len(s.polygons) < 2 {
		return s
	}
	// Bucket polygons by quantized plane so only same-facing coplanar
	// polygons are considered for merging. Bucket order follows first
	// appearance to keep output deterministic.
	type bucket struct {
		key   planeKey
		polys []*Polygon
	}
	index := make(map[planeKey]int)
	var buckets []bucket
	for _, p := range s.polygons {
		pl, err := p.Plane()
		if err != nil {
			// Unplanable polygons pass through; the boolean engine will
			// reject them where it matters.
			buckets = append(buckets, bucket{polys: []*Polygon{p}})
			continue
		}
		key := quantizePlane(pl)
		if i, ok := index[key]; ok {
			buckets[i].polys = append(buckets[i].polys, p)
		} else {
			index[key] = len(buckets)
			buckets = append(buckets, bucket{key: key, polys: []*Polygon{p}})
		}
	}
	result := make([]*Polygon, 0, len(s.polygons))
	for _, b := range buckets {
		result = append(result, mergeCoplanar(b.polys)...)
	}
	return FromPolygons(result)
}

// planeKey identifies a plane up to EPS-scale quantization.
type planeKey struct {
	nx, ny, nz, w int64
}

func quantizePlane(p Plane) planeKey {
	return planeKey{
		nx: int64(math.Round(p.Normal.X / EPS)),
		ny: int64(math.Round(p.Normal.Y / EPS)),
		nz: int64(math.Round(p.Normal.Z / EPS)),
		w:  int64(math.Round(p.W / EPS)),
	}
}

// vertexKey identifies a vertex up to EPS-scale quantization, for edge
// matching between fragments of the same face.
type vertexKey struct {
	x, y, z int64
}

func quantizeVertex(v v3.Vec) vertexKey {
	return vertexKey{
		x: int64(math.Round(v.X / EPS)),
		y: int64(math.Round(v.Y / EPS)),
		z: int64(math.Round(v.Z / EPS)),
	}
}

type edgeKey struct {
	from, to vertexKey
}

// mergeCoplanar repeatedly merges pairs of polygons from one coplanar
// bucket that share a full edge, until no convex merge remains.
func mergeCoplanar(polys []*Polygon) []*Polygon {
	if len(polys) < 2 {
		return polys
	}
	list := make([]*Polygon, len(polys))
	copy(list, polys)
	for {
		merged := mergeOnePass(list)
		if len(merged) == len(list) {
			return merged
		}
		list = merged
	}
}

// mergeOnePass walks the bucket once, merging each polygon with at most
// one edge-sharing partner. Returns a shorter list when any merge
// happened.
func mergeOnePass(list []*Polygon) []*Polygon {
	// Directed edge -> (polygon index, edge start index). A partner
	// polygon holds the same edge reversed.
	edges := make(map[edgeKey][2]int)
	for pi, p := range list {
		for vi, v := range p.vertices {
			next := p.vertices[(vi+1)%len(p.vertices)]
			edges[edgeKey{quantizeVertex(v), quantizeVertex(next)}] = [2]int{pi, vi}
		}
	}
	consumed := make([]bool, len(list))
	out := make([]*Polygon, 0, len(list))
	for pi, p := range list {
		if consumed[pi] {
			continue
		}
		var replaced *Polygon
		for vi, v := range p.vertices {
			next := p.vertices[(vi+1)%len(p.vertices)]
			partner, ok := edges[edgeKey{quantizeVertex(next), quantizeVertex(v)}]
			if !ok || partner[0] == pi || consumed[partner[0]] {
				continue
			}
			if m := tryMerge(p, vi, list[partner[0]], partner[1]); m != nil {
				consumed[partner[0]] = true
				replaced = m
				break
			}
		}
		if replaced != nil {
			// The stale edges of p must not match again this pass.
			consumed[pi] = true
			out = append(out, replaced)
		} else {
			out = append(out, p)
		}
	}
	return out
}

// tryMerge joins polygons a and b across the shared edge starting at
// a.vertices[ai] (and reversed at b.vertices[bi]). Returns nil when the
// joined loop is not convex or degenerates.
func tryMerge(a *Polygon, ai int, b *Polygon, bi int) *Polygon {
	plane, err := a.Plane()
	if err != nil {
		return nil
	}
	na, nb := len(a.vertices), len(b.vertices)
	joined := make([]v3.Vec, 0, na+nb-2)
	// Walk a starting just past the shared edge, all the way around.
	for k := 0; k < na; k++ {
		joined = append(joined, a.vertices[(ai+1+k)%na])
	}
	// Continue around b, skipping its copy of the shared edge.
	for k := 2; k < nb; k++ {
		joined = append(joined, b.vertices[(bi+k)%nb])
	}
	joined = dropCollinear(joined, plane.Normal)
	if len(joined) < 3 || !isConvex(joined, plane.Normal) {
		return nil
	}
	return newPolygonWithPlane(joined, plane)
}

// dropCollinear removes vertices whose adjacent edges are parallel,
// which is exactly what joining two fragments along a split line leaves
// behind.
func dropCollinear(vertices []v3.Vec, normal v3.Vec) []v3.Vec {
	out := make([]v3.Vec, 0, len(vertices))
	n := len(vertices)
	for i, v := range vertices {
		prev := vertices[(i+n-1)%n]
		next := vertices[(i+1)%n]
		e1 := v.Sub(prev)
		e2 := next.Sub(v)
		l1, l2 := e1.Length(), e2.Length()
		if l1 < EPS || l2 < EPS {
			continue
		}
		// sin of the turn angle at v; straight-through vertices go.
		sin := normal.Dot(e1.Cross(e2)) / (l1 * l2)
		if math.Abs(sin) < EPS && e1.Dot(e2) > 0 {
			continue
		}
		out = append(out, v)
	}
	return out
}

// isConvex reports whether the loop turns the same way at every vertex,
// relative to the given plane normal.
func isConvex(vertices []v3.Vec, normal v3.Vec) bool {
	n := len(vertices)
	for i, v := range vertices {
		prev := vertices[(i+n-1)%n]
		next := vertices[(i+1)%n]
		e1 := v.Sub(prev)
		e2 := next.Sub(v)
		if normal.Dot(e1.Cross(e2)) < -EPS*e1.Length()*e2.Length() {
			return false
		}
	}
	return true
}
