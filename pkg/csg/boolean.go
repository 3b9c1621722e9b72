package csg

import "fmt"

// The three boolean operators share one skeleton: wrap each operand's
// polygons in a BSP tree, clip each tree against the other in an
// operator-specific invert/clip sequence, then harvest the surviving
// polygons from both trees. Coplanar faces are retesselated on the way
// in and the way out to keep shared-edge artifacts from accumulating.

// Union returns the union of the given solids, folding pairwise left to
// right. No operands yields an empty solid; one operand is returned
// retesselated but otherwise unchanged.
func Union(solids ...*Solid) (*Solid, error) {
	if err := validateOperands(solids); err != nil {
		return nil, err
	}
	if len(solids) == 0 {
		return Empty(), nil
	}
	result := Retessellate(solids[0])
	for i, s := range solids[1:] {
		var err error
		result, err = unionPair(result, Retessellate(s))
		if err != nil {
			return nil, fmt.Errorf("csg: union of operand %d: %w", i+1, err)
		}
	}
	return Retessellate(result), nil
}

// Subtract removes every further solid from the first one. A single
// operand is returned retesselated but otherwise unchanged.
func Subtract(solids ...*Solid) (*Solid, error) {
	if err := validateOperands(solids); err != nil {
		return nil, err
	}
	if len(solids) == 0 {
		return nil, fmt.Errorf("csg: subtract requires at least one operand")
	}
	result := Retessellate(solids[0])
	for i, s := range solids[1:] {
		var err error
		result, err = subtractPair(result, Retessellate(s))
		if err != nil {
			return nil, fmt.Errorf("csg: subtract of operand %d: %w", i+1, err)
		}
	}
	return Retessellate(result), nil
}

// Intersect returns the solid common to all operands. No operands yields
// an empty solid.
func Intersect(solids ...*Solid) (*Solid, error) {
	if err := validateOperands(solids); err != nil {
		return nil, err
	}
	if len(solids) == 0 {
		return Empty(), nil
	}
	result := Retessellate(solids[0])
	for i, s := range solids[1:] {
		var err error
		result, err = intersectPair(result, Retessellate(s))
		if err != nil {
			return nil, fmt.Errorf("csg: intersect of operand %d: %w", i+1, err)
		}
	}
	return Retessellate(result), nil
}

// validateOperands rejects nil solids up front, before any tree
// construction, naming the offending argument position.
func validateOperands(solids []*Solid) error {
	for i, s := range solids {
		if s == nil {
			return fmt.Errorf("csg: operand %d is not a solid", i)
		}
	}
	return nil
}

// unionPair computes a ∪ b with the classic two-tree clip sequence:
// drop a-polygons inside b, drop b-polygons inside a, then clip b against
// a once more inverted to remove coincident coplanar duplicates.
func unionPair(a, b *Solid) (*Solid, error) {
	if !mayOverlap(a, b) {
		// Disjoint bounding boxes: the union is a plain concatenation.
		polys := make([]*Polygon, 0, len(a.polygons)+len(b.polygons))
		polys = append(polys, a.polygons...)
		polys = append(polys, b.polygons...)
		return FromPolygons(polys), nil
	}
	ta, err := NewTree(a.polygons)
	if err != nil {
		return nil, err
	}
	tb, err := NewTree(b.polygons)
	if err != nil {
		return nil, err
	}
	if err := ta.ClipTo(tb, false); err != nil {
		return nil, err
	}
	if err := tb.ClipTo(ta, false); err != nil {
		return nil, err
	}
	tb.Invert()
	if err := tb.ClipTo(ta, false); err != nil {
		return nil, err
	}
	tb.Invert()
	polys := append(ta.AllPolygons(), tb.AllPolygons()...)
	return FromPolygons(polys), nil
}

// subtractPair computes a − b as an inverted union: invert a, carve it
// with b, pull b's surface fragments inside a, and invert back.
func subtractPair(a, b *Solid) (*Solid, error) {
	if b.IsEmpty() {
		return a, nil
	}
	if a.IsEmpty() {
		return Empty(), nil
	}
	ta, err := NewTree(a.polygons)
	if err != nil {
		return nil, err
	}
	tb, err := NewTree(b.polygons)
	if err != nil {
		return nil, err
	}
	ta.Invert()
	if err := ta.ClipTo(tb, false); err != nil {
		return nil, err
	}
	if err := tb.ClipTo(ta, true); err != nil {
		return nil, err
	}
	if err := ta.addPolygons(tb.AllPolygons()); err != nil {
		return nil, err
	}
	ta.Invert()
	return FromPolygons(ta.AllPolygons()), nil
}

// intersectPair computes a ∩ b by De Morgan's law: the complement of the
// union of the complements.
func intersectPair(a, b *Solid) (*Solid, error) {
	if a.IsEmpty() || b.IsEmpty() {
		return Empty(), nil
	}
	ta, err := NewTree(a.polygons)
	if err != nil {
		return nil, err
	}
	tb, err := NewTree(b.polygons)
	if err != nil {
		return nil, err
	}
	ta.Invert()
	if err := tb.ClipTo(ta, false); err != nil {
		return nil, err
	}
	tb.Invert()
	if err := ta.ClipTo(tb, false); err != nil {
		return nil, err
	}
	if err := tb.ClipTo(ta, false); err != nil {
		return nil, err
	}
	if err := ta.addPolygons(tb.AllPolygons()); err != nil {
		return nil, err
	}
	ta.Invert()
	return FromPolygons(ta.AllPolygons()), nil
}

// mayOverlap reports whether the EPS-grown bounding boxes of a and b
// intersect. A false result guarantees the solids do not touch, letting
// the union skip tree construction entirely.
func mayOverlap(a, b *Solid) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	aMin, aMax := a.BoundingBox()
	bMin, bMax := b.BoundingBox()
	if aMin.X > bMax.X+EPS || bMin.X > aMax.X+EPS {
		return false
	}
	if aMin.Y > bMax.Y+EPS || bMin.Y > aMax.Y+EPS {
		return false
	}
	if aMin.Z > bMax.Z+EPS || bMin.Z > aMax.Z+EPS {
		return false
	}
	return true
}
