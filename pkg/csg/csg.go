// Package csg implements constructive solid geometry on polygon meshes.
// A solid is a closed set of convex, planar polygons; boolean combinations
// (union, subtract, intersect) are computed by clipping one operand's
// polygons against a BSP tree built from the other operand.
//
// The engine is single threaded and pure: every operation takes solids in
// and returns a new solid, leaving its inputs untouched. Numerical drift
// from repeated plane splitting is controlled by a shared tolerance (EPS)
// and by the SnapPolygons cleanup pass.
package csg

// EPS is the tolerance below which two floating point quantities are
// treated as equal during polygon classification and clipping.
const EPS = 1e-5

// epsSquared is EPS as a squared-distance bound, used when comparing
// vertices without taking square roots.
const epsSquared = EPS * EPS
