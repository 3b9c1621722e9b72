package csg

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestPolygonTreeHarvest(t *testing.T) {
	root := newPolygonTree()
	p1 := unitSquare()
	p2 := NewPolygon([]v3.Vec{{Z: 2}, {X: 1, Z: 2}, {X: 1, Y: 1, Z: 2}})
	nodes := root.addPolygons([]*Polygon{p1, p2})
	if len(nodes) != 2 {
		t.Fatalf("addPolygons returned %d nodes, want 2", len(nodes))
	}
	if !root.isRootNode() {
		t.Error("root is not a root node")
	}
	if nodes[0].isRootNode() {
		t.Error("leaf reports as root node")
	}
	got := root.AllPolygons()
	if len(got) != 2 {
		t.Fatalf("AllPolygons returned %d polygons, want 2", len(got))
	}
	if got[0] != p1 || got[1] != p2 {
		t.Error("harvest does not preserve input order")
	}
}

func TestPolygonTreeSplitReplacesLeaf(t *testing.T) {
	root := newPolygonTree()
	square := NewPolygon([]v3.Vec{
		{X: -1, Y: -1},
		{X: 1, Y: -1},
		{X: 1, Y: 1},
		{X: -1, Y: 1},
	})
	leaf := root.addPolygons([]*Polygon{square})[0]

	plane := yzPlaneAtX0(t)
	var coplanarFront, coplanarBack, front, back []*PolygonTreeNode
	if err := leaf.splitByPlane(plane, &coplanarFront, &coplanarBack, &front, &back); err != nil {
		t.Fatalf("splitByPlane failed: %v", err)
	}
	if len(front) != 1 || len(back) != 1 {
		t.Fatalf("front=%d back=%d, want 1 and 1", len(front), len(back))
	}
	if len(coplanarFront) != 0 || len(coplanarBack) != 0 {
		t.Errorf("unexpected coplanar nodes: %d front, %d back", len(coplanarFront), len(coplanarBack))
	}
	// The original leaf turned into an internal node over the fragments.
	harvest := root.AllPolygons()
	if len(harvest) != 2 {
		t.Fatalf("harvest has %d polygons, want 2 fragments", len(harvest))
	}
	for _, p := range harvest {
		if p == square {
			t.Error("original polygon still present after split")
		}
	}
}

func TestPolygonTreeRemoveCascades(t *testing.T) {
	root := newPolygonTree()
	square := NewPolygon([]v3.Vec{
		{X: -1, Y: -1},
		{X: 1, Y: -1},
		{X: 1, Y: 1},
		{X: -1, Y: 1},
	})
	other := unitSquare()
	leaves := root.addPolygons([]*Polygon{square, other})

	plane := yzPlaneAtX0(t)
	var coplanarFront, coplanarBack, front, back []*PolygonTreeNode
	if err := leaves[0].splitByPlane(plane, &coplanarFront, &coplanarBack, &front, &back); err != nil {
		t.Fatalf("splitByPlane failed: %v", err)
	}

	// Removing one fragment keeps the internal node alive.
	front[0].remove()
	if !front[0].isRemoved() {
		t.Error("removed fragment does not report removed")
	}
	if leaves[0].isRemoved() {
		t.Error("internal node removed while a child survives")
	}
	if got := len(root.AllPolygons()); got != 2 {
		t.Errorf("harvest has %d polygons, want 2", got)
	}

	// Removing the last fragment cascades: the childless internal node
	// detaches from the root as well.
	back[0].remove()
	if !leaves[0].isRemoved() {
		t.Error("childless internal node not removed")
	}
	if len(root.children) != 1 {
		t.Errorf("root has %d children, want 1", len(root.children))
	}
	harvest := root.AllPolygons()
	if len(harvest) != 1 || harvest[0] != other {
		t.Errorf("harvest = %d polygons, want just the untouched one", len(harvest))
	}
	// The root itself never cascades away.
	if root.isRemoved() {
		t.Error("forest root was removed")
	}
}

func TestPolygonTreeInvert(t *testing.T) {
	root := newPolygonTree()
	root.addPolygons([]*Polygon{unitSquare()})
	before, _ := root.AllPolygons()[0].Plane()
	root.invert()
	after, _ := root.AllPolygons()[0].Plane()
	if !after.Normal.Equals(before.Normal.Neg(), 1e-12) {
		t.Errorf("inverted normal = %v, want %v", after.Normal, before.Normal.Neg())
	}
}
