package csg

// PolygonTreeNode tracks how one source polygon is progressively
// subdivided by plane splits during BSP operations. Each boolean
// operation builds a fresh forest: a parentless root carries no polygon
// and holds one child per source polygon. When a leaf is split its
// polygon moves into two new children and the leaf becomes an internal
// node. When a clip discards a leaf the node detaches from its parent,
// and a parent left with no children detaches in turn, so dead branches
// never linger.
type PolygonTreeNode struct {
	parent   *PolygonTreeNode
	children []*PolygonTreeNode
	polygon  *Polygon
	removed  bool
}

// newPolygonTree returns an empty root for a new forest.
func newPolygonTree() *PolygonTreeNode {
	return &PolygonTreeNode{}
}

// addPolygons wraps each polygon as a child of this root node and
// returns the new leaves in input order.
func (n *PolygonTreeNode) addPolygons(polygons []*Polygon) []*PolygonTreeNode {
	nodes := make([]*PolygonTreeNode, len(polygons))
	for i, p := range polygons {
		nodes[i] = n.addChild(p)
	}
	return nodes
}

// addChild appends a new leaf holding polygon.
func (n *PolygonTreeNode) addChild(polygon *Polygon) *PolygonTreeNode {
	child := &PolygonTreeNode{parent: n, polygon: polygon}
	n.children = append(n.children, child)
	return child
}

func (n *PolygonTreeNode) isRootNode() bool {
	return n.parent == nil
}

func (n *PolygonTreeNode) isRemoved() bool {
	return n.removed
}

// remove detaches the node from its parent. If the parent is left with
// no children and no polygon of its own it is removed as well, all the
// way up to (but excluding) the forest root.
func (n *PolygonTreeNode) remove() {
	if n.removed {
		return
	}
	n.removed = true
	n.polygon = nil
	parent := n.parent
	if parent == nil {
		return
	}
	for i, c := range parent.children {
		if c == n {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}
	n.parent = nil
	if len(parent.children) == 0 && parent.polygon == nil && parent.parent != nil {
		parent.remove()
	}
}

// AllPolygons harvests every surviving leaf polygon under n, in tree
// order. This is how the result of a boolean operation is collected.
func (n *PolygonTreeNode) AllPolygons() []*Polygon {
	var result []*Polygon
	queue := [][]*PolygonTreeNode{{n}}
	for i := 0; i < len(queue); i++ {
		for _, node := range queue[i] {
			if node.polygon != nil {
				result = append(result, node.polygon)
			} else if len(node.children) > 0 {
				queue = append(queue, node.children)
			}
		}
	}
	return result
}

// invert flips the winding of every polygon in the subtree.
func (n *PolygonTreeNode) invert() {
	queue := []*PolygonTreeNode{n}
	for i := 0; i < len(queue); i++ {
		node := queue[i]
		if node.polygon != nil {
			node.polygon = node.polygon.Flipped()
		}
		queue = append(queue, node.children...)
	}
}

// splitByPlane classifies every leaf under n against plane and appends
// each leaf (or, for spanning leaves, its new half-polygon children) to
// the matching destination list.
func (n *PolygonTreeNode) splitByPlane(plane Plane, coplanarFront, coplanarBack, front, back *[]*PolygonTreeNode) error {
	if len(n.children) == 0 {
		return n.splitLeafByPlane(plane, coplanarFront, coplanarBack, front, back)
	}
	queue := [][]*PolygonTreeNode{n.children}
	for i := 0; i < len(queue); i++ {
		for _, node := range queue[i] {
			if len(node.children) > 0 {
				queue = append(queue, node.children)
				continue
			}
			if err := node.splitLeafByPlane(plane, coplanarFront, coplanarBack, front, back); err != nil {
				return err
			}
		}
	}
	return nil
}

func (n *PolygonTreeNode) splitLeafByPlane(plane Plane, coplanarFront, coplanarBack, front, back *[]*PolygonTreeNode) error {
	if n.polygon == nil {
		return nil
	}
	res, err := splitPolygonByPlane(plane, n.polygon)
	if err != nil {
		return err
	}
	switch res.relation {
	case relCoplanarFront:
		*coplanarFront = append(*coplanarFront, n)
	case relCoplanarBack:
		*coplanarBack = append(*coplanarBack, n)
	case relFront:
		*front = append(*front, n)
	case relBack:
		*back = append(*back, n)
	case relSpanning:
		// The leaf becomes an internal node; the fragments live on as
		// its children.
		n.polygon = nil
		if res.front != nil {
			*front = append(*front, n.addChild(res.front))
		}
		if res.back != nil {
			*back = append(*back, n.addChild(res.back))
		}
		if len(n.children) == 0 {
			// Both fragments collapsed below three vertices.
			n.remove()
		}
	}
	return nil
}
