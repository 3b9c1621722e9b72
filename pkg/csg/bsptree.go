package csg

import "fmt"

// Tree is a binary space partition built from one boolean operand's
// polygons. The polygons also live in a PolygonTreeNode forest so that
// fragments produced while clipping against another tree keep their
// provenance. A Tree belongs to exactly one boolean operation and is
// discarded after its polygons are harvested.
type Tree struct {
	polygonTree *PolygonTreeNode
	rootNode    *treeNode
}

// NewTree partitions polygons into a BSP tree.
func NewTree(polygons []*Polygon) (*Tree, error) {
	t := &Tree{
		polygonTree: newPolygonTree(),
		rootNode:    &treeNode{},
	}
	if err := t.addPolygons(polygons); err != nil {
		return nil, err
	}
	return t, nil
}

// addPolygons inserts polygons into both the provenance forest and the
// spatial partition.
func (t *Tree) addPolygons(polygons []*Polygon) error {
	nodes := t.polygonTree.addPolygons(polygons)
	return t.rootNode.addPolygonTreeNodes(nodes)
}

// Invert converts the tree to represent the complement solid: every
// plane and polygon winding is flipped and front/back subtrees swap.
func (t *Tree) Invert() {
	t.polygonTree.invert()
	t.rootNode.invert()
}

// ClipTo removes every polygon of t that lies inside the solid
// represented by other. With removeCoplanarFront set, polygons lying on
// other's surface with matching orientation are removed as well; the
// boolean operators use this to drop coincident duplicate faces.
func (t *Tree) ClipTo(other *Tree, removeCoplanarFront bool) error {
	return t.rootNode.clipTo(other, removeCoplanarFront)
}

// AllPolygons harvests the surviving polygons of the tree.
func (t *Tree) AllPolygons() []*Polygon {
	return t.polygonTree.AllPolygons()
}

// treeNode is one partition node. The splitting plane is taken from the
// first polygon routed into the node; polygons coplanar with it collect
// in nodes, everything else recurses into the lazily created subtrees.
type treeNode struct {
	plane *Plane
	front *treeNode
	back  *treeNode
	nodes []*PolygonTreeNode
}

// nodeTask pairs a partition node with polygon tree nodes still to be
// routed through it. Tree walks use an explicit stack; BSP trees built
// from unsorted polygon soup degenerate badly enough that recursion
// depth cannot be trusted.
type nodeTask struct {
	node  *treeNode
	nodes []*PolygonTreeNode
}

// addPolygonTreeNodes routes polygon tree nodes into the partition,
// splitting spanning polygons as it goes. The splitting plane of a fresh
// node is always the first polygon's plane; no balancing heuristic is
// applied, matching the reference algorithm's behavior and output.
func (n *treeNode) addPolygonTreeNodes(nodes []*PolygonTreeNode) error {
	stack := []nodeTask{{node: n, nodes: nodes}}
	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := task.node
		if len(task.nodes) == 0 {
			continue
		}
		if node.plane == nil {
			first := task.nodes[0].polygon
			if first == nil {
				return fmt.Errorf("csg: bsp insert: node without polygon")
			}
			pl, err := first.Plane()
			if err != nil {
				return err
			}
			node.plane = &pl
		}
		var front, back []*PolygonTreeNode
		for _, tn := range task.nodes {
			// Coplanar same-facing polygons stay at this node;
			// coplanar opposite-facing ones belong behind the plane.
			if err := tn.splitByPlane(*node.plane, &node.nodes, &back, &front, &back); err != nil {
				return err
			}
		}
		if len(front) > 0 {
			if node.front == nil {
				node.front = &treeNode{}
			}
			stack = append(stack, nodeTask{node: node.front, nodes: front})
		}
		if len(back) > 0 {
			if node.back == nil {
				node.back = &treeNode{}
			}
			stack = append(stack, nodeTask{node: node.back, nodes: back})
		}
	}
	return nil
}

// clipPolygons routes the given polygon tree nodes down this subtree and
// removes every node that ends up behind a plane with no back subtree,
// i.e. inside the solid. Survivors are split in place as needed.
func (n *treeNode) clipPolygons(nodes []*PolygonTreeNode, removeCoplanarFront bool) error {
	stack := []nodeTask{{node: n, nodes: nodes}}
	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := task.node
		if node.plane == nil {
			continue
		}
		var front, back []*PolygonTreeNode
		coplanarFront := &front
		if removeCoplanarFront {
			coplanarFront = &back
		}
		for _, tn := range task.nodes {
			if tn.isRemoved() {
				continue
			}
			if err := tn.splitByPlane(*node.plane, coplanarFront, &back, &front, &back); err != nil {
				return err
			}
		}
		if node.front != nil && len(front) > 0 {
			stack = append(stack, nodeTask{node: node.front, nodes: front})
		}
		if node.back != nil {
			if len(back) > 0 {
				stack = append(stack, nodeTask{node: node.back, nodes: back})
			}
		} else {
			// Nothing behind this plane: these polygons are inside the
			// solid and are discarded.
			for _, tn := range back {
				tn.remove()
			}
		}
	}
	return nil
}

// clipTo clips the polygons retained at every node of this subtree
// against the other tree.
func (n *treeNode) clipTo(other *Tree, removeCoplanarFront bool) error {
	stack := []*treeNode{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(node.nodes) > 0 {
			if err := other.rootNode.clipPolygons(node.nodes, removeCoplanarFront); err != nil {
				return err
			}
		}
		if node.front != nil {
			stack = append(stack, node.front)
		}
		if node.back != nil {
			stack = append(stack, node.back)
		}
	}
	return nil
}

// invert flips every plane in the subtree and swaps front with back.
// The polygons referenced from nodes are flipped by the owning forest.
func (n *treeNode) invert() {
	queue := []*treeNode{n}
	for i := 0; i < len(queue); i++ {
		node := queue[i]
		if node.plane != nil {
			fl := node.plane.Flipped()
			node.plane = &fl
		}
		node.front, node.back = node.back, node.front
		if node.front != nil {
			queue = append(queue, node.front)
		}
		if node.back != nil {
			queue = append(queue, node.back)
		}
	}
}
