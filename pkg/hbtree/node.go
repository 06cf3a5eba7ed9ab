// Package hbtree implements the HB*-tree (Hierarchical B*-tree): the core
// data structure that unifies symmetry islands (backed by one ASF-B*-tree
// per group) and freely placed modules into a single packable tree (§4.3,
// §4.4).
package hbtree

import (
	"github.com/floorkit/hbstar/pkg/asf"
	"github.com/floorkit/hbstar/pkg/module"
)

// Kind discriminates the three node variants a Node can hold.
type Kind int

const (
	// KindModule is a leaf placeholder for an externally owned Module.
	KindModule Kind = iota
	// KindHierarchy owns a packed symmetry island's ASF-B*-tree.
	KindHierarchy
	// KindContour carries one flat-top segment of a packed island's
	// skyline; generated fresh by every pack, never hand-built.
	KindContour
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindHierarchy:
		return "hierarchy"
	case KindContour:
		return "contour"
	default:
		return "module"
	}
}

// Node is a tagged B*-tree node. Left child -> placed to the right of the
// parent; right child -> placed above the parent (§3).
//
// Payload fields are kind-specific; accessing the wrong kind's payload
// returns the zero value rather than panicking, matching §4.3's
// "kind-mismatched access returns neutral values" contract.
type Node struct {
	Kind Kind

	Left, Right, Parent *Node

	// KindModule payload.
	ModuleName string

	// KindHierarchy payload.
	GroupName string
	ASF       *asf.Tree

	// KindContour payload: a flat top segment from (X1,Y1) to (X2,Y2),
	// Y1 == Y2.
	X1, Y1, X2, Y2 int
}

// NewModuleNode returns a KindModule node for the named module.
func NewModuleNode(name string) *Node {
	return &Node{Kind: KindModule, ModuleName: name}
}

// NewHierarchyNode returns a KindHierarchy node wrapping an already
// constructed ASF-B*-tree.
func NewHierarchyNode(groupName string, tree *asf.Tree) *Node {
	return &Node{Kind: KindHierarchy, GroupName: groupName, ASF: tree}
}

// NewContourNode returns a KindContour node for one skyline segment.
func NewContourNode(x1, y1, x2, y2 int) *Node {
	return &Node{Kind: KindContour, X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// IsLeftChild reports whether n is its parent's left child. False if n has
// no parent.
func (n *Node) IsLeftChild() bool {
	return n.Parent != nil && n.Parent.Left == n
}

// IsRightChild reports whether n is its parent's right child. False if n
// has no parent.
func (n *Node) IsRightChild() bool {
	return n.Parent != nil && n.Parent.Right == n
}

// setLeft attaches child as n's left child, maintaining the back-link.
func (n *Node) setLeft(child *Node) {
	n.Left = child
	if child != nil {
		child.Parent = n
	}
}

// setRight attaches child as n's right child, maintaining the back-link.
func (n *Node) setRight(child *Node) {
	n.Right = child
	if child != nil {
		child.Parent = n
	}
}

// detach clears n's parent back-link and removes n from whichever child
// slot of its parent it occupied. No-op if n has no parent.
func (n *Node) detach() {
	if n.Parent == nil {
		return
	}
	if n.Parent.Left == n {
		n.Parent.Left = nil
	} else if n.Parent.Right == n {
		n.Parent.Right = nil
	}
	n.Parent = nil
}

// Clone returns a deep recursive copy of the subtree rooted at n.
// KindHierarchy nodes clone their ASF tree against modules (the cloned
// module set the caller is assembling); KindContour nodes copy their four
// coordinates; KindModule nodes copy only the module name, since the
// Module itself is owned by the module.Set, not the node.
func (n *Node) Clone(modules *module.Set) *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Kind:       n.Kind,
		ModuleName: n.ModuleName,
		GroupName:  n.GroupName,
		X1:         n.X1,
		Y1:         n.Y1,
		X2:         n.X2,
		Y2:         n.Y2,
	}
	if n.ASF != nil {
		c.ASF = n.ASF.Clone(modules)
	}
	c.setLeft(n.Left.Clone(modules))
	c.setRight(n.Right.Clone(modules))
	return c
}
