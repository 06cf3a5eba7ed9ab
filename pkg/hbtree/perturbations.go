package hbtree

import (
	"github.com/floorkit/hbstar/pkg/hberrors"
)

// afterMutation marks n for repack and, if the tree is already packed,
// immediately repacks the affected subtrees — every perturbation's
// "triggers an incremental repack" contract (§4.4.3).
func (t *Tree) afterMutation(n *Node) error {
	t.markSubtreeForRepack(n)
	if !t.isPacked {
		return nil
	}
	return t.RepackAffectedSubtrees()
}

// RotateModule rotates the named module. If it belongs to a symmetry
// group, the rotation is delegated to that group's ASF tree (which
// rotates both pair members in lock-step, or refuses a self-symmetric
// rotation that would break parity); otherwise the module's own
// Rotated flag is flipped directly.
//
// Returns an *hberrors.Error with ErrCodeUnknownModule if name is not
// registered.
func (t *Tree) RotateModule(name string) error {
	m, ok := t.modules.Get(name)
	if !ok {
		return hberrors.New(hberrors.ErrCodeUnknownModule, "module %q not found", name)
	}

	for _, g := range t.groups {
		if !containsName(g.Members(), name) {
			continue
		}
		hNode := t.symmetryGroupNodes[g.Name]
		if _, err := hNode.ASF.RotateModule(name); err != nil {
			return err
		}
		return t.afterMutation(hNode)
	}

	m.Rotate()
	return t.afterMutation(t.moduleNodes[name])
}

func containsName(names []string, target string) bool {
	for _, n := range names {
		if n == target {
			return true
		}
	}
	return false
}

// MoveNode detaches nodeName from its current parent and attaches it as
// the left or right child of newParentName, relocating any node already
// occupying that slot (§4.4.3).
//
// No cycle check is performed: the caller must not request a move that
// would make a node its own ancestor.
func (t *Tree) MoveNode(nodeName, newParentName string, asLeftChild bool) error {
	node, ok := t.nodeMap[nodeName]
	if !ok {
		return hberrors.New(hberrors.ErrCodeUnknownNode, "node %q not found", nodeName)
	}
	newParent, ok := t.nodeMap[newParentName]
	if !ok {
		return hberrors.New(hberrors.ErrCodeUnknownNode, "node %q not found", newParentName)
	}

	oldParent := node.Parent
	t.detachFromTree(node)

	var relocated *Node
	if asLeftChild {
		relocated = newParent.Left
		newParent.setLeft(node)
	} else {
		relocated = newParent.Right
		newParent.setRight(node)
	}

	if relocated != nil {
		t.relocate(node, relocated, asLeftChild)
	}

	if oldParent != nil {
		t.afterMutationQuiet(oldParent)
	}
	t.afterMutationQuiet(newParent)
	t.afterMutationQuiet(node)
	if relocated != nil {
		t.afterMutationQuiet(relocated)
	}
	return t.maybeRepack()
}

// detachFromTree removes node from the tree, promoting a child to root if
// node was the root (§4.4.3: "promote its left child (else its right
// child, else set root = nil)").
func (t *Tree) detachFromTree(node *Node) {
	if node == t.root {
		switch {
		case node.Left != nil:
			t.root = node.Left
			t.root.Parent = nil
		case node.Right != nil:
			t.root = node.Right
			t.root.Parent = nil
		default:
			t.root = nil
		}
		node.Left, node.Right = nil, nil
		return
	}
	node.detach()
}

// relocate places the node previously occupying node's new slot into
// node's own now-free child slot (preferring left); if both of node's
// slots are occupied, it descends the corresponding skewed chain until a
// free slot is found (§4.4.3).
func (t *Tree) relocate(node, displaced *Node, preferLeftInsertion bool) {
	if node.Left == nil {
		node.setLeft(displaced)
		return
	}
	if node.Right == nil {
		node.setRight(displaced)
		return
	}
	if preferLeftInsertion {
		leaf := findLeftmostSkewedChild(node.Left)
		leaf.setLeft(displaced)
		return
	}
	leaf := rightmostSkewedChild(node.Right)
	leaf.setRight(displaced)
}

func rightmostSkewedChild(n *Node) *Node {
	for n.Right != nil {
		n = n.Right
	}
	return n
}

// SwapNodes exchanges the tree positions of a and b (§4.4.3).
func (t *Tree) SwapNodes(aName, bName string) error {
	a, ok := t.nodeMap[aName]
	if !ok {
		return hberrors.New(hberrors.ErrCodeUnknownNode, "node %q not found", aName)
	}
	b, ok := t.nodeMap[bName]
	if !ok {
		return hberrors.New(hberrors.ErrCodeUnknownNode, "node %q not found", bName)
	}

	if a.Parent == b {
		t.swapParentChild(b, a)
	} else if b.Parent == a {
		t.swapParentChild(a, b)
	} else {
		t.swapUnrelated(a, b)
	}

	t.afterMutationQuiet(a)
	t.afterMutationQuiet(b)
	return t.maybeRepack()
}

// swapParentChild handles case 1 (§4.4.3): child is a direct child of
// parent. child takes over parent's old position slot under parent's old
// parent, and parent becomes child's child in the slot child used to
// occupy, carrying its sibling subtree along.
func (t *Tree) swapParentChild(parent, child *Node) {
	wasLeft := child.IsLeftChild()
	grandparent := parent.Parent
	sibling := parent.Left
	if wasLeft {
		sibling = parent.Right
	}

	childLeft, childRight := child.Left, child.Right

	if grandparent == nil {
		t.root = child
		child.Parent = nil
	} else if parent.IsLeftChild() {
		grandparent.setLeft(child)
	} else {
		grandparent.setRight(child)
	}

	if wasLeft {
		child.setLeft(parent)
		child.setRight(sibling)
	} else {
		child.setRight(parent)
		child.setLeft(sibling)
	}
	parent.setLeft(childLeft)
	parent.setRight(childRight)
}

// swapUnrelated handles case 2 (§4.4.3): a and b are not in a direct
// parent-child relationship, so their children and parents are exchanged
// as a straight swap.
func (t *Tree) swapUnrelated(a, b *Node) {
	aParent, bParent := a.Parent, b.Parent
	aWasLeft, bWasLeft := a.IsLeftChild(), b.IsLeftChild()
	aLeft, aRight := a.Left, a.Right
	bLeft, bRight := b.Left, b.Right

	switch {
	case aParent == nil:
		t.root = b
		b.Parent = nil
	case aWasLeft:
		aParent.setLeft(b)
	default:
		aParent.setRight(b)
	}

	switch {
	case bParent == nil:
		t.root = a
		a.Parent = nil
	case bWasLeft:
		bParent.setLeft(a)
	default:
		bParent.setRight(a)
	}

	a.setLeft(bLeft)
	a.setRight(bRight)
	b.setLeft(aLeft)
	b.setRight(aRight)
}

// ConvertSymmetryType toggles groupName's axis orientation and marks its
// Hierarchy node for repack (§4.4.3). Returns an *hberrors.Error with
// ErrCodeUnknownGroup if the group is not registered.
func (t *Tree) ConvertSymmetryType(groupName string) error {
	hNode, ok := t.symmetryGroupNodes[groupName]
	if !ok {
		return hberrors.New(hberrors.ErrCodeUnknownGroup, "group %q not found", groupName)
	}
	hNode.ASF.ConvertSymmetryType()
	if !hNode.ASF.IsSymmetricFeasible() {
		return hberrors.New(hberrors.ErrCodeInfeasibleSymmetry, "group %q is not symmetry-feasible after convertSymmetryType", groupName)
	}
	return t.afterMutation(hNode)
}

// ChangeRepresentative delegates to groupName's ASF tree and marks its
// Hierarchy node for repack (§4.4.3). Returns an *hberrors.Error with
// ErrCodeUnknownGroup if the group is not registered.
func (t *Tree) ChangeRepresentative(groupName, moduleName string) error {
	hNode, ok := t.symmetryGroupNodes[groupName]
	if !ok {
		return hberrors.New(hberrors.ErrCodeUnknownGroup, "group %q not found", groupName)
	}
	if err := hNode.ASF.ChangeRepresentative(moduleName); err != nil {
		return err
	}
	return t.afterMutation(hNode)
}

// afterMutationQuiet marks n for repack without immediately repacking;
// used by MoveNode/SwapNodes, which mark several nodes before triggering
// one combined repack.
func (t *Tree) afterMutationQuiet(n *Node) {
	t.markSubtreeForRepack(n)
}

// maybeRepack triggers an incremental repack if the tree is currently
// packed, matching every perturbation's "triggers an incremental repack"
// contract (§4.4.3).
func (t *Tree) maybeRepack() error {
	if !t.isPacked {
		return nil
	}
	return t.RepackAffectedSubtrees()
}
