package hbtree

import "github.com/floorkit/hbstar/pkg/symmetry"

// Clone deep-copies t's current topology — modules, groups, every node
// (via Node.Clone), and both global skylines — so the annealing driver
// can checkpoint before a perturbation and restore the exact pre-move
// tree on rejection (§5 "the driver may checkpoint by clone() and
// restore by reassigning its owned pointer").
//
// Perturbation history is not preserved as such, but the resulting
// topology, placements, and totalArea/isPacked state are identical to
// t's at the moment Clone was called.
func (t *Tree) Clone() (*Tree, error) {
	clonedModules := t.modules.Clone()
	clonedGroups := make([]*symmetry.Group, 0, len(t.groups))
	for _, g := range t.groups {
		clonedGroups = append(clonedGroups, g.Clone())
	}

	c := &Tree{
		modules:            clonedModules,
		groups:             clonedGroups,
		horizontalContour:  t.horizontalContour.Clone(),
		verticalContour:    t.verticalContour.Clone(),
		moduleNodes:        make(map[string]*Node),
		symmetryGroupNodes: make(map[string]*Node),
		nodeMap:            make(map[string]*Node),
		modifiedSubtrees:   make(map[*Node]bool),
		totalArea:          t.totalArea,
		isPacked:           t.isPacked,
	}
	c.root = t.root.Clone(clonedModules)
	c.reindex(c.root)
	return c, nil
}

// reindex walks the subtree rooted at n and repopulates moduleNodes,
// symmetryGroupNodes, and nodeMap, the lookup tables Node.Clone does not
// itself maintain.
func (t *Tree) reindex(n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindModule:
		t.moduleNodes[n.ModuleName] = n
		t.nodeMap[n.ModuleName] = n
	case KindHierarchy:
		t.symmetryGroupNodes[n.GroupName] = n
		t.nodeMap[n.GroupName] = n
	}
	t.reindex(n.Left)
	t.reindex(n.Right)
}
