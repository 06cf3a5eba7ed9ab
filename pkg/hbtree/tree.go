package hbtree

import (
	"sort"

	"github.com/floorkit/hbstar/pkg/asf"
	"github.com/floorkit/hbstar/pkg/geometry"
	"github.com/floorkit/hbstar/pkg/hberrors"
	"github.com/floorkit/hbstar/pkg/module"
	"github.com/floorkit/hbstar/pkg/symmetry"
)

// Tree is the HB*-tree: the top-level packable structure that owns the
// module registry, the declared symmetry groups, the root node, the two
// global skylines, and the name indices needed by perturbations (§4.4).
type Tree struct {
	modules *module.Set
	groups  []*symmetry.Group

	root *Node

	horizontalContour *geometry.Contour
	verticalContour   *geometry.Contour

	moduleNodes        map[string]*Node
	symmetryGroupNodes map[string]*Node
	nodeMap            map[string]*Node

	modifiedSubtrees map[*Node]bool

	totalArea int
	isPacked  bool
}

// New builds an HB*-tree from modules and groups and lays out its initial
// topology per §4.4.1. It does not pack; call Pack afterward.
//
// Returns an *hberrors.Error with ErrCodeUnknownModule if a group
// references a module absent from modules, or ErrCodeInvalidInput if a
// module name appears in more than one group.
func New(modules *module.Set, groups []*symmetry.Group) (*Tree, error) {
	t := &Tree{
		modules:            modules,
		groups:             groups,
		horizontalContour:  geometry.New(),
		verticalContour:    geometry.New(),
		moduleNodes:        make(map[string]*Node),
		symmetryGroupNodes: make(map[string]*Node),
		nodeMap:            make(map[string]*Node),
		modifiedSubtrees:   make(map[*Node]bool),
	}

	grouped := make(map[string]string) // module name -> owning group name
	var hierarchyNodes []*Node
	for _, g := range groups {
		for _, name := range g.Members() {
			if owner, ok := grouped[name]; ok {
				return nil, hberrors.New(hberrors.ErrCodeInvalidInput, "module %q belongs to both group %q and %q", name, owner, g.Name)
			}
			grouped[name] = g.Name
		}

		asfTree, err := asf.New(g, modules)
		if err != nil {
			return nil, err
		}
		n := NewHierarchyNode(g.Name, asfTree)
		hierarchyNodes = append(hierarchyNodes, n)
		t.symmetryGroupNodes[g.Name] = n
		t.nodeMap[g.Name] = n
	}

	var free []*module.Module
	for _, m := range modules.All() {
		if _, ok := grouped[m.Name]; !ok {
			free = append(free, m)
		}
	}
	sort.Slice(free, func(i, j int) bool { return free[i].Area() > free[j].Area() })

	var moduleNodes []*Node
	for _, m := range free {
		n := NewModuleNode(m.Name)
		moduleNodes = append(moduleNodes, n)
		t.moduleNodes[m.Name] = n
		t.nodeMap[m.Name] = n
	}

	chain := append(hierarchyNodes, moduleNodes...)
	for i := 0; i+1 < len(chain); i++ {
		chain[i].setLeft(chain[i+1])
	}
	if len(chain) > 0 {
		t.root = chain[0]
	}

	return t, nil
}

// FindNode returns the Module or Hierarchy node registered under name.
func (t *Tree) FindNode(name string) (*Node, bool) {
	n, ok := t.nodeMap[name]
	return n, ok
}

// TotalArea returns the bounding-box area computed by the last Pack.
func (t *Tree) TotalArea() int {
	return t.totalArea
}

// IsPacked reports whether Pack has run at least once. After that, every
// perturbation repacks the affected subtrees before it returns.
func (t *Tree) IsPacked() bool {
	return t.isPacked
}

// Modules returns the module registry backing this tree.
func (t *Tree) Modules() *module.Set {
	return t.modules
}

// Root returns the tree's root node, or nil if the tree holds no modules.
func (t *Tree) Root() *Node {
	return t.root
}

// Pack performs a from-scratch pack of the entire tree: resets the global
// contours, walks the tree top-down depth-first (left then right), and
// regenerates every Hierarchy node's contour-node chain (§4.4.2).
func (t *Tree) Pack() error {
	t.horizontalContour.Clear()
	t.verticalContour.Clear()
	t.horizontalContour.AddSegment(0, maxCoord, 0)
	t.verticalContour.AddSegment(0, maxCoord, 0)

	if err := t.packSubtree(t.root, true); err != nil {
		return err
	}

	t.totalArea = module.BoundingBoxArea(t.modules.All())
	t.isPacked = true
	t.modifiedSubtrees = make(map[*Node]bool)
	return nil
}

// maxCoord stands in for +infinity in the initial "[0, +inf) -> 0"
// contour segment (§4.4.2): large enough that no real placement reaches
// it, small enough to stay a safe int on 32-bit platforms.
const maxCoord = 1 << 30

// packSubtree packs the subtree rooted at n in place, reusing the tree's
// current global contour state. isRoot tells the x-coordinate rule that n
// has no parent (§4.4.2's "if N is the root: x = 0" case); it is true
// exactly when n is about to be visited as the very root of a pack or
// repack, not merely when n happens to be t.root.
func (t *Tree) packSubtree(n *Node, isRoot bool) error {
	if n == nil {
		return nil
	}

	x, err := t.deriveX(n, isRoot)
	if err != nil {
		return err
	}

	switch n.Kind {
	case KindContour:
		// Pure traversal scaffold: no coordinates assigned.
	case KindHierarchy:
		if err := n.ASF.Pack(); err != nil {
			return err
		}
		minX, minY, maxX, maxY := n.ASF.BoundingBox()
		w, h := maxX-minX, maxY-minY
		y := t.horizontalContour.GetHeight(x, x+w)
		n.ASF.Translate(x-minX, y-minY)
		t.horizontalContour.AddSegment(x, x+w, y+h)
		t.verticalContour.AddSegment(y, y+h, x+w)
	case KindModule:
		m, ok := t.modules.Get(n.ModuleName)
		if !ok {
			return hberrors.New(hberrors.ErrCodeUnknownModule, "node references unknown module %q", n.ModuleName)
		}
		w, h := m.EffectiveWidth(), m.EffectiveHeight()
		y := t.horizontalContour.GetHeight(x, x+w)
		m.X, m.Y = x, y
		t.horizontalContour.AddSegment(x, x+w, y+h)
		t.verticalContour.AddSegment(y, y+h, x+w)
	}

	if err := t.packSubtree(n.Left, false); err != nil {
		return err
	}
	if err := t.packSubtree(n.Right, false); err != nil {
		return err
	}

	if n.Kind == KindHierarchy {
		t.regenerateContourChain(n)
	}
	return nil
}

// deriveX implements the B*-tree x-coordinate rule (§4.4.2), specialized
// by the parent node's kind.
func (t *Tree) deriveX(n *Node, isRoot bool) (int, error) {
	if isRoot || n.Parent == nil {
		return 0, nil
	}
	p := n.Parent
	if n.IsLeftChild() {
		switch p.Kind {
		case KindModule:
			m, ok := t.modules.Get(p.ModuleName)
			if !ok {
				return 0, hberrors.New(hberrors.ErrCodeUnknownModule, "node references unknown module %q", p.ModuleName)
			}
			return m.X + m.EffectiveWidth(), nil
		case KindHierarchy:
			return p.ASF.AxisPosition(), nil
		case KindContour:
			return p.X2, nil
		}
	}
	switch p.Kind {
	case KindModule:
		m, ok := t.modules.Get(p.ModuleName)
		if !ok {
			return 0, hberrors.New(hberrors.ErrCodeUnknownModule, "node references unknown module %q", p.ModuleName)
		}
		return m.X, nil
	case KindHierarchy:
		return 0, nil
	case KindContour:
		return p.X1, nil
	}
	return 0, nil
}

// regenerateContourChain destroys h's current right-subtree contour chain
// and rebuilds it from the island's freshly packed horizontal skyline,
// one Contour node per segment, re-attaching any subtrees that were
// hanging off the old chain (§4.4.2 final step).
func (t *Tree) regenerateContourChain(h *Node) {
	dangling := collectDangling(h.Right)

	horizontal, _ := h.ASF.GetContours()
	segs := horizontal.Segments()

	var chain []*Node
	for _, s := range segs {
		chain = append(chain, NewContourNode(s.Start, s.Height, s.End, s.Height))
	}

	h.Right = nil
	if len(chain) == 0 {
		t.reattachDangling(h, dangling)
		return
	}
	h.setRight(chain[0])
	for i := 0; i+1 < len(chain); i++ {
		chain[i].setLeft(chain[i+1])
	}

	t.reattachDangling(chain[len(chain)-1], dangling)
}

// collectDangling gathers every non-Contour subtree hanging off the
// old contour chain rooted at old: the chain is linked via Left, so each
// Contour node's right child (a module/hierarchy subtree it was
// scaffolding) is collected, since the chain itself is about to be
// discarded.
func collectDangling(old *Node) []*Node {
	var out []*Node
	for n := old; n != nil; n = n.Left {
		if n.Kind != KindContour {
			// A non-Contour node reached via Left directly (no chain at
			// all) is itself the dangling subtree.
			out = append(out, n)
			break
		}
		if n.Right != nil {
			out = append(out, n.Right)
		}
	}
	return out
}

// reattachDangling re-attaches each previously dangling subtree by
// finding the nearest Contour-kind node reachable by BFS from anchor and
// attaching directly as its right child if free, else as the left child
// of the leftmost node of that right subtree's left-linked chain (§4.4.2,
// §4.4.5 findNearestContourNode / findLeftmostSkewedChild).
func (t *Tree) reattachDangling(anchor *Node, dangling []*Node) {
	for _, d := range dangling {
		target := t.findNearestContourNode(anchor)
		if target == nil {
			target = anchor
		}
		if target.Right == nil {
			target.setRight(d)
			continue
		}
		leaf := findLeftmostSkewedChild(target.Right)
		leaf.setLeft(d)
	}
}

// findNearestContourNode performs a BFS from n, returning the first
// Contour-kind node encountered (§4.4.5).
func (t *Tree) findNearestContourNode(n *Node) *Node {
	if n == nil {
		return nil
	}
	queue := []*Node{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.Kind == KindContour {
			return cur
		}
		if cur.Left != nil {
			queue = append(queue, cur.Left)
		}
		if cur.Right != nil {
			queue = append(queue, cur.Right)
		}
	}
	return nil
}

// findLeftmostSkewedChild walks n's left chain until a node without a
// left child is reached (§4.4.5).
func findLeftmostSkewedChild(n *Node) *Node {
	for n.Left != nil {
		n = n.Left
	}
	return n
}

// markSubtreeForRepack adds n and all of its ancestors up to the root to
// the modified set (§4.4.4).
func (t *Tree) markSubtreeForRepack(n *Node) {
	for cur := n; cur != nil; cur = cur.Parent {
		t.modifiedSubtrees[cur] = true
	}
}

// RepackAffectedSubtrees repacks every subtree marked since the last full
// Pack, deepest-first, reusing the current global contour state (§4.4.4).
// When the root itself is marked (markSubtreeForRepack marks every
// ancestor, so any mutation marks it), the whole tree is repacked through
// Pack, which resets the contours first, so the result equals a full pack.
func (t *Tree) RepackAffectedSubtrees() error {
	if t.modifiedSubtrees[t.root] {
		return t.Pack()
	}

	var roots []*Node
	for n := range t.modifiedSubtrees {
		maximal := true
		for a := n.Parent; a != nil; a = a.Parent {
			if t.modifiedSubtrees[a] {
				maximal = false
				break
			}
		}
		if maximal {
			roots = append(roots, n)
		}
	}

	sort.Slice(roots, func(i, j int) bool { return depthOf(roots[i]) > depthOf(roots[j]) })

	for _, r := range roots {
		if err := t.packSubtree(r, r == t.root); err != nil {
			return err
		}
	}

	t.totalArea = module.BoundingBoxArea(t.modules.All())
	t.modifiedSubtrees = make(map[*Node]bool)
	return nil
}

func depthOf(n *Node) int {
	d := 0
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		d++
	}
	return d
}
