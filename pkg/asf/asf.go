// Package asf implements the ASF-B*-tree (Automatically Symmetric-Feasible
// B*-tree): a topologically constrained B*-tree over one symmetry group's
// representatives that packs to a mirror-symmetric island by construction
// (§4.2).
//
// The tree is packed in a local (u, v) coordinate space where u is the
// axis-forced coordinate and v is the free coordinate: for a vertical-axis
// group u=x and v=y; for a horizontal-axis group the roles are exchanged
// (u=y, v=x), matching §4.2's "analogous constraints with axes exchanged."
// Self-symmetric modules occupy half of their forced dimension in this
// local space — the other half is implicit, mirrored across u=0 — and
// therefore require that dimension to be even; Tree construction and
// ConvertSymmetryType report this via IsSymmetricFeasible rather than
// guessing a rounding rule.
package asf

import (
	"sort"

	"github.com/floorkit/hbstar/pkg/geometry"
	"github.com/floorkit/hbstar/pkg/hberrors"
	"github.com/floorkit/hbstar/pkg/module"
	"github.com/floorkit/hbstar/pkg/symmetry"
)

// node is one slot in the representative B*-tree. Left child -> placed
// further along u (to the right, or upward for a horizontal group); right child -> chained along the same u value, i.e. stacked
// along v. Only representative and self-symmetric names occupy nodes;
// mirror partners are derived, never placed in the tree.
type node struct {
	name                 string
	left, right, parent  *node
	localU, localV       int // position assigned by the last Pack()
	extentU, extentV     int // footprint occupied in local space
}

// pairSlot tracks which member of a declared pair currently serves as the
// tree's representative; the other is the partner, derived by reflection.
type pairSlot struct {
	rep, partner string
}

// Tree is one symmetry group's ASF-B*-tree.
type Tree struct {
	groupName string
	axis      symmetry.Axis
	modules   *module.Set // shared with the owning HB*-tree; not owned

	pairs   []pairSlot
	selfSym []string

	root  *node
	index map[string]*node // representative/self-symmetric name -> node

	horizontal, vertical *geometry.Contour
	axisPos               int
	minX, minY            int
	maxX, maxY             int
	packed                bool
}

// New builds an ASF-B*-tree for group, reading initial dimensions from
// modules. modules must already contain every name in group.Members().
// Returns an *hberrors.Error with ErrCodeUnknownModule if a member is
// missing, or ErrCodeInvalidInput if group fails Validate or a
// self-symmetric module's forced dimension is odd.
func New(group *symmetry.Group, modules *module.Set) (*Tree, error) {
	if err := group.Validate(); err != nil {
		return nil, err
	}
	for _, name := range group.Members() {
		if _, ok := modules.Get(name); !ok {
			return nil, hberrors.New(hberrors.ErrCodeUnknownModule, "group %q references unknown module %q", group.Name, name)
		}
	}

	t := &Tree{
		groupName: group.Name,
		axis:      group.Axis,
		modules:   modules,
		index:     make(map[string]*node),
	}
	for _, p := range group.Pairs {
		t.pairs = append(t.pairs, pairSlot{rep: p.A, partner: p.B})
	}
	t.selfSym = append(t.selfSym, group.SelfSymmetric...)

	if err := t.checkParity(); err != nil {
		return nil, err
	}

	t.buildInitialTopology()
	return t, nil
}

// checkParity verifies every self-symmetric module's forced dimension
// (width for a vertical axis, height for a horizontal axis) is even.
func (t *Tree) checkParity() error {
	for _, name := range t.selfSym {
		m, _ := t.modules.Get(name)
		forced := m.EffectiveWidth()
		if t.axis == symmetry.Horizontal {
			forced = m.EffectiveHeight()
		}
		if forced%2 != 0 {
			return hberrors.New(hberrors.ErrCodeInvalidInput,
				"self-symmetric module %q has odd forced dimension %d for a %s-axis group", name, forced, t.axis)
		}
	}
	return nil
}

// buildInitialTopology lays self-symmetric nodes on the right spine from
// the root, with the pair-representative chain hanging off the spine's
// last node (or forming the root itself if the group has no
// self-symmetric members) — mirroring the HB*-tree's own initial
// construction (Hierarchy nodes first, then a left-skewed module chain).
func (t *Tree) buildInitialTopology() {
	var spineTail *node
	for _, name := range t.selfSym {
		n := &node{name: name}
		t.index[name] = n
		if t.root == nil {
			t.root = n
		} else {
			spineTail.right = n
			n.parent = spineTail
		}
		spineTail = n
	}

	var chainTail *node
	for _, p := range t.pairs {
		n := &node{name: p.rep}
		t.index[p.rep] = n
		if t.root == nil {
			t.root = n
		} else if chainTail == nil {
			spineTail.left = n
			n.parent = spineTail
		} else {
			chainTail.left = n
			n.parent = chainTail
		}
		chainTail = n
	}
}

// IsSymmetricFeasible reports whether the tree still satisfies the
// representative/self-symmetric boundary constraints (§4.2). Topology
// never changes after New and RotateModule refuses parity-breaking
// rotations, so the only way this can go false is a parity-breaking
// ConvertSymmetryType call.
func (t *Tree) IsSymmetricFeasible() bool {
	return t.checkParity() == nil
}

// localDims returns the module's extent along (u, v): u is the
// axis-forced dimension, v is the free dimension, and for self-symmetric
// modules u is halved (the node represents only the axis-ward half).
func (t *Tree) localDims(name string) (u, v int) {
	m, _ := t.modules.Get(name)
	w, h := m.EffectiveWidth(), m.EffectiveHeight()
	if t.axis == symmetry.Horizontal {
		w, h = h, w
	}
	if t.isSelfSym(name) {
		w /= 2
	}
	return w, h
}

func (t *Tree) isSelfSym(name string) bool {
	for _, s := range t.selfSym {
		if s == name {
			return true
		}
	}
	return false
}

// toXY maps local (u, v) to global (x, y) per the group's axis.
func (t *Tree) toXY(u, v int) (x, y int) {
	if t.axis == symmetry.Horizontal {
		return v, u
	}
	return u, v
}

// Pack assigns coordinates to every module in the group so that the
// placement satisfies I2 (§3), and computes the island's bounding box,
// skylines, and symmetry axis position — all in a local frame not yet
// translated into the owning HB*-tree's global frame (see Translate).
// Returns an *hberrors.Error with ErrCodeEmptyTree if the group has no
// members.
func (t *Tree) Pack() error {
	if t.root == nil {
		return hberrors.New(hberrors.ErrCodeEmptyTree, "asf tree %q has no members", t.groupName)
	}

	local := geometry.New()
	t.placeLocal(t.root, nil, false, local)

	maxU := 0
	minV, maxV := 0, 0
	first := true
	for _, n := range t.index {
		if r := n.localU + n.extentU; r > maxU {
			maxU = r
		}
		if first || n.localV < minV {
			minV = n.localV
			first = false
		}
		if r := n.localV + n.extentV; r > maxV {
			maxV = r
		}
	}
	for _, name := range t.selfSym {
		n := t.index[name]
		if n.extentU > maxU {
			maxU = n.extentU
		}
	}

	// The axis sits at local u=0 by construction: self-symmetric nodes are
	// anchored there and pair partners are mirrored to -u, so the packed
	// island spans u in [-maxU, maxU] symmetric about 0.
	t.axisPos = 0
	minX, minY := t.toXY(-maxU, minV)
	maxX, maxY := t.toXY(maxU, maxV)
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	t.minX, t.minY, t.maxX, t.maxY = minX, minY, maxX, maxY

	t.setModulePositions()
	t.buildContours()
	t.packed = true
	return nil
}

// placeLocal recursively assigns (localU, localV) to n using the same
// B*-tree rule as the HB*-tree's own pack (§4.4.2), specialized to plain
// representative nodes: a left child advances along u past its parent's
// footprint; a right child keeps its parent's u (this is what keeps the
// self-symmetric spine at u=0 all the way from the root).
func (t *Tree) placeLocal(n, parent *node, isLeftChild bool, contour *geometry.Contour) {
	if n == nil {
		return
	}
	u, v := t.localDims(n.name)
	n.extentU, n.extentV = u, v

	switch {
	case parent == nil:
		n.localU = 0
	case isLeftChild:
		n.localU = parent.localU + parent.extentU
	default:
		n.localU = parent.localU
	}
	n.localV = contour.GetHeight(n.localU, n.localU+n.extentU)
	contour.AddSegment(n.localU, n.localU+n.extentU, n.localV+n.extentV)

	t.placeLocal(n.left, n, true, contour)
	t.placeLocal(n.right, n, false, contour)
}

// setModulePositions writes global (pre-translation) coordinates onto
// every module in the group: the representative (or self-symmetric
// module), and for pairs, the mirror partner derived by reflection across
// local u=0.
func (t *Tree) setModulePositions() {
	for _, name := range t.selfSym {
		n := t.index[name]
		m, _ := t.modules.Get(name)
		u := n.localU - n.extentU // = -extentU since localU is 0 on the spine
		x, y := t.toXY(u, n.localV)
		m.X, m.Y = x, y
	}
	for _, p := range t.pairs {
		n := t.index[p.rep]
		rep, _ := t.modules.Get(p.rep)
		partner, _ := t.modules.Get(p.partner)

		rx, ry := t.toXY(n.localU, n.localV)
		rep.X, rep.Y = rx, ry

		pu := -(n.localU + n.extentU)
		px, py := t.toXY(pu, n.localV)
		partner.X, partner.Y = px, py
		partner.Rotated = rep.Rotated
	}
}

// buildContours builds the island's horizontal and vertical skylines from
// the now-placed modules. The skyline along the forced axis reuses the
// local pack's own contour structure by re-deriving it directly from
// placed rectangles (monotonic top-down by extent, matching AddSegment's
// replace semantics safely).
func (t *Tree) buildContours() {
	rects := t.memberRects()
	t.horizontal = buildSkyline(rects, true)
	t.vertical = buildSkyline(rects, false)
}

type rect struct{ x, y, w, h int }

func (t *Tree) memberRects() []rect {
	out := make([]rect, 0, 2*len(t.pairs)+len(t.selfSym))
	for _, name := range t.selfSym {
		m, _ := t.modules.Get(name)
		out = append(out, rect{m.X, m.Y, m.EffectiveWidth(), m.EffectiveHeight()})
	}
	for _, p := range t.pairs {
		for _, name := range [2]string{p.rep, p.partner} {
			m, _ := t.modules.Get(name)
			out = append(out, rect{m.X, m.Y, m.EffectiveWidth(), m.EffectiveHeight()})
		}
	}
	return out
}

// buildSkyline replays rect tops in ascending order so each AddSegment's
// replace semantics never overwrites a taller neighbor with a shorter one.
// horizontal selects the x/y=height skyline; !horizontal selects y/x.
func buildSkyline(rects []rect, horizontal bool) *geometry.Contour {
	top := func(r rect) int {
		if horizontal {
			return r.y + r.h
		}
		return r.x + r.w
	}
	sorted := make([]rect, len(rects))
	copy(sorted, rects)
	sort.Slice(sorted, func(i, j int) bool { return top(sorted[i]) < top(sorted[j]) })

	c := geometry.New()
	for _, r := range sorted {
		if horizontal {
			c.AddSegment(r.x, r.x+r.w, r.y+r.h)
		} else {
			c.AddSegment(r.y, r.y+r.h, r.x+r.w)
		}
	}
	return c
}

// GetContours returns the island's horizontal and vertical skylines.
// Valid only after Pack.
func (t *Tree) GetContours() (horizontal, vertical *geometry.Contour) {
	return t.horizontal, t.vertical
}

// BoundingBox returns the island's (minX, minY, maxX, maxY) in the local,
// pre-translation frame computed by the last Pack.
func (t *Tree) BoundingBox() (minX, minY, maxX, maxY int) {
	return t.minX, t.minY, t.maxX, t.maxY
}

// AxisPosition returns the symmetry axis position in the same frame as
// BoundingBox (pre-translation). Call Translate after the owning HB*-tree
// assigns this island's global position to bring it up to date.
func (t *Tree) AxisPosition() int {
	if t.axis == symmetry.Horizontal {
		_, y := t.toXY(t.axisPos, 0)
		return y
	}
	x, _ := t.toXY(t.axisPos, 0)
	return x
}

// Translate shifts every module in the group, the stored bounding box, the
// axis position, and both contours by (dx, dy). Called once by the owning
// HB*-tree after it assigns this island's position (§4.4.2 step 4-5).
func (t *Tree) Translate(dx, dy int) {
	for _, name := range t.selfSym {
		m, _ := t.modules.Get(name)
		m.X += dx
		m.Y += dy
	}
	for _, p := range t.pairs {
		for _, name := range [2]string{p.rep, p.partner} {
			m, _ := t.modules.Get(name)
			m.X += dx
			m.Y += dy
		}
	}
	t.minX += dx
	t.maxX += dx
	t.minY += dy
	t.maxY += dy
	if t.axis == symmetry.Horizontal {
		t.axisPos += dy
	} else {
		t.axisPos += dx
	}
	t.horizontal.Shift(dx, dy)
	t.vertical.Shift(dy, dx)
}

// RotateModule rotates name. For a pair member, both members rotate in
// lock-step so their mirrored dimensions stay equal (P4). For a
// self-symmetric member, the rotation is rejected (returns false) if it
// would make the forced dimension odd, since that is exactly the
// condition IsSymmetricFeasible checks for.
func (t *Tree) RotateModule(name string) (bool, error) {
	if t.isSelfSym(name) {
		m, ok := t.modules.Get(name)
		if !ok {
			return false, hberrors.New(hberrors.ErrCodeUnknownModule, "module %q not found", name)
		}
		forced := m.EffectiveHeight()
		if t.axis == symmetry.Horizontal {
			forced = m.EffectiveWidth()
		}
		if forced%2 != 0 {
			return false, nil
		}
		m.Rotate()
		t.packed = false
		return true, nil
	}
	for _, p := range t.pairs {
		if p.rep == name || p.partner == name {
			rep, _ := t.modules.Get(p.rep)
			partner, _ := t.modules.Get(p.partner)
			rep.Rotate()
			partner.Rotate()
			t.packed = false
			return true, nil
		}
	}
	return false, hberrors.New(hberrors.ErrCodeUnknownModule, "module %q not in group %q", name, t.groupName)
}

// ChangeRepresentative exchanges which member of name's pair currently
// serves as the tree's representative. The node keeps its tree position;
// only the name it carries changes.
func (t *Tree) ChangeRepresentative(name string) error {
	for i, p := range t.pairs {
		if p.rep != name && p.partner != name {
			continue
		}
		n := t.index[p.rep]
		delete(t.index, p.rep)
		t.pairs[i].rep, t.pairs[i].partner = p.partner, p.rep
		n.name = t.pairs[i].rep
		t.index[n.name] = n
		t.packed = false
		return nil
	}
	return hberrors.New(hberrors.ErrCodeUnknownModule, "module %q not in group %q", name, t.groupName)
}

// ConvertSymmetryType toggles the group between vertical- and
// horizontal-axis symmetry and re-derives the feasibility constraint
// (§4.2). The tree is not repacked automatically; call IsSymmetricFeasible
// afterward — per §7, an infeasible result is reported, not auto-repaired.
func (t *Tree) ConvertSymmetryType() {
	if t.axis == symmetry.Vertical {
		t.axis = symmetry.Horizontal
	} else {
		t.axis = symmetry.Vertical
	}
	t.packed = false
}

// Axis returns the group's current axis orientation.
func (t *Tree) Axis() symmetry.Axis {
	return t.axis
}

// GroupName returns the name of the symmetry group this tree represents.
func (t *Tree) GroupName() string {
	return t.groupName
}

// Clone returns an independent deep copy of the tree, including its
// topology and cached pack results. The copy shares no state with the
// owning HB*-tree's module set — the caller is responsible for pointing
// the clone at a cloned *module.Set (see hbtree.Tree.Clone).
func (t *Tree) Clone(modules *module.Set) *Tree {
	c := &Tree{
		groupName: t.groupName,
		axis:      t.axis,
		modules:   modules,
		pairs:     append([]pairSlot(nil), t.pairs...),
		selfSym:   append([]string(nil), t.selfSym...),
		index:     make(map[string]*node, len(t.index)),
		axisPos:   t.axisPos,
		minX:      t.minX,
		minY:      t.minY,
		maxX:      t.maxX,
		maxY:      t.maxY,
		packed:    t.packed,
	}
	nodeMap := make(map[*node]*node, len(t.index))
	c.root = cloneNode(t.root, nil, nodeMap)
	for name, n := range t.index {
		c.index[name] = nodeMap[n]
	}
	if t.horizontal != nil {
		c.horizontal = t.horizontal.Clone()
	}
	if t.vertical != nil {
		c.vertical = t.vertical.Clone()
	}
	return c
}

func cloneNode(n, parent *node, nodeMap map[*node]*node) *node {
	if n == nil {
		return nil
	}
	c := &node{
		name:    n.name,
		parent:  parent,
		localU:  n.localU,
		localV:  n.localV,
		extentU: n.extentU,
		extentV: n.extentV,
	}
	nodeMap[n] = c
	c.left = cloneNode(n.left, c, nodeMap)
	c.right = cloneNode(n.right, c, nodeMap)
	return c
}
