package hbtree

import (
	"testing"

	"github.com/floorkit/hbstar/pkg/module"
	"github.com/floorkit/hbstar/pkg/symmetry"
)

func buildModules(t *testing.T, dims map[string][2]int) *module.Set {
	t.Helper()
	set := module.NewSet()
	for name, wh := range dims {
		if err := set.Add(module.New(name, wh[0], wh[1])); err != nil {
			t.Fatalf("Add(%s): %v", name, err)
		}
	}
	return set
}

func TestTree_TwoFreeModules(t *testing.T) {
	// Scenario 1 (§8): two 10x10 modules, no symmetry.
	mods := buildModules(t, map[string][2]int{"A": {10, 10}, "B": {10, 10}})
	tree, err := New(mods, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tree.Pack(); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	a, _ := mods.Get("A")
	b, _ := mods.Get("B")

	placements := map[[2]int]bool{{a.X, a.Y}: true, {b.X, b.Y}: true}
	if !placements[[2]int{0, 0}] || !placements[[2]int{10, 0}] {
		t.Errorf("expected placements (0,0) and (10,0), got A=(%d,%d) B=(%d,%d)", a.X, a.Y, b.X, b.Y)
	}
	if tree.TotalArea() != 200 {
		t.Errorf("TotalArea() = %d, want 200", tree.TotalArea())
	}
}

func TestTree_PairIslandPlusFreeModule(t *testing.T) {
	// Scenario 2 (§8).
	mods := buildModules(t, map[string][2]int{
		"A": {20, 10},
		"B": {20, 10},
		"C": {10, 10},
	})
	group := symmetry.New("g1", symmetry.Vertical)
	if err := group.AddPair("A", "B"); err != nil {
		t.Fatalf("AddPair: %v", err)
	}
	tree, err := New(mods, []*symmetry.Group{group})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tree.Pack(); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	a, _ := mods.Get("A")
	b, _ := mods.Get("B")
	if a.CenterY2() != b.CenterY2() {
		t.Errorf("pair not aligned: A.CenterY2=%d B.CenterY2=%d", a.CenterY2(), b.CenterY2())
	}
	checkNoOverlap(t, mods)
	checkNonNegative(t, mods)
}

func TestTree_SelfSymmetricCentered(t *testing.T) {
	// Scenario 3 (§8).
	mods := buildModules(t, map[string][2]int{"S": {30, 10}})
	group := symmetry.New("g2", symmetry.Vertical)
	if err := group.AddSelfSymmetric("S"); err != nil {
		t.Fatalf("AddSelfSymmetric: %v", err)
	}
	tree, err := New(mods, []*symmetry.Group{group})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tree.Pack(); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	s, _ := mods.Get("S")
	hNode := tree.symmetryGroupNodes["g2"]
	axis2 := 2 * hNode.ASF.AxisPosition()
	if s.CenterX2() != axis2 {
		t.Errorf("self-symmetric module not centered on axis: CenterX2=%d axis2=%d", s.CenterX2(), axis2)
	}
}

func TestTree_RotateFreeModule(t *testing.T) {
	// Scenario 4 (§8).
	mods := buildModules(t, map[string][2]int{"M": {10, 20}})
	tree, err := New(mods, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := tree.RotateModule("M"); err != nil {
		t.Fatalf("RotateModule: %v", err)
	}
	m, _ := mods.Get("M")
	if m.EffectiveWidth() != 20 || m.EffectiveHeight() != 10 {
		t.Fatalf("after first rotate: w=%d h=%d, want 20x10", m.EffectiveWidth(), m.EffectiveHeight())
	}

	if err := tree.RotateModule("M"); err != nil {
		t.Fatalf("RotateModule (second): %v", err)
	}
	if m.EffectiveWidth() != 10 || m.EffectiveHeight() != 20 {
		t.Fatalf("after second rotate: w=%d h=%d, want 10x20", m.EffectiveWidth(), m.EffectiveHeight())
	}
}

func TestTree_RotateUnknownModule(t *testing.T) {
	mods := buildModules(t, map[string][2]int{"M": {10, 20}})
	tree, err := New(mods, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tree.RotateModule("nope"); err == nil {
		t.Fatal("RotateModule on unknown module should fail")
	}
}

func TestTree_SwapRootAndLeaf(t *testing.T) {
	// Scenario 5 (§8): a is root, b is a leaf.
	mods := buildModules(t, map[string][2]int{
		"A": {10, 10}, "B": {10, 10}, "C": {10, 10},
	})
	tree, err := New(mods, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	root := tree.root
	leaf := findAnyLeaf(root)
	if leaf == root {
		t.Fatal("test setup: expected a distinct leaf from root")
	}
	leafName := leaf.ModuleName

	if err := tree.SwapNodes(root.ModuleName, leafName); err != nil {
		t.Fatalf("SwapNodes: %v", err)
	}
	if tree.root.ModuleName != leafName {
		t.Fatalf("root.ModuleName = %q, want %q", tree.root.ModuleName, leafName)
	}

	if err := tree.Pack(); err != nil {
		t.Fatalf("Pack after swap: %v", err)
	}
	checkNoOverlap(t, mods)
}

func findAnyLeaf(n *Node) *Node {
	for !n.IsLeaf() {
		if n.Left != nil {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n
}

func TestTree_ConvertSymmetryType(t *testing.T) {
	// Scenario 6 (§8).
	mods := buildModules(t, map[string][2]int{
		"A": {20, 10},
		"B": {20, 10},
	})
	group := symmetry.New("g3", symmetry.Vertical)
	if err := group.AddPair("A", "B"); err != nil {
		t.Fatalf("AddPair: %v", err)
	}
	tree, err := New(mods, []*symmetry.Group{group})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := tree.ConvertSymmetryType("g3"); err != nil {
		t.Fatalf("ConvertSymmetryType: %v", err)
	}
	if err := tree.Pack(); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	a, _ := mods.Get("A")
	b, _ := mods.Get("B")
	if a.X != b.X || a.EffectiveWidth() != b.EffectiveWidth() {
		t.Errorf("horizontal-axis pair should share X and width: A.X=%d B.X=%d", a.X, b.X)
	}
}

func TestTree_Idempotence(t *testing.T) {
	// P6.
	mods := buildModules(t, map[string][2]int{
		"A": {10, 10}, "B": {20, 5}, "C": {5, 5},
	})
	tree, err := New(mods, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tree.Pack(); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	snapshot := snapshotPositions(mods)

	if err := tree.Pack(); err != nil {
		t.Fatalf("second Pack: %v", err)
	}
	if got := snapshotPositions(mods); !positionsEqual(got, snapshot) {
		t.Errorf("positions changed across idempotent packs: %v vs %v", snapshot, got)
	}
}

func TestTree_IncrementalEqualsFull(t *testing.T) {
	// P8.
	mods := buildModules(t, map[string][2]int{
		"A": {10, 10}, "B": {20, 5}, "C": {5, 5}, "D": {8, 8},
	})
	tree, err := New(mods, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tree.Pack(); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if err := tree.RotateModule("D"); err != nil {
		t.Fatalf("RotateModule: %v", err)
	}
	incremental := snapshotPositions(mods)

	if err := tree.Pack(); err != nil {
		t.Fatalf("full Pack: %v", err)
	}
	full := snapshotPositions(mods)

	if !positionsEqual(incremental, full) {
		t.Errorf("incremental repack diverged from full pack: incremental=%v full=%v", incremental, full)
	}
}

func TestTree_ModuleAttachedUnderHierarchyContourChain(t *testing.T) {
	// A free module moved onto a Hierarchy node's contour chain (displacing
	// the chain itself, per MoveNode/relocate's §4.4.3 contract) must still
	// land at a legal, non-overlapping position once the chain is
	// regenerated and the dangling displaced chain is reattached (§4.4.2).
	mods := buildModules(t, map[string][2]int{
		"A": {20, 10}, "B": {20, 10}, "C": {10, 10},
	})
	group := symmetry.New("g1", symmetry.Vertical)
	if err := group.AddPair("A", "B"); err != nil {
		t.Fatalf("AddPair: %v", err)
	}
	tree, err := New(mods, []*symmetry.Group{group})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tree.Pack(); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	if err := tree.MoveNode("C", "g1", false); err != nil {
		t.Fatalf("MoveNode: %v", err)
	}
	if err := tree.Pack(); err != nil {
		t.Fatalf("Pack after MoveNode: %v", err)
	}

	checkNoOverlap(t, mods)
	checkNonNegative(t, mods)
}

func TestTree_Clone(t *testing.T) {
	mods := buildModules(t, map[string][2]int{
		"A": {10, 10}, "B": {20, 5}, "C": {5, 5},
	})
	tree, err := New(mods, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tree.Pack(); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	before := tree.TotalArea()

	clone, err := tree.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if clone.TotalArea() != before {
		t.Errorf("clone.TotalArea() = %d, want %d", clone.TotalArea(), before)
	}

	// Mutating the original after cloning must not affect the clone's own
	// module set or topology.
	if err := tree.RotateModule("A"); err != nil {
		t.Fatalf("RotateModule: %v", err)
	}
	if err := tree.Pack(); err != nil {
		t.Fatalf("Pack after rotate: %v", err)
	}

	a, _ := mods.Get("A")
	cloneModules := clone.Modules()
	cloneA, ok := cloneModules.Get("A")
	if !ok {
		t.Fatalf("clone lost module %q", "A")
	}
	if cloneA.Rotated == a.Rotated {
		t.Errorf("clone's module %q was affected by a rotation on the original tree", "A")
	}
	if clone.TotalArea() != before {
		t.Errorf("clone.TotalArea() changed after mutating the original: got %d, want %d", clone.TotalArea(), before)
	}
}

func checkNoOverlap(t *testing.T, mods *module.Set) {
	t.Helper()
	all := mods.All()
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if rectsOverlap(all[i], all[j]) {
				t.Errorf("modules %q and %q overlap", all[i].Name, all[j].Name)
			}
		}
	}
}

func rectsOverlap(a, b *module.Module) bool {
	ax2, ay2 := a.X+a.EffectiveWidth(), a.Y+a.EffectiveHeight()
	bx2, by2 := b.X+b.EffectiveWidth(), b.Y+b.EffectiveHeight()
	return a.X < bx2 && ax2 > b.X && a.Y < by2 && ay2 > b.Y
}

func checkNonNegative(t *testing.T, mods *module.Set) {
	t.Helper()
	for _, m := range mods.All() {
		if m.X < 0 || m.Y < 0 {
			t.Errorf("module %q has negative coordinate (%d,%d)", m.Name, m.X, m.Y)
		}
	}
}

func snapshotPositions(mods *module.Set) map[string][2]int {
	out := make(map[string][2]int)
	for _, m := range mods.All() {
		out[m.Name] = [2]int{m.X, m.Y}
	}
	return out
}

func positionsEqual(a, b map[string][2]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
