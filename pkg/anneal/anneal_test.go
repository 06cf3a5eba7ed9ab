package anneal

import (
	"testing"
	"time"

	"github.com/floorkit/hbstar/pkg/config"
	"github.com/floorkit/hbstar/pkg/hbtree"
	"github.com/floorkit/hbstar/pkg/module"
	"github.com/floorkit/hbstar/pkg/observability"
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

func buildTree(t *testing.T) *hbtree.Tree {
	t.Helper()
	mods := buildModules(t, map[string][2]int{
		"A": {10, 10}, "B": {10, 10}, "C": {10, 10}, "D": {10, 10},
	})
	tree, err := hbtree.New(mods, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tree.Pack(); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	return tree
}

// TestStep_RejectedMoveRestoresTree asserts that whenever step reports a
// rejected move, the tree it mutated is restored to its pre-move state:
// cost (and therefore TotalArea, since these fixtures have no symmetry
// groups and so zero wirelength) is unchanged across a rejected step. At
// a near-zero temperature, a cost-increasing move is rejected with
// near-certainty, so this loop exercises the revert path repeatedly.
func TestStep_RejectedMoveRestoresTree(t *testing.T) {
	tree := buildTree(t)
	cfg := config.Default()
	cfg.Seed = 1
	d := New(tree, nil, cfg, observability.NoopHooks())

	sawRejection := false
	for i := 0; i < 50; i++ {
		before := d.cost()
		accepted, err := d.step(1e-9)
		if err != nil {
			t.Fatalf("step: %v", err)
		}
		if !accepted {
			sawRejection = true
			if got := d.cost(); got != before {
				t.Fatalf("step %d: cost() = %v after a rejected move, want unchanged %v", i, got, before)
			}
		}
	}
	if !sawRejection {
		t.Fatalf("no perturbation was rejected over 50 attempts at a near-zero temperature")
	}
}

// TestStep_AcceptedMoveIsKept asserts that an accepted step's mutation
// survives past the call (the driver does not revert a kept move).
func TestStep_AcceptedMoveIsKept(t *testing.T) {
	tree := buildTree(t)
	cfg := config.Default()
	cfg.Seed = 2
	d := New(tree, nil, cfg, observability.NoopHooks())

	accepted := false
	for i := 0; i < 50 && !accepted; i++ {
		var err error
		accepted, err = d.step(1e6)
		if err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	if !accepted {
		t.Fatalf("no perturbation was accepted at a very high temperature over 50 attempts")
	}
	if d.tree.TotalArea() <= 0 {
		t.Errorf("TotalArea() = %d after an accepted move, want > 0", d.tree.TotalArea())
	}
}

func TestRun_CompletesAndReportsHooks(t *testing.T) {
	tree := buildTree(t)
	cfg := config.Default()
	cfg.Seed = 3
	cfg.IterationsPerTemp = 10
	cfg.NoImprovementLimit = 20

	hooks := &recordingHooks{}
	d := New(tree, nil, cfg, hooks)

	result, err := d.Run(10 * time.Second)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.BestArea <= 0 {
		t.Errorf("BestArea = %d, want > 0", result.BestArea)
	}
	if !hooks.complete {
		t.Errorf("OnRunComplete was never called")
	}
	if hooks.completeArea != result.BestArea {
		t.Errorf("OnRunComplete reported area %d, want %d", hooks.completeArea, result.BestArea)
	}
}

type recordingHooks struct {
	complete     bool
	completeArea int
}

func (h *recordingHooks) OnIteration(observability.IterationEvent)       {}
func (h *recordingHooks) OnPerturbation(observability.PerturbationEvent) {}
func (h *recordingHooks) OnRunComplete(bestCost float64, bestArea int, timedOut bool) {
	h.complete = true
	h.completeArea = bestArea
}
