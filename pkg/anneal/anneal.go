// Package anneal is the simulated annealing driver: the external
// collaborator that owns an *hbtree.Tree, invokes its five perturbations,
// evaluates a blended area/wirelength cost, and accepts or rejects each
// move (§4.8, spec.md §1 "SA driver"). It never reaches into the tree's
// internals — only the exported perturbation and pack methods.
//
// Grounded on the teacher's own local-search layer
// (pkg/render/tower/ordering's timeout-bounded search) and its seeded
// math/rand/v2 usage in pkg/render/tower/transform/randomize.go.
package anneal

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/floorkit/hbstar/pkg/config"
	"github.com/floorkit/hbstar/pkg/hbtree"
	"github.com/floorkit/hbstar/pkg/observability"
	"github.com/floorkit/hbstar/pkg/symmetry"
	"github.com/floorkit/hbstar/pkg/timeout"
)

// perturbationKind names one of the five perturbations, used to draw from
// the normalized probability vector.
type perturbationKind int

const (
	kindRotate perturbationKind = iota
	kindMove
	kindSwap
	kindChangeRep
	kindConvertSymmetry
)

func (k perturbationKind) String() string {
	switch k {
	case kindRotate:
		return "rotate"
	case kindMove:
		return "move"
	case kindSwap:
		return "swap"
	case kindChangeRep:
		return "changeRepresentative"
	default:
		return "convertSymmetryType"
	}
}

// Result summarizes one completed annealing run.
type Result struct {
	BestCost   float64
	BestArea   int
	Iterations int
	TimedOut   bool
}

// Driver runs the annealing schedule over a tree.
type Driver struct {
	tree   *hbtree.Tree
	groups []*symmetry.Group
	cfg    config.Config
	rng    *rand.Rand
	watch  *timeout.Watchdog
	hooks  observability.Hooks
}

// New returns a Driver for tree, configured by cfg. groups is the set of
// symmetry groups declared for the tree, used by the wirelength estimate.
// hooks may be nil, in which case observability.NoopHooks() is used.
func New(tree *hbtree.Tree, groups []*symmetry.Group, cfg config.Config, hooks observability.Hooks) *Driver {
	if hooks == nil {
		hooks = observability.NoopHooks()
	}
	return &Driver{
		tree:   tree,
		groups: groups,
		cfg:    cfg,
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0xdeadbeef)),
		watch:  timeout.New(),
		hooks:  hooks,
	}
}

// Run executes the annealing schedule: geometric cooling from
// InitialTemperature to FinalTemperature, IterationsPerTemp perturbations
// per rung, stopping early on the watchdog firing or on NoImprovementLimit
// consecutive non-improving iterations.
func (d *Driver) Run(budget time.Duration) (Result, error) {
	if err := d.tree.Pack(); err != nil {
		return Result{}, err
	}

	d.watch.Start(budget)
	defer d.watch.Stop()

	best := d.cost()
	bestArea := d.tree.TotalArea()
	noImprovement := 0
	iterations := 0

	temp := d.cfg.InitialTemperature
	for temp > d.cfg.FinalTemperature {
		for i := 0; i < d.cfg.IterationsPerTemp; i++ {
			if d.watch.HasTimedOut() {
				return d.finish(best, bestArea, iterations, true), nil
			}

			iterations++
			accepted, err := d.step(temp)
			if err != nil {
				continue
			}
			current := d.cost()
			if current < best {
				best = current
				bestArea = d.tree.TotalArea()
				noImprovement = 0
			} else {
				noImprovement++
			}

			d.hooks.OnIteration(observability.IterationEvent{
				Iteration:   iterations,
				Temperature: temp,
				Cost:        current,
				BestCost:    best,
			})

			if noImprovement >= d.cfg.NoImprovementLimit {
				return d.finish(best, bestArea, iterations, false), nil
			}
		}
		temp *= d.cfg.CoolingRate
	}

	return d.finish(best, bestArea, iterations, false), nil
}

// finish assembles the Run result and reports it through the hooks, the
// single exit point for every return branch in Run (loop exhaustion,
// watchdog firing, NoImprovementLimit reached).
func (d *Driver) finish(bestCost float64, bestArea, iterations int, timedOut bool) Result {
	result := Result{BestCost: bestCost, BestArea: bestArea, Iterations: iterations, TimedOut: timedOut}
	d.hooks.OnRunComplete(result.BestCost, result.BestArea, result.TimedOut)
	return result
}

// step checkpoints the tree, draws one perturbation, applies it, and
// decides whether to keep it via the Metropolis acceptance criterion. A
// perturbation that errors (e.g. InfeasibleSymmetry) is treated as
// rejected, per §7's "SA driver treats any failure as reject this
// perturbation". On rejection, d.tree is restored to the checkpoint taken
// before the perturbation (§5: "the driver may checkpoint by clone() and
// restore by reassigning its owned pointer"), so a rejected move never
// persists into the next iteration.
func (d *Driver) step(temperature float64) (accepted bool, err error) {
	checkpoint, err := d.tree.Clone()
	if err != nil {
		return false, err
	}

	before := d.cost()
	kind := d.drawPerturbation()

	if applyErr := d.apply(kind); applyErr != nil {
		d.tree = checkpoint
		return false, applyErr
	}

	after := d.cost()
	if after <= before {
		d.hooks.OnPerturbation(observability.PerturbationEvent{Kind: kind.String(), Accepted: true})
		return true, nil
	}
	delta := after - before
	if d.rng.Float64() < math.Exp(-delta/temperature) {
		d.hooks.OnPerturbation(observability.PerturbationEvent{Kind: kind.String(), Accepted: true})
		return true, nil
	}
	d.tree = checkpoint
	d.hooks.OnPerturbation(observability.PerturbationEvent{Kind: kind.String(), Accepted: false})
	return false, nil
}

// apply invokes the chosen perturbation against a randomly chosen target
// (node/group names drawn from the tree's current membership).
func (d *Driver) apply(kind perturbationKind) error {
	modules := d.tree.Modules().All()
	if len(modules) == 0 {
		return nil
	}

	switch kind {
	case kindRotate:
		m := modules[d.rng.IntN(len(modules))]
		return d.tree.RotateModule(m.Name)

	case kindMove:
		if len(modules) < 2 {
			return nil
		}
		a := modules[d.rng.IntN(len(modules))]
		b := modules[d.rng.IntN(len(modules))]
		node, okA := d.tree.FindNode(a.Name)
		target, okB := d.tree.FindNode(b.Name)
		if okA && okB {
			// Moving a under itself or under one of its descendants would
			// create a cycle (MoveNode performs no cycle check, per
			// §4.4.3's caller contract), so skip this draw.
			for n := target; n != nil; n = n.Parent {
				if n == node {
					return nil
				}
			}
		}
		return d.tree.MoveNode(a.Name, b.Name, d.rng.IntN(2) == 0)

	case kindSwap:
		if len(modules) < 2 {
			return nil
		}
		a := modules[d.rng.IntN(len(modules))]
		b := modules[d.rng.IntN(len(modules))]
		return d.tree.SwapNodes(a.Name, b.Name)

	case kindChangeRep:
		if len(d.groups) == 0 {
			return nil
		}
		g := d.groups[d.rng.IntN(len(d.groups))]
		if len(g.Pairs) == 0 {
			return nil
		}
		p := g.Pairs[d.rng.IntN(len(g.Pairs))]
		return d.tree.ChangeRepresentative(g.Name, p.A)

	case kindConvertSymmetry:
		if len(d.groups) == 0 {
			return nil
		}
		g := d.groups[d.rng.IntN(len(d.groups))]
		return d.tree.ConvertSymmetryType(g.Name)
	}
	return nil
}

func (d *Driver) drawPerturbation() perturbationKind {
	r := d.rng.Float64()
	p := &d.cfg.Perturbations
	switch {
	case r < p.Rotate:
		return kindRotate
	case r < p.Rotate+p.Move:
		return kindMove
	case r < p.Rotate+p.Move+p.Swap:
		return kindSwap
	case r < p.Rotate+p.Move+p.Swap+p.ChangeRep:
		return kindChangeRep
	default:
		return kindConvertSymmetry
	}
}

// cost returns the blended area/wirelength cost, per §4.8.
func (d *Driver) cost() float64 {
	area := float64(d.tree.TotalArea())
	wl := d.wirelength()
	ratio := d.cfg.Cost.AreaRatio
	return ratio*area + (1-ratio)*wl
}

// wirelength estimates half-perimeter wirelength over each symmetry
// group's declared pairs — a simple proxy, not true netlist wirelength
// (a Non-goal per spec.md §1).
func (d *Driver) wirelength() float64 {
	total := 0.0
	for _, g := range d.groups {
		for _, p := range g.Pairs {
			a, okA := d.tree.Modules().Get(p.A)
			b, okB := d.tree.Modules().Get(p.B)
			if !okA || !okB {
				continue
			}
			total += halfPerimeter(a.X, a.Y, b.X, b.Y)
		}
	}
	return total
}

func halfPerimeter(ax, ay, bx, by int) float64 {
	dx := math.Abs(float64(ax - bx))
	dy := math.Abs(float64(ay - by))
	return dx + dy
}
