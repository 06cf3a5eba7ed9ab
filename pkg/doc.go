// Package pkg provides the core libraries for hbstar, an analog-layout
// placement packer built on the HB*-tree representation.
//
// # Overview
//
// hbstar places analog-layout modules, with optional symmetry-island
// constraints, into a compact and legal floorplan. It represents the
// placement as an HB*-tree: a binary tree of module, hierarchy, and
// contour nodes whose depth-first (node, left, right) traversal and left/right child rule
// determine each module's packed (x, y) position. A simulated-annealing
// driver perturbs the tree (rotate, move, swap, change-representative,
// convert-symmetry-type) and accepts or rejects each move by a blended
// area/wirelength cost.
//
// The typical data flow:
//
//	module manifest (line-oriented text)
//	         ↓
//	    [parser] package (parse modules, symmetry groups)
//	         ↓
//	    [hbtree] package (build tree, pack to coordinates)
//	         ↓
//	    [anneal] package (simulated annealing over perturbations)
//	         ↓
//	    [writer]/[render] package (floorplan file, SVG, DOT)
//
// # Main Packages
//
// [module] - Module and Set types: name, dimensions, rotation, placed
// coordinates, and the bounding-box/overlap helpers the packer needs.
//
// [symmetry] - Symmetry group and pair types for symmetry islands
// (self-symmetric and pair-symmetric modules), and their legality checks.
//
// [hbtree] - The HB*-tree itself: Module/Hierarchy/Contour node kinds,
// the five structural perturbations, contour-based packing (Pack), and
// lookup by module name.
//
// [anneal] - The simulated annealing driver: cooling schedule, per-move
// Metropolis acceptance, and the blended area/wirelength cost function.
//
// [config] - SA driver tuning: temperatures, cooling rate, perturbation
// probabilities, and the area/wirelength cost ratio, loaded from TOML.
//
// [parser] - Module manifest parsing (module and symmetry-group syntax).
//
// [writer] - Packed-floorplan file output.
//
// [render] - DOT tree-topology export (via Graphviz) and hand-built SVG
// floorplan rendering.
//
// [store] - Run persistence: in-memory and MongoDB-backed Run records
// keyed by a per-run UUID and carrying the manifest digest.
//
// [cache] - Content-addressed caching of packed results, with a local
// file-backend and a Redis-backed remote backend.
//
// [api] - The HTTP job API: submit a manifest, poll for its result.
//
// [hberrors] - Structured, coded errors shared across every package.
//
// [observability] - Hook interfaces (annealing, cache, HTTP) so the TUI,
// logs, and metrics can observe a run without the core packages importing
// any observability framework.
//
// [timeout] - The watchdog used to bound an annealing run's wall-clock
// budget.
//
// [buildinfo] - ldflags-injected version/commit/date, surfaced by the CLI.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/hbtree/...              # Specific package
package pkg
