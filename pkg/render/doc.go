// Package render renders an HB*-tree two ways: its abstract topology as a
// Graphviz DOT graph, and its packed floorplan as SVG.
//
// # Tree topology
//
// [ToDOT] walks the tree's Module, Hierarchy, and Contour nodes and emits a
// DOT graph with "L"/"R" edge labels for the B*-tree left-child/right-child
// rule. [RenderSVG] hands that DOT to Graphviz and normalizes the resulting
// SVG's viewBox.
//
//	dot := render.ToDOT(tree)
//	svg, err := render.RenderSVG(dot)
//
// # Packed floorplan
//
// [RenderFloorplan] renders the packed module set directly as SVG: one
// rectangle and centered label per module, flipping the floorplan's
// bottom-left/Y-up coordinate convention into SVG's top-left/Y-down one.
//
//	svg := render.RenderFloorplan(tree.Modules())
package render
