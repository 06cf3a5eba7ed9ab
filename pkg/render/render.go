// Package render exports an HB*-tree two ways: ToDOT walks the tree
// topology (modules, symmetry islands, generated contour nodes) into
// Graphviz DOT for structural debugging (§4.12), and RenderFloorplan draws
// the packed module rectangles directly as SVG.
//
// Grounded on the teacher's pkg/render/nodelink/dot.go (DOT generation and
// graphviz.Render plumbing) and pkg/render/tower/sink/svg.go (manual SVG
// buffer assembly with a normalized viewBox header).
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/floorkit/hbstar/pkg/hbtree"
)

// ToDOT converts an HB*-tree's topology to Graphviz DOT. Module nodes are
// plain white boxes, Hierarchy nodes (symmetry islands) are filled light
// blue and labeled with their group name, and generated Contour nodes are dashed
// grey to mark them as scaffold rather than placeable content.
func ToDOT(t *hbtree.Tree) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n\n")

	if root := t.Root(); root != nil {
		walkDOT(&buf, root, 0)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func walkDOT(buf *bytes.Buffer, n *hbtree.Node, id int) int {
	selfID := id
	writeDOTNode(buf, n, selfID)
	next := id + 1

	if n.Left != nil {
		childID := next
		next = walkDOT(buf, n.Left, next)
		fmt.Fprintf(buf, "  n%d -> n%d [label=\"L\"];\n", selfID, childID)
	}
	if n.Right != nil {
		childID := next
		next = walkDOT(buf, n.Right, next)
		fmt.Fprintf(buf, "  n%d -> n%d [label=\"R\"];\n", selfID, childID)
	}
	return next
}

func writeDOTNode(buf *bytes.Buffer, n *hbtree.Node, id int) {
	label, attrs := dotStyle(n)
	fmt.Fprintf(buf, "  n%d [label=%q%s];\n", id, label, attrs)
}

func dotStyle(n *hbtree.Node) (label string, attrs string) {
	switch n.Kind {
	case hbtree.KindHierarchy:
		return n.GroupName, ", fillcolor=lightblue"
	case hbtree.KindContour:
		return fmt.Sprintf("(%d,%d)-(%d,%d)", n.X1, n.Y1, n.X2, n.Y2),
			", style=\"rounded,filled,dashed\", fillcolor=lightgrey, fontcolor=gray30"
	default:
		return n.ModuleName, ""
	}
}

// RenderSVG renders a DOT topology diagram to SVG via Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
