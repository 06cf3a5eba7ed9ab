package render

import (
	"strings"
	"testing"

	"github.com/floorkit/hbstar/pkg/module"
)

func TestRenderFloorplan_ContainsOneRectPerModule(t *testing.T) {
	mods := module.NewSet()
	a := module.New("A", 4, 4)
	a.X, a.Y = 0, 0
	b := module.New("B", 3, 3)
	b.X, b.Y = 4, 0
	mods.Add(a)
	mods.Add(b)

	svg := string(RenderFloorplan(mods))
	if !strings.HasPrefix(svg, "<svg") {
		t.Fatalf("output doesn't start with <svg: %q", svg[:20])
	}
	if strings.Count(svg, "<rect id=") != 2 {
		t.Errorf("expected 2 module rects, got SVG: %s", svg)
	}
	if !strings.Contains(svg, ">A<") || !strings.Contains(svg, ">B<") {
		t.Errorf("missing module labels: %s", svg)
	}
}

func TestRenderFloorplan_EmptySet(t *testing.T) {
	mods := module.NewSet()
	svg := string(RenderFloorplan(mods))
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Errorf("empty-set SVG malformed: %s", svg)
	}
}
