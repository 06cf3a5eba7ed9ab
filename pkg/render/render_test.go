package render

import (
	"strings"
	"testing"

	"github.com/floorkit/hbstar/pkg/hbtree"
	"github.com/floorkit/hbstar/pkg/module"
)

func TestToDOT_ContainsModuleAndEdges(t *testing.T) {
	mods := module.NewSet()
	a, b := module.New("A", 4, 4), module.New("B", 3, 3)
	mods.Add(a)
	mods.Add(b)

	tree, err := hbtree.New(mods, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tree.Pack(); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	dot := ToDOT(tree)
	if !strings.HasPrefix(dot, "digraph G {") {
		t.Fatalf("DOT doesn't start with digraph header: %q", dot[:40])
	}
	if !strings.Contains(dot, `label="A"`) || !strings.Contains(dot, `label="B"`) {
		t.Errorf("DOT missing module labels: %s", dot)
	}
	if !strings.Contains(dot, "->") {
		t.Errorf("DOT has no edges: %s", dot)
	}
}

func TestToDOT_EmptyTree(t *testing.T) {
	mods := module.NewSet()
	tree, err := hbtree.New(mods, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	dot := ToDOT(tree)
	if !strings.Contains(dot, "digraph G {") || !strings.Contains(dot, "}") {
		t.Errorf("empty-tree DOT malformed: %s", dot)
	}
}
