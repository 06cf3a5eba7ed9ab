package writer

import (
	"strings"
	"testing"

	"github.com/floorkit/hbstar/pkg/module"
)

func TestWrite(t *testing.T) {
	set := module.NewSet()
	a := module.New("A", 10, 10)
	a.X, a.Y = 0, 0
	b := module.New("B", 10, 10)
	b.X, b.Y = 10, 0
	set.Add(a)
	set.Add(b)

	var buf strings.Builder
	if err := Write(&buf, set); err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := "A 0 0 10 10\nB 10 0 10 10\nAREA 200\n"
	if got := buf.String(); got != want {
		t.Errorf("Write() = %q, want %q", got, want)
	}
}
