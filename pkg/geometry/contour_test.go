package geometry

import "testing"

func TestContour_EmptyIsZero(t *testing.T) {
	c := New()
	if h := c.GetHeight(0, 100); h != 0 {
		t.Errorf("GetHeight() on empty contour = %d, want 0", h)
	}
}

func TestContour_AddSegment_Basic(t *testing.T) {
	c := New()
	c.AddSegment(0, 10, 5)

	if h := c.GetHeight(0, 10); h != 5 {
		t.Errorf("GetHeight(0,10) = %d, want 5", h)
	}
	if h := c.GetHeight(10, 20); h != 0 {
		t.Errorf("GetHeight(10,20) = %d, want 0", h)
	}
	if h := c.GetHeight(5, 8); h != 5 {
		t.Errorf("GetHeight(5,8) = %d, want 5", h)
	}
}

func TestContour_AddSegment_Overlaps(t *testing.T) {
	c := New()
	c.AddSegment(0, 20, 5)
	c.AddSegment(5, 10, 8)

	cases := []struct{ start, end, want int }{
		{0, 5, 5},
		{5, 10, 8},
		{10, 20, 5},
		{0, 20, 8},
	}
	for _, tc := range cases {
		if h := c.GetHeight(tc.start, tc.end); h != tc.want {
			t.Errorf("GetHeight(%d,%d) = %d, want %d", tc.start, tc.end, h, tc.want)
		}
	}
}

func TestContour_AddSegment_ReplacesOverlap(t *testing.T) {
	// A later, lower segment replaces the overlapped region rather than
	// taking the pointwise max, per the §4.1 "replaces" semantics.
	c := New()
	c.AddSegment(0, 20, 10)
	c.AddSegment(5, 15, 3)

	if h := c.GetHeight(5, 15); h != 3 {
		t.Errorf("GetHeight(5,15) = %d, want 3", h)
	}
	if h := c.GetHeight(0, 5); h != 10 {
		t.Errorf("GetHeight(0,5) = %d, want 10", h)
	}
	if h := c.GetHeight(15, 20); h != 10 {
		t.Errorf("GetHeight(15,20) = %d, want 10", h)
	}
}

func TestContour_AddSegment_FusesEqualHeights(t *testing.T) {
	c := New()
	c.AddSegment(0, 10, 5)
	c.AddSegment(10, 20, 5)

	if got := len(c.Segments()); got != 1 {
		t.Errorf("Segments() length = %d, want 1 (fused)", got)
	}
}

func TestContour_AddSegment_Degenerate(t *testing.T) {
	c := New()
	c.AddSegment(10, 10, 5)
	c.AddSegment(10, 5, 5)

	if got := len(c.Segments()); got != 0 {
		t.Errorf("degenerate AddSegment should be a no-op, got %d segments", got)
	}
}

func TestContour_Clear(t *testing.T) {
	c := New()
	c.AddSegment(0, 10, 5)
	c.Clear()

	if got := len(c.Segments()); got != 0 {
		t.Errorf("Clear() left %d segments, want 0", got)
	}
	if h := c.GetHeight(0, 10); h != 0 {
		t.Errorf("GetHeight() after Clear() = %d, want 0", h)
	}
}

func TestContour_Merge(t *testing.T) {
	a := New()
	a.AddSegment(0, 10, 5)

	b := New()
	b.AddSegment(5, 15, 8)

	a.Merge(b)

	cases := []struct{ start, end, want int }{
		{0, 5, 5},
		{5, 10, 8},
		{10, 15, 8},
	}
	for _, tc := range cases {
		if h := a.GetHeight(tc.start, tc.end); h != tc.want {
			t.Errorf("GetHeight(%d,%d) = %d, want %d", tc.start, tc.end, h, tc.want)
		}
	}
}

func TestContour_PackScenario(t *testing.T) {
	// Two 10x10 modules placed side by side then stacked, mirroring the
	// pack() contour-update pattern in §4.4.2.
	c := New()
	c.AddSegment(0, 10, 10)
	c.AddSegment(10, 20, 10)

	for x := 0; x < 20; x++ {
		if h := c.GetHeight(x, x+1); h != 10 {
			t.Errorf("GetHeight(%d,%d) = %d, want 10", x, x+1, h)
		}
	}
	if h := c.GetHeight(20, 21); h != 0 {
		t.Errorf("GetHeight(20,21) = %d, want 0", h)
	}
}
