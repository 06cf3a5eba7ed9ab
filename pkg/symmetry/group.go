// Package symmetry defines the declarative description of a symmetry
// group: the pairs and self-symmetric modules that must end up mirrored
// about a common axis once packed (§3 SymmetryGroup).
package symmetry

import (
	"github.com/floorkit/hbstar/pkg/hberrors"
)

// Axis names the orientation of a symmetry group's mirror line.
type Axis int

const (
	// Vertical is a vertical axis: pairs mirror left/right.
	Vertical Axis = iota
	// Horizontal is a horizontal axis: pairs mirror top/bottom.
	Horizontal
)

// String implements fmt.Stringer.
func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Pair is a mirror-symmetric pair of module names, a != b.
type Pair struct {
	A, B string
}

// Group is the declarative description of one symmetry group: its pairs,
// self-symmetric members, and axis orientation. The axis *position* is not
// stored here — it is determined by packing (§3).
//
// Invariant: a module name appears in at most one pair, and Pairs and
// SelfSymmetric are disjoint (enforced by Validate).
type Group struct {
	Name          string
	Axis          Axis
	Pairs         []Pair
	SelfSymmetric []string
}

// New creates an empty Group with the given axis.
func New(name string, axis Axis) *Group {
	return &Group{Name: name, Axis: axis}
}

// AddPair appends a mirror pair. Returns an error if a == b or either name
// is empty; cross-pair uniqueness is checked by Validate.
func (g *Group) AddPair(a, b string) error {
	if a == "" || b == "" {
		return hberrors.New(hberrors.ErrCodeInvalidInput, "pair members must not be empty")
	}
	if a == b {
		return hberrors.New(hberrors.ErrCodeInvalidInput, "pair members must differ, got %q twice", a)
	}
	g.Pairs = append(g.Pairs, Pair{A: a, B: b})
	return nil
}

// AddSelfSymmetric appends a module whose center must lie on the axis.
func (g *Group) AddSelfSymmetric(name string) error {
	if name == "" {
		return hberrors.New(hberrors.ErrCodeInvalidInput, "self-symmetric member must not be empty")
	}
	g.SelfSymmetric = append(g.SelfSymmetric, name)
	return nil
}

// Validate checks the group-local invariants: no module name appears in
// more than one pair, and Pairs/SelfSymmetric are disjoint.
func (g *Group) Validate() error {
	seen := make(map[string]bool, 2*len(g.Pairs)+len(g.SelfSymmetric))
	for _, p := range g.Pairs {
		for _, name := range [2]string{p.A, p.B} {
			if seen[name] {
				return hberrors.New(hberrors.ErrCodeInvalidInput, "module %q appears in more than one pair of group %q", name, g.Name)
			}
			seen[name] = true
		}
	}
	for _, name := range g.SelfSymmetric {
		if seen[name] {
			return hberrors.New(hberrors.ErrCodeInvalidInput, "module %q is both paired and self-symmetric in group %q", name, g.Name)
		}
		seen[name] = true
	}
	return nil
}

// Members returns every module name belonging to the group: both members
// of each pair, then each self-symmetric module, in declaration order.
func (g *Group) Members() []string {
	out := make([]string, 0, 2*len(g.Pairs)+len(g.SelfSymmetric))
	for _, p := range g.Pairs {
		out = append(out, p.A, p.B)
	}
	out = append(out, g.SelfSymmetric...)
	return out
}

// PartnerOf returns the other member of the pair containing name, if any.
func (g *Group) PartnerOf(name string) (string, bool) {
	for _, p := range g.Pairs {
		if p.A == name {
			return p.B, true
		}
		if p.B == name {
			return p.A, true
		}
	}
	return "", false
}

// IsSelfSymmetric reports whether name is declared self-symmetric in g.
func (g *Group) IsSelfSymmetric(name string) bool {
	for _, s := range g.SelfSymmetric {
		if s == name {
			return true
		}
	}
	return false
}

// Clone returns an independent deep copy of the group.
func (g *Group) Clone() *Group {
	c := &Group{
		Name:          g.Name,
		Axis:          g.Axis,
		Pairs:         make([]Pair, len(g.Pairs)),
		SelfSymmetric: make([]string, len(g.SelfSymmetric)),
	}
	copy(c.Pairs, g.Pairs)
	copy(c.SelfSymmetric, g.SelfSymmetric)
	return c
}
