// Package module defines the placeable rectangle type shared by the
// ASF-B*-tree, the HB*-tree, and the output writer.
package module

import (
	"sort"

	"github.com/floorkit/hbstar/pkg/hberrors"
)

// Module is a rectangle with a mutable position, base dimensions, and a
// rotation flag. When Rotated is set, EffectiveWidth and EffectiveHeight
// swap Width and Height; Area is rotation-invariant by construction (§3).
type Module struct {
	Name    string
	Width   int
	Height  int
	Rotated bool
	X, Y    int
}

// New creates a Module with the given base dimensions, positioned at the
// origin and unrotated.
func New(name string, width, height int) *Module {
	return &Module{Name: name, Width: width, Height: height}
}

// EffectiveWidth returns Height if Rotated, else Width.
func (m *Module) EffectiveWidth() int {
	if m.Rotated {
		return m.Height
	}
	return m.Width
}

// EffectiveHeight returns Width if Rotated, else Height.
func (m *Module) EffectiveHeight() int {
	if m.Rotated {
		return m.Width
	}
	return m.Height
}

// Area returns Width*Height, which is invariant under rotation.
func (m *Module) Area() int {
	return m.Width * m.Height
}

// Rotate flips the rotation flag, swapping effective width and height.
func (m *Module) Rotate() {
	m.Rotated = !m.Rotated
}

// CenterX2 returns twice the module's horizontal center (2x + w), kept
// doubled so symmetry axis comparisons (§4.2, P4) stay exact on integer
// coordinates without resorting to floating point.
func (m *Module) CenterX2() int {
	return 2*m.X + m.EffectiveWidth()
}

// CenterY2 returns twice the module's vertical center (2y + h), doubled
// for the same reason as CenterX2.
func (m *Module) CenterY2() int {
	return 2*m.Y + m.EffectiveHeight()
}

// Clone returns an independent copy of m.
func (m *Module) Clone() *Module {
	c := *m
	return &c
}

// Set is a name-keyed registry of modules. Names are unique within a Set.
type Set struct {
	byName map[string]*Module
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{byName: make(map[string]*Module)}
}

// Add registers m. Returns an *hberrors.Error with ErrCodeInvalidInput if
// the name is empty or already registered.
func (s *Set) Add(m *Module) error {
	if m.Name == "" {
		return hberrors.New(hberrors.ErrCodeInvalidInput, "module name must not be empty")
	}
	if _, exists := s.byName[m.Name]; exists {
		return hberrors.New(hberrors.ErrCodeInvalidInput, "duplicate module name %q", m.Name)
	}
	s.byName[m.Name] = m
	return nil
}

// Get returns the module registered under name, if any.
func (s *Set) Get(name string) (*Module, bool) {
	m, ok := s.byName[name]
	return m, ok
}

// Len returns the number of registered modules.
func (s *Set) Len() int {
	return len(s.byName)
}

// All returns every module, sorted by name for deterministic iteration.
func (s *Set) All() []*Module {
	out := make([]*Module, 0, len(s.byName))
	for _, m := range s.byName {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Clone returns an independent deep copy of the set.
func (s *Set) Clone() *Set {
	c := NewSet()
	for name, m := range s.byName {
		c.byName[name] = m.Clone()
	}
	return c
}

// BoundingBoxArea returns max(x+w)*max(y+h) across all modules, or 0 if the
// set is empty. This is the §4.4.2 totalArea formula (also P3).
func BoundingBoxArea(mods []*Module) int {
	maxX, maxY := 0, 0
	for _, m := range mods {
		if r := m.X + m.EffectiveWidth(); r > maxX {
			maxX = r
		}
		if t := m.Y + m.EffectiveHeight(); t > maxY {
			maxY = t
		}
	}
	return maxX * maxY
}
