package tracked

import (
	"fmt"
	"io"
)

// Tracker is the value-type independent view of a Cell. It lets a component
// reset and verify cells of different physical types together.
type Tracker interface {
	Name() string
	Reset()
	Written() bool
	Value() (any, bool)
	AssertWritten()
	Check() error
	String() string
}

var _ Tracker = (*Cell[float64])(nil)

// Group is the set of cells one component must produce each cycle.
type Group struct {
	name  string
	cells []Tracker
	index map[string]struct{}
}

func NewGroup(name string) *Group {
	return &Group{name: name, index: make(map[string]struct{})}
}

func (g *Group) Name() string { return g.name }

// Add registers cells in order. Two cells with the same name would make
// diagnostics ambiguous, so a duplicate panics.
func (g *Group) Add(cells ...Tracker) *Group {
	for _, c := range cells {
		if _, dup := g.index[c.Name()]; dup {
			panic(fmt.Errorf("%w: %s.%s", ErrDuplicateCell, g.name, c.Name()))
		}
		g.index[c.Name()] = struct{}{}
		g.cells = append(g.cells, c)
	}
	return g
}

// Cells returns the registered cells in registration order.
func (g *Group) Cells() []Tracker {
	out := make([]Tracker, len(g.cells))
	copy(out, g.cells)
	return out
}

func (g *Group) ResetAll() {
	for _, c := range g.cells {
		c.Reset()
	}
}

// Missing lists the cells not written this cycle.
func (g *Group) Missing() []string {
	var names []string
	for _, c := range g.cells {
		if !c.Written() {
			names = append(names, c.Name())
		}
	}
	return names
}

// Check returns a MissingWriteError covering every unwritten cell.
func (g *Group) Check() error {
	missing := g.Missing()
	if len(missing) == 0 {
		return nil
	}
	return &MissingWriteError{Group: g.name, Cells: missing}
}

// AssertAll panics unless every cell was written this cycle.
func (g *Group) AssertAll() {
	if err := g.Check(); err != nil {
		panic(err)
	}
}

// Dump writes one line per cell with its value and write site.
func (g *Group) Dump(w io.Writer) error {
	for _, c := range g.cells {
		if _, err := fmt.Fprintf(w, "%s.%s\n", g.name, c.String()); err != nil {
			return err
		}
	}
	return nil
}
