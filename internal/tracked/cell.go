package tracked

import "fmt"

// Policy decides what a second Update within one cycle does.
type Policy int

const (
	// Strict cells panic with a DoubleWriteError on a second write.
	Strict Policy = iota + 1
	// Overwrite cells replace the value and refresh provenance.
	Overwrite
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Overwrite:
		return "overwrite"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Cell holds at most one value per cycle together with the site that wrote
// it. The zero value is not usable; construct cells with New, NewStrict or
// NewOverwrite.
type Cell[T any] struct {
	name    string
	policy  Policy
	value   T
	written bool
	prov    Provenance
}

// New creates an empty cell. The name shows up in every diagnostic the cell
// produces, so it should be non-empty.
func New[T any](name string, policy Policy) *Cell[T] {
	if policy != Strict && policy != Overwrite {
		panic(fmt.Sprintf("tracked: cell %q: invalid policy %v", name, policy))
	}
	return &Cell[T]{name: name, policy: policy}
}

// NewStrict creates a cell that may be written once per cycle.
func NewStrict[T any](name string) *Cell[T] {
	return New[T](name, Strict)
}

// NewOverwrite creates a cell that accepts repeated writes within a cycle.
func NewOverwrite[T any](name string) *Cell[T] {
	return New[T](name, Overwrite)
}

func (c *Cell[T]) Name() string   { return c.name }
func (c *Cell[T]) Policy() Policy { return c.policy }
func (c *Cell[T]) Written() bool  { return c.written }

// Update stores v and records the caller as its provenance.
func (c *Cell[T]) Update(v T) {
	site := callerAt(1)
	if c.written && c.policy == Strict {
		panic(&DoubleWriteError{Cell: c.name, Previous: c.prov, Current: site})
	}
	c.value = v
	c.written = true
	c.prov = site
}

// Reset clears the value and its provenance. It is safe on an empty cell.
func (c *Cell[T]) Reset() {
	var zero T
	c.value = zero
	c.written = false
	c.prov = Provenance{}
}

// Get returns the value written this cycle, if any.
func (c *Cell[T]) Get() (T, bool) {
	return c.value, c.written
}

// Value is Get with the value boxed, for code that handles cells of mixed
// types through Tracker.
func (c *Cell[T]) Value() (any, bool) {
	if !c.written {
		return nil, false
	}
	return c.value, true
}

// GetWithProvenance is Get plus the site of the last write.
func (c *Cell[T]) GetWithProvenance() (T, Provenance, bool) {
	return c.value, c.prov, c.written
}

// AssertWritten panics with a MissingWriteError naming the cell if nothing
// was written this cycle.
func (c *Cell[T]) AssertWritten() {
	if err := c.Check(); err != nil {
		panic(err)
	}
}

// Check is the non-fatal form of AssertWritten.
func (c *Cell[T]) Check() error {
	if c.written {
		return nil
	}
	return &MissingWriteError{Cells: []string{c.name}}
}

// MapMut replaces the value with f(value) and moves provenance to the
// caller. It does nothing on an empty cell. The policy does not apply: the
// cell already holds this cycle's value and f refines it.
func (c *Cell[T]) MapMut(f func(T) T) {
	if !c.written {
		return
	}
	c.value = f(c.value)
	c.prov = callerAt(1)
}

// String renders "name = value @ file:line", or "name = <unset>".
func (c *Cell[T]) String() string {
	if !c.written {
		return c.name + " = <unset>"
	}
	return fmt.Sprintf("%s = %v @ %s", c.name, c.value, c.prov)
}

// Map applies f to the current value without touching the cell.
func Map[T, R any](c *Cell[T], f func(T) R) (R, bool) {
	if !c.written {
		var zero R
		return zero, false
	}
	return f(c.value), true
}
