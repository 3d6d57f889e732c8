package tracked

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingWrite indicates a required cell was read or asserted before
	// it was written in the current cycle.
	ErrMissingWrite = errors.New("tracked: state variable was not updated")

	// ErrDoubleWrite indicates a strict cell was written twice in one cycle.
	ErrDoubleWrite = errors.New("tracked: state variable was already updated")

	// ErrDuplicateCell indicates two cells with the same name in one group.
	ErrDuplicateCell = errors.New("tracked: duplicate cell name")
)

// MissingWriteError names the cells that were not written this cycle.
type MissingWriteError struct {
	Group string
	Cells []string
}

func (e *MissingWriteError) Error() string {
	names := strings.Join(e.Cells, ", ")
	if e.Group != "" {
		return fmt.Sprintf("%s: %s: %s", ErrMissingWrite, e.Group, names)
	}
	return fmt.Sprintf("%s: %s", ErrMissingWrite, names)
}

func (e *MissingWriteError) Unwrap() error {
	return ErrMissingWrite
}

// DoubleWriteError is raised by a strict cell that already holds a value.
type DoubleWriteError struct {
	Cell     string
	Previous Provenance
	Current  Provenance
}

func (e *DoubleWriteError) Error() string {
	return fmt.Sprintf("%s: %s (first written at %s, again at %s)",
		ErrDoubleWrite, e.Cell, e.Previous, e.Current)
}

func (e *DoubleWriteError) Unwrap() error {
	return ErrDoubleWrite
}
