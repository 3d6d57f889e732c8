package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a non-positive timestep or duration.
	ErrInvalidConfig = errors.New("sim: invalid config")

	// ErrNoComponents indicates a simulator with nothing to step.
	ErrNoComponents = errors.New("sim: no components")

	// ErrDuplicateComponent indicates two components sharing a name.
	ErrDuplicateComponent = errors.New("sim: duplicate component name")
)

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
