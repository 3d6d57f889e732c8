package sim

import (
	"math"

	"github.com/san-kum/tracksim/internal/tracked"
	"github.com/san-kum/tracksim/internal/units"
)

// State is the continuous state a model hands to an integrator.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Control []float64

type Dynamics interface {
	Derivative(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Integrator interface {
	Step(dyn Dynamics, x State, u Control, t float64, dt float64) State
}

// Inputs are the external conditions a profile supplies for one step.
type Inputs struct {
	Demand  units.Power
	Ambient units.Temperature
}

type Profile interface {
	At(t units.Time) Inputs
}

// Env is everything a component sees during one step.
type Env struct {
	Inputs
	Step int
	Time units.Time
	Dt   units.Time
}

// Component owns a group of tracked cells and fills them once per step.
// Reset is called before Update and Check after it, every step.
type Component interface {
	Name() string
	Cells() *tracked.Group
	Reset()
	Update(env Env)
	Check()
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Snapshot)
}

// Config controls one run. Seed is recorded with the run and copied to its
// Result; no model draws random numbers.
type Config struct {
	Dt            units.Time
	Duration      units.Time
	Seed          int64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            units.Seconds(1),
		Duration:      units.Seconds(600),
		ValidateState: true,
	}
}

type Result struct {
	Seed       int64
	Columns    []string
	Times      []float64
	Series     map[string][]float64
	Metrics    map[string]float64
	StepsTaken int
}
