package control

import (
	"fmt"
	"sort"

	"github.com/san-kum/tracksim/internal/units"
)

type Cooler interface {
	Cooling(temp units.Temperature, t units.Time) units.Power
	Reset()
}

const (
	ModeThreshold = "threshold"
	ModePID       = "pid"
)

// Gains are PID coefficients in watts per kelvin, watts per kelvin-second
// and watt-seconds per kelvin.
type Gains struct {
	Kp float64 `yaml:"kp"`
	Ki float64 `yaml:"ki"`
	Kd float64 `yaml:"kd"`
}

func DefaultGains() Gains {
	return Gains{Kp: 400, Ki: 2, Kd: 0}
}

// New builds a cooler by mode name. An empty mode selects threshold.
func New(mode string, target units.Temperature, limit units.Power, gains Gains) (Cooler, error) {
	if limit < 0 {
		return nil, fmt.Errorf("control: negative cooling power %v", limit)
	}
	switch mode {
	case "", ModeThreshold:
		return &Threshold{Limit: target, Power: limit}, nil
	case ModePID:
		return NewPID(gains, target, limit), nil
	default:
		return nil, fmt.Errorf("control: unknown cooling mode %q (available: %v)", mode, Modes())
	}
}

func Modes() []string {
	modes := []string{ModeThreshold, ModePID}
	sort.Strings(modes)
	return modes
}

// Threshold switches cooling fully on strictly above Limit.
type Threshold struct {
	Limit units.Temperature
	Power units.Power
}

func (c *Threshold) Cooling(temp units.Temperature, _ units.Time) units.Power {
	if temp > c.Limit {
		return c.Power
	}
	return 0
}

func (c *Threshold) Reset() {}
