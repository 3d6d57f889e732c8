// Package profile supplies the external inputs of a simulation over time.
package profile

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/tracksim/internal/sim"
	"github.com/san-kum/tracksim/internal/units"
	"gopkg.in/yaml.v3"
)

var ErrEmptyProfile = errors.New("profile: no segments")

// Constant holds the same inputs for the whole run.
type Constant struct {
	Inputs sim.Inputs
}

func (c Constant) At(units.Time) sim.Inputs { return c.Inputs }

// Sine oscillates the demand around a mean; ambient stays fixed.
type Sine struct {
	Mean      units.Power
	Amplitude units.Power
	Period    units.Time
	Ambient   units.Temperature
}

func (s Sine) At(t units.Time) sim.Inputs {
	phase := 2 * math.Pi * float64(t) / float64(s.Period)
	return sim.Inputs{
		Demand:  s.Mean + s.Amplitude.Scale(math.Sin(phase)),
		Ambient: s.Ambient,
	}
}

// Segment holds its inputs for Duration.
type Segment struct {
	Name     string  `yaml:"name"`
	Duration float64 `yaml:"duration_s"`
	DemandKW float64 `yaml:"demand_kw"`
	AmbientC float64 `yaml:"ambient_c"`
}

func (s Segment) inputs() sim.Inputs {
	return sim.Inputs{Demand: units.Kilowatts(s.DemandKW), Ambient: units.Celsius(s.AmbientC)}
}

// Segments is a piecewise-constant drive cycle. After the last segment the
// cycle restarts when Repeat is set and otherwise holds the last segment.
type Segments struct {
	Name     string    `yaml:"name"`
	Repeat   bool      `yaml:"repeat"`
	Segments []Segment `yaml:"segments"`
}

func (p *Segments) Validate() error {
	if len(p.Segments) == 0 {
		return ErrEmptyProfile
	}
	for i, s := range p.Segments {
		if s.Duration <= 0 {
			return fmt.Errorf("profile: segment %d (%s): duration must be positive, got %f", i, s.Name, s.Duration)
		}
	}
	return nil
}

// Length is the duration of one pass through the cycle.
func (p *Segments) Length() units.Time {
	total := 0.0
	for _, s := range p.Segments {
		total += s.Duration
	}
	return units.Seconds(total)
}

func (p *Segments) At(t units.Time) sim.Inputs {
	if len(p.Segments) == 0 {
		return sim.Inputs{}
	}

	pos := float64(t)
	if total := float64(p.Length()); p.Repeat && total > 0 {
		pos = math.Mod(pos, total)
	}

	for _, s := range p.Segments {
		if pos < s.Duration {
			return s.inputs()
		}
		pos -= s.Duration
	}
	return p.Segments[len(p.Segments)-1].inputs()
}

// Load reads a Segments profile from a YAML file.
func Load(path string) (*Segments, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Segments, error) {
	var p Segments
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
