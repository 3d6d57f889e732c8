package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/tracksim/internal/control"
	"github.com/san-kum/tracksim/internal/integrators"
	"github.com/san-kum/tracksim/internal/models"
	"github.com/san-kum/tracksim/internal/profile"
	"github.com/san-kum/tracksim/internal/sim"
	"github.com/san-kum/tracksim/internal/units"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt         = 1.0
	DefaultDuration   = 1800.0
	DefaultDemandKW   = 20.0
	DefaultAmbientC   = 25.0
	DefaultPeriodS    = 120.0
	DefaultIntegrator = "rk4"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Name       string               `yaml:"name"`
	Integrator string               `yaml:"integrator"`
	Dt         float64              `yaml:"dt"`
	Duration   float64              `yaml:"duration"`
	Seed       int64                `yaml:"seed"`
	Battery    models.BatteryParams `yaml:"battery"`
	Motor      models.MotorParams   `yaml:"motor"`
	Cooling    CoolingConfig        `yaml:"cooling"`
	Profile    ProfileConfig        `yaml:"profile"`
}

// ProfileConfig selects the input profile. Kind is one of constant, sine or
// segments; segments are either inline or loaded from Path.
type ProfileConfig struct {
	Kind        string            `yaml:"kind"`
	DemandKW    float64           `yaml:"demand_kw"`
	AmplitudeKW float64           `yaml:"amplitude_kw"`
	PeriodS     float64           `yaml:"period_s"`
	AmbientC    float64           `yaml:"ambient_c"`
	Path        string            `yaml:"path,omitempty"`
	Repeat      bool              `yaml:"repeat"`
	Segments    []profile.Segment `yaml:"segments,omitempty"`
}

// CoolingConfig selects the battery cooling strategy. The target and the
// maximum power come from the battery parameters.
type CoolingConfig struct {
	Mode  string        `yaml:"mode"`
	Gains control.Gains `yaml:"gains"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "default",
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Battery:    models.DefaultBatteryParams(),
		Motor:      models.DefaultMotorParams(),
		Cooling:    CoolingConfig{Mode: control.ModeThreshold, Gains: control.DefaultGains()},
		Profile: ProfileConfig{
			Kind:     "constant",
			DemandKW: DefaultDemandKW,
			AmbientC: DefaultAmbientC,
			PeriodS:  DefaultPeriodS,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !positiveFinite(c.Dt) {
		return fmt.Errorf("%w: dt must be positive and finite, got %f", ErrInvalid, c.Dt)
	}
	if !positiveFinite(c.Duration) {
		return fmt.Errorf("%w: duration must be positive and finite, got %f", ErrInvalid, c.Duration)
	}
	if _, err := integrators.Get(c.Integrator); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Battery.Capacity <= 0 || c.Battery.Voltage <= 0 || c.Battery.HeatCapacity <= 0 {
		return fmt.Errorf("%w: battery capacity, voltage and heat capacity must be positive", ErrInvalid)
	}
	if c.Battery.InitialSoC < 0 || c.Battery.InitialSoC > 1 {
		return fmt.Errorf("%w: initial soc must be in [0, 1], got %f", ErrInvalid, c.Battery.InitialSoC)
	}
	if c.Motor.Efficiency <= 0 || c.Motor.Efficiency > 1 {
		return fmt.Errorf("%w: motor efficiency must be in (0, 1], got %f", ErrInvalid, c.Motor.Efficiency)
	}
	if _, err := c.BuildCooler(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch c.Profile.Kind {
	case "constant":
	case "segments":
		if c.Profile.Path == "" {
			inline := profile.Segments{Segments: c.Profile.Segments}
			if err := inline.Validate(); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalid, err)
			}
		}
	case "sine":
		if c.Profile.PeriodS <= 0 {
			return fmt.Errorf("%w: sine period must be positive", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown profile kind %q", ErrInvalid, c.Profile.Kind)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:            units.Seconds(c.Dt),
		Duration:      units.Seconds(c.Duration),
		Seed:          c.Seed,
		ValidateState: true,
	}
}

func (c *Config) BuildCooler() (control.Cooler, error) {
	return control.New(c.Cooling.Mode, c.Battery.CoolingThreshold, c.Battery.CoolingPower, c.Cooling.Gains)
}

func (c *Config) BuildProfile() (sim.Profile, error) {
	p := c.Profile
	ambient := units.Celsius(p.AmbientC)

	switch p.Kind {
	case "constant":
		return profile.Constant{Inputs: sim.Inputs{Demand: units.Kilowatts(p.DemandKW), Ambient: ambient}}, nil
	case "sine":
		return profile.Sine{
			Mean:      units.Kilowatts(p.DemandKW),
			Amplitude: units.Kilowatts(p.AmplitudeKW),
			Period:    units.Seconds(p.PeriodS),
			Ambient:   ambient,
		}, nil
	case "segments":
		if p.Path != "" {
			seg, err := profile.Load(p.Path)
			if err != nil {
				return nil, err
			}
			return seg, nil
		}
		seg := &profile.Segments{Name: c.Name, Repeat: p.Repeat, Segments: p.Segments}
		if err := seg.Validate(); err != nil {
			return nil, err
		}
		return seg, nil
	default:
		return nil, fmt.Errorf("%w: unknown profile kind %q", ErrInvalid, p.Kind)
	}
}
