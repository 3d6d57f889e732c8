package config

import (
	"sort"

	"github.com/san-kum/tracksim/internal/control"
	"github.com/san-kum/tracksim/internal/profile"
	"github.com/san-kum/tracksim/internal/units"
)

// Presets are complete configurations keyed by scenario name.
var Presets = map[string]func() *Config{
	"cruise": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "cruise"
		cfg.Profile.DemandKW = 18
		return cfg
	},
	"commute": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "commute"
		cfg.Duration = 3600
		cfg.Profile = ProfileConfig{
			Kind:     "segments",
			AmbientC: 20,
			Repeat:   true,
			Segments: []profile.Segment{
				{Name: "accelerate", Duration: 15, DemandKW: 60, AmbientC: 20},
				{Name: "cruise", Duration: 60, DemandKW: 15, AmbientC: 20},
				{Name: "brake", Duration: 10, DemandKW: -30, AmbientC: 20},
				{Name: "stop", Duration: 20, DemandKW: 0, AmbientC: 20},
			},
		}
		return cfg
	},
	"hot-climb": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "hot-climb"
		cfg.Duration = 2400
		cfg.Profile.DemandKW = 90
		cfg.Profile.AmbientC = 42
		cfg.Battery.InitialTemp = units.Celsius(38)
		cfg.Cooling.Mode = control.ModePID
		return cfg
	},
	"cold-start": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "cold-start"
		cfg.Profile.AmbientC = -15
		cfg.Battery.InitialTemp = units.Celsius(-10)
		cfg.Battery.InitialSoC = 0.5
		return cfg
	},
	"oscillating": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "oscillating"
		cfg.Integrator = "heun"
		cfg.Profile = ProfileConfig{
			Kind:        "sine",
			DemandKW:    25,
			AmplitudeKW: 40,
			PeriodS:     90,
			AmbientC:    25,
		}
		return cfg
	},
}

// GetPreset returns a fresh copy of a preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
