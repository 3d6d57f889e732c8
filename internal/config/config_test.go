package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/tracksim/internal/control"
	"github.com/san-kum/tracksim/internal/profile"
	"github.com/san-kum/tracksim/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "rk4", cfg.Integrator)
	assert.Greater(t, cfg.Dt, 0.0)
	assert.Greater(t, cfg.Duration, 0.0)
	assert.NoError(t, cfg.Validate())
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")

	cfg := DefaultConfig()
	cfg.Name = "roundtrip"
	cfg.Dt = 0.5
	cfg.Battery.InitialSoC = 0.42
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"NaN dt", func(c *Config) { c.Dt = math.NaN() }},
		{"infinite dt", func(c *Config) { c.Dt = math.Inf(1) }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"NaN duration", func(c *Config) { c.Duration = math.NaN() }},
		{"infinite duration", func(c *Config) { c.Duration = math.Inf(1) }},
		{"unknown integrator", func(c *Config) { c.Integrator = "leapfrog" }},
		{"zero capacity", func(c *Config) { c.Battery.Capacity = 0 }},
		{"soc above one", func(c *Config) { c.Battery.InitialSoC = 1.5 }},
		{"zero efficiency", func(c *Config) { c.Motor.Efficiency = 0 }},
		{"unknown profile", func(c *Config) { c.Profile.Kind = "ramp" }},
		{"unknown cooling", func(c *Config) { c.Cooling.Mode = "fan" }},
		{"segments without any", func(c *Config) {
			c.Profile.Kind = "segments"
			c.Profile.Segments = nil
		}},
		{"segment without duration", func(c *Config) {
			c.Profile.Kind = "segments"
			c.Profile.Segments = []profile.Segment{{Name: "stop"}}
		}},
		{"sine without period", func(c *Config) {
			c.Profile.Kind = "sine"
			c.Profile.PeriodS = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}
}

func TestBuildProfile(t *testing.T) {
	cfg := DefaultConfig()
	p, err := cfg.BuildProfile()
	require.NoError(t, err)
	assert.Equal(t, units.Kilowatts(DefaultDemandKW), p.At(0).Demand)

	cfg.Profile = ProfileConfig{
		Kind:     "segments",
		Segments: []profile.Segment{{Duration: 5, DemandKW: 1}, {Duration: 5, DemandKW: 2}},
	}
	p, err = cfg.BuildProfile()
	require.NoError(t, err)
	assert.Equal(t, units.Kilowatts(2), p.At(units.Seconds(7)).Demand)

	cfg.Profile.Segments = nil
	_, err = cfg.BuildProfile()
	assert.ErrorIs(t, err, profile.ErrEmptyProfile)
}

func TestLoadNonFinite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dt: .nan\n"), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestBuildCooler(t *testing.T) {
	cfg := DefaultConfig()
	c, err := cfg.BuildCooler()
	require.NoError(t, err)
	assert.IsType(t, &control.Threshold{}, c)

	cfg.Cooling.Mode = control.ModePID
	c, err = cfg.BuildCooler()
	require.NoError(t, err)
	assert.IsType(t, &control.PID{}, c)
}

func TestSimConfig(t *testing.T) {
	cfg := DefaultConfig()
	sc := cfg.SimConfig()
	assert.Equal(t, units.Seconds(DefaultDt), sc.Dt)
	assert.Equal(t, units.Seconds(DefaultDuration), sc.Duration)
	assert.True(t, sc.ValidateState)
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	require.NotEmpty(t, names)

	for _, name := range names {
		cfg := GetPreset(name)
		require.NotNil(t, cfg, name)
		assert.Equal(t, name, cfg.Name)
		assert.NoError(t, cfg.Validate(), name)

		_, err := cfg.BuildProfile()
		assert.NoError(t, err, name)
	}

	assert.Nil(t, GetPreset("nonexistent"))
}

func TestGetPresetReturnsCopy(t *testing.T) {
	a := GetPreset("cruise")
	a.Dt = 99
	b := GetPreset("cruise")
	assert.Equal(t, DefaultDt, b.Dt)
}
