package optim

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/tracksim/internal/config"
	"github.com/san-kum/tracksim/internal/units"
)

// Params are the config knobs a sweep can vary.
var Params = map[string]func(cfg *config.Config, v float64){
	"demand_kw":           func(c *config.Config, v float64) { c.Profile.DemandKW = v },
	"ambient_c":           func(c *config.Config, v float64) { c.Profile.AmbientC = v },
	"efficiency":          func(c *config.Config, v float64) { c.Motor.Efficiency = v },
	"resistance_ohm":      func(c *config.Config, v float64) { c.Battery.Resistance = units.Ohms(v) },
	"cooling_kw":          func(c *config.Config, v float64) { c.Battery.CoolingPower = units.Kilowatts(v) },
	"cooling_threshold_c": func(c *config.Config, v float64) { c.Battery.CoolingThreshold = units.Celsius(v) },
	"kp":                  func(c *config.Config, v float64) { c.Cooling.Gains.Kp = v },
	"ki":                  func(c *config.Config, v float64) { c.Cooling.Gains.Ki = v },
	"kd":                  func(c *config.Config, v float64) { c.Cooling.Gains.Kd = v },
}

func ParamNames() []string {
	names := make([]string, 0, len(Params))
	for name := range Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply sets every parameter of p on cfg.
func Apply(cfg *config.Config, p Point) error {
	for name, v := range p {
		set, ok := Params[name]
		if !ok {
			return fmt.Errorf("optim: unknown parameter %s (available: %v)", name, ParamNames())
		}
		set(cfg, v)
	}
	return nil
}

// ParseParam reads "name=v1,v2,..." or "name=start:stop:n" (n evenly
// spaced values including both ends).
func ParseParam(s string) (string, []float64, error) {
	name, arg, ok := strings.Cut(s, "=")
	if !ok || name == "" || arg == "" {
		return "", nil, fmt.Errorf("optim: expected name=values, got %q", s)
	}
	if _, known := Params[name]; !known {
		return "", nil, fmt.Errorf("optim: unknown parameter %s (available: %v)", name, ParamNames())
	}

	if parts := strings.Split(arg, ":"); len(parts) == 3 {
		start, err1 := strconv.ParseFloat(parts[0], 64)
		stop, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || n < 1 {
			return "", nil, fmt.Errorf("optim: bad range %q", arg)
		}
		if n == 1 {
			return name, []float64{start}, nil
		}
		values := make([]float64, n)
		for i := range values {
			values[i] = start + (stop-start)*float64(i)/float64(n-1)
		}
		return name, values, nil
	}

	var values []float64
	for _, f := range strings.Split(arg, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("optim: bad value %q for %s", f, name)
		}
		values = append(values, v)
	}
	return name, values, nil
}
