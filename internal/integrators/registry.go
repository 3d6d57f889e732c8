package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/tracksim/internal/sim"
)

var registry = map[string]func() sim.Integrator{
	"euler": func() sim.Integrator { return NewEuler() },
	"heun":  func() sim.Integrator { return NewHeun() },
	"rk4":   func() sim.Integrator { return NewRK4() },
}

// Get builds a fresh integrator. Integrators keep scratch buffers, so every
// model gets its own instance.
func Get(name string) (sim.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, List())
	}
	return fn(), nil
}

func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
