package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/tracksim/internal/sim"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	return sim.State{x[1], -x[0]}
}

func (s *simpleDynamics) StateDim() int   { return 2 }
func (s *simpleDynamics) ControlDim() int { return 0 }

// relax decays toward u[0] with unit time constant.
type relax struct{}

func (r *relax) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	return sim.State{u[0] - x[0]}
}

func (r *relax) StateDim() int   { return 1 }
func (r *relax) ControlDim() int { return 1 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x0 := sim.State{1.0, 0.0}
	u := sim.Control{}
	dt := 0.01
	steps := 100

	x := x0
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, u, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestIntegratorsConverge(t *testing.T) {
	tests := []struct {
		name string
		tol  float64
	}{
		{"euler", 1e-2},
		{"heun", 1e-4},
		{"rk4", 1e-8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integ, err := Get(tt.name)
			if err != nil {
				t.Fatal(err)
			}

			x := sim.State{0}
			u := sim.Control{1}
			dt := 0.01
			for i := 0; i < 100; i++ {
				x = integ.Step(&relax{}, x, u, float64(i)*dt, dt)
			}

			expected := 1 - math.Exp(-1)
			if math.Abs(x[0]-expected) > tt.tol {
				t.Errorf("got %.8f, expected %.8f", x[0], expected)
			}
		})
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}
	if got := List(); len(got) != 3 || got[0] != "euler" {
		t.Errorf("unexpected list %v", got)
	}
}

func TestRK4MatchesTaylorPolynomial(t *testing.T) {
	// for dx/dt = 1 - x from 0, one RK4 step is the fourth-order Taylor
	// expansion of 1 - exp(-dt)
	dt := 0.1
	x := NewRK4().Step(&relax{}, sim.State{0}, sim.Control{1}, 0, dt)

	want := 1 - (1 - dt + dt*dt/2 - dt*dt*dt/6 + dt*dt*dt*dt/24)
	if math.Abs(x[0]-want) > 1e-14 {
		t.Errorf("expected %.17f, got %.17f", want, x[0])
	}
}

func TestRK4ResizesBuffers(t *testing.T) {
	integ := NewRK4()
	integ.Step(&relax{}, sim.State{0}, sim.Control{1}, 0, 0.1)

	x0 := sim.State{1, 0}
	x := integ.Step(&simpleDynamics{}, x0, nil, 0, 0.01)
	if len(x) != 2 {
		t.Fatalf("expected 2 states, got %d", len(x))
	}
	if x0[0] != 1 || x0[1] != 0 {
		t.Errorf("input state modified: %v", x0)
	}
	if math.Abs(x[0]-math.Cos(0.01)) > 1e-10 || math.Abs(x[1]+math.Sin(0.01)) > 1e-10 {
		t.Errorf("unexpected step %v", x)
	}
}
