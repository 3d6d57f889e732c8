package integrators

import "github.com/san-kum/tracksim/internal/sim"

// classic Butcher tableau: stage offsets and final weights
var (
	rk4Offsets = [4]float64{0, 0.5, 0.5, 1}
	rk4Weights = [4]float64{1.0 / 6, 2.0 / 6, 2.0 / 6, 1.0 / 6}
)

// RK4 is the classic fourth-order Runge-Kutta stepper. Stage buffers are
// kept between calls, so one instance must not be shared across goroutines.
type RK4 struct {
	stages [4]sim.State
	point  sim.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) resize(n int) {
	if len(r.point) == n {
		return
	}
	for i := range r.stages {
		r.stages[i] = make(sim.State, n)
	}
	r.point = make(sim.State, n)
}

func (r *RK4) Step(dyn sim.Dynamics, x sim.State, u sim.Control, t, dt float64) sim.State {
	r.resize(len(x))

	for s, c := range rk4Offsets {
		at := x
		if s > 0 {
			prev := r.stages[s-1]
			for i := range x {
				r.point[i] = x[i] + c*dt*prev[i]
			}
			at = r.point
		}
		copy(r.stages[s], dyn.Derivative(at, u, t+c*dt))
	}

	next := x.Clone()
	for s, w := range rk4Weights {
		for i := range next {
			next[i] += dt * w * r.stages[s][i]
		}
	}
	return next
}
