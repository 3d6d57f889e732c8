package control

import (
	"math"

	"github.com/san-kum/tracksim/internal/units"
)

// PID drives the pack toward Target. Output is clamped to [0, Max]; the
// integral only accumulates while the output is not saturated.
type PID struct {
	Gains
	Target units.Temperature
	Max    units.Power

	integral float64
	prevErr  float64
	prevT    units.Time
	first    bool
}

func NewPID(gains Gains, target units.Temperature, limit units.Power) *PID {
	return &PID{
		Gains:  gains,
		Target: target,
		Max:    limit,
		first:  true,
	}
}

func (p *PID) Cooling(temp units.Temperature, t units.Time) units.Power {
	// positive when the pack is too hot
	err := float64(temp.Sub(p.Target))

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return p.clamp(p.Kp * err)
	}

	dt := float64(t - p.prevT)
	if dt <= 0 {
		return p.clamp(p.Kp*err + p.Ki*p.integral)
	}

	derivative := (err - p.prevErr) / dt
	p.prevErr = err
	p.prevT = t

	integral := p.integral + err*dt
	u := p.Kp*err + p.Ki*integral + p.Kd*derivative
	if u > 0 && u < float64(p.Max) {
		p.integral = integral
	}
	return p.clamp(u)
}

func (p *PID) clamp(u float64) units.Power {
	return units.Watts(math.Max(0, math.Min(float64(p.Max), u)))
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.prevT = 0
	p.first = true
}
