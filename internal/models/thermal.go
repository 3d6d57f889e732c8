package models

import (
	"github.com/san-kum/tracksim/internal/sim"
	"github.com/san-kum/tracksim/internal/units"
)

// ThermalDynamics is a lumped thermal mass exchanging heat with ambient.
//
//	C dT/dt = Q_gen - Q_cool - G (T - T_amb)
//
// State is [T] in kelvin, control is [Q_gen W, Q_cool W, T_amb K].
type ThermalDynamics struct {
	HeatCapacity units.HeatCapacity
	Conductance  units.ThermalConductance
}

func (d *ThermalDynamics) StateDim() int {
	return 1
}

func (d *ThermalDynamics) ControlDim() int {
	return 3
}

func (d *ThermalDynamics) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	temp := units.Kelvin(x[0])
	gen, cool, ambient := units.Watts(u[0]), units.Watts(u[1]), units.Kelvin(u[2])

	exchange := d.Conductance.Times(temp.Sub(ambient))
	net := gen - cool - exchange

	return sim.State{float64(net) / float64(d.HeatCapacity)}
}

// Equilibrium is the temperature at which a constant net heat input is
// balanced by exchange with ambient.
func (d *ThermalDynamics) Equilibrium(gen, cool units.Power, ambient units.Temperature) units.Temperature {
	return ambient.Add(units.TemperatureDelta(float64(gen-cool) / float64(d.Conductance)))
}
