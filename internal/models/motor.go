package models

import (
	"math"

	"github.com/san-kum/tracksim/internal/sim"
	"github.com/san-kum/tracksim/internal/tracked"
	"github.com/san-kum/tracksim/internal/units"
)

type MotorParams struct {
	Efficiency      float64     `yaml:"efficiency"`
	RegenEfficiency float64     `yaml:"regen_efficiency"`
	MaxPower        units.Power `yaml:"max_power_w"`
}

func DefaultMotorParams() MotorParams {
	return MotorParams{
		Efficiency:      0.92,
		RegenEfficiency: 0.7,
		MaxPower:        units.Kilowatts(150),
	}
}

// Motor turns the mechanical power demand into the electrical power drawn
// from (positive) or returned to (negative) the battery.
type Motor struct {
	name   string
	params MotorParams

	mech  *tracked.Cell[units.Power]
	elec  *tracked.Cell[units.Power]
	loss  *tracked.Cell[units.Power]
	cells *tracked.Group
}

func NewMotor(name string, params MotorParams) *Motor {
	m := &Motor{
		name:   name,
		params: params,
		mech:   tracked.NewStrict[units.Power]("mech_power"),
		elec:   tracked.NewStrict[units.Power]("elec_power"),
		loss:   tracked.NewStrict[units.Power]("loss"),
	}
	m.cells = tracked.NewGroup(name).Add(m.mech, m.elec, m.loss)
	return m
}

func (m *Motor) Name() string          { return m.name }
func (m *Motor) Cells() *tracked.Group { return m.cells }
func (m *Motor) Reset()                { m.cells.ResetAll() }
func (m *Motor) Check()                { m.cells.AssertAll() }

func (m *Motor) Update(env sim.Env) {
	limit := float64(m.params.MaxPower)
	mech := units.Power(math.Max(-limit, math.Min(limit, float64(env.Demand))))
	m.mech.Update(mech)

	elec, _ := tracked.Map(m.mech, func(p units.Power) units.Power {
		if p >= 0 {
			return p.Scale(1 / m.params.Efficiency)
		}
		return p.Scale(m.params.RegenEfficiency)
	})
	m.elec.Update(elec)
	m.loss.Update((elec - mech).Abs())
}

// ElectricalPower is this step's electrical power, if already computed.
func (m *Motor) ElectricalPower() (units.Power, bool) {
	return m.elec.Get()
}
