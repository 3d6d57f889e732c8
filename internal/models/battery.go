package models

import (
	"math"

	"github.com/san-kum/tracksim/internal/control"
	"github.com/san-kum/tracksim/internal/sim"
	"github.com/san-kum/tracksim/internal/tracked"
	"github.com/san-kum/tracksim/internal/units"
)

type BatteryParams struct {
	Capacity         units.Energy             `yaml:"capacity_j"`
	Voltage          units.Voltage            `yaml:"voltage_v"`
	Resistance       units.Resistance         `yaml:"resistance_ohm"`
	HeatCapacity     units.HeatCapacity       `yaml:"heat_capacity_j_per_k"`
	Conductance      units.ThermalConductance `yaml:"conductance_w_per_k"`
	CoolingPower     units.Power              `yaml:"cooling_power_w"`
	CoolingThreshold units.Temperature        `yaml:"cooling_threshold_k"`
	InitialSoC       float64                  `yaml:"initial_soc"`
	InitialTemp      units.Temperature        `yaml:"initial_temp_k"`
}

func DefaultBatteryParams() BatteryParams {
	return BatteryParams{
		Capacity:         units.KilowattHours(60),
		Voltage:          units.Volts(400),
		Resistance:       units.Ohms(0.05),
		HeatCapacity:     units.JoulesPerKelvin(3.0e5),
		Conductance:      units.WattsPerKelvin(20),
		CoolingPower:     units.Kilowatts(2),
		CoolingThreshold: units.Celsius(35),
		InitialSoC:       0.9,
		InitialTemp:      units.Celsius(25),
	}
}

// Battery integrates the energy drawn by its load and its pack temperature.
// Temperature is an overwrite cell: it is first set to the start-of-step
// value and then replaced by the integrated end-of-step value.
type Battery struct {
	name       string
	params     BatteryParams
	load       func() (units.Power, bool)
	integrator sim.Integrator
	cooler     control.Cooler
	dyn        *ThermalDynamics

	// carried between steps
	temp   units.Temperature
	stored units.Energy

	power       *tracked.Cell[units.Power]
	dt          *tracked.Cell[units.Time]
	energy      *tracked.Cell[units.Energy]
	current     *tracked.Cell[units.Current]
	heat        *tracked.Cell[units.Power]
	cooling     *tracked.Cell[units.Power]
	temperature *tracked.Cell[units.Temperature]
	soc         *tracked.Cell[float64]
	cells       *tracked.Group
}

func NewBattery(name string, params BatteryParams, load func() (units.Power, bool), integrator sim.Integrator) *Battery {
	b := &Battery{
		name:       name,
		params:     params,
		load:       load,
		integrator: integrator,
		cooler:     &control.Threshold{Limit: params.CoolingThreshold, Power: params.CoolingPower},
		dyn: &ThermalDynamics{
			HeatCapacity: params.HeatCapacity,
			Conductance:  params.Conductance,
		},
		power:       tracked.NewStrict[units.Power]("power"),
		dt:          tracked.NewStrict[units.Time]("dt"),
		energy:      tracked.NewStrict[units.Energy]("energy"),
		current:     tracked.NewStrict[units.Current]("current"),
		heat:        tracked.NewStrict[units.Power]("heat"),
		cooling:     tracked.NewStrict[units.Power]("cooling"),
		temperature: tracked.NewOverwrite[units.Temperature]("temperature"),
		soc:         tracked.NewStrict[float64]("soc"),
	}
	b.cells = tracked.NewGroup(name).Add(
		b.power, b.dt, b.energy, b.current, b.heat, b.cooling, b.temperature, b.soc,
	)
	b.Restart()
	return b
}

// Restart puts the carried state back to the initial conditions.
func (b *Battery) Restart() {
	b.temp = b.params.InitialTemp
	b.stored = units.Energy(b.params.InitialSoC * float64(b.params.Capacity))
	b.cooler.Reset()
	b.cells.ResetAll()
}

// SetCooler replaces the default threshold cooling.
func (b *Battery) SetCooler(c control.Cooler) {
	c.Reset()
	b.cooler = c
}

func (b *Battery) Name() string          { return b.name }
func (b *Battery) Cells() *tracked.Group { return b.cells }
func (b *Battery) Reset()                { b.cells.ResetAll() }
func (b *Battery) Check()                { b.cells.AssertAll() }

func (b *Battery) Update(env sim.Env) {
	p, ok := b.load()
	if !ok {
		// leave power unwritten; Check names it
		return
	}
	b.power.Update(p)
	b.dt.Update(env.Dt)

	energy, _ := tracked.Map(b.power, func(p units.Power) units.Energy { return p.Times(env.Dt) })
	b.energy.Update(energy)

	current := p.Over(b.params.Voltage)
	b.current.Update(current)
	b.heat.Update(b.params.Resistance.Dissipate(current))

	b.cooling.Update(b.cooler.Cooling(b.temp, env.Time))

	b.temperature.Update(b.temp)
	b.stepThermal(env)

	b.stored -= energy
	b.stored = units.Energy(math.Max(0, math.Min(float64(b.params.Capacity), float64(b.stored))))
	b.soc.Update(float64(b.stored) / float64(b.params.Capacity))
}

func (b *Battery) stepThermal(env sim.Env) {
	heat, _ := b.heat.Get()
	cooling, _ := b.cooling.Get()

	x := sim.State{float64(b.temp)}
	u := sim.Control{float64(heat), float64(cooling), float64(env.Ambient)}
	next := b.integrator.Step(b.dyn, x, u, float64(env.Time), float64(env.Dt))

	b.temp = units.Kelvin(next[0])
	b.temperature.Update(b.temp)
}

func (b *Battery) Temperature() (units.Temperature, bool) {
	return b.temperature.Get()
}

func (b *Battery) SoC() (float64, bool) {
	return b.soc.Get()
}
