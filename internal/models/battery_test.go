package models

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/tracksim/internal/control"
	"github.com/san-kum/tracksim/internal/integrators"
	"github.com/san-kum/tracksim/internal/sim"
	"github.com/san-kum/tracksim/internal/tracked"
	"github.com/san-kum/tracksim/internal/units"
)

func constantLoad(p units.Power) func() (units.Power, bool) {
	return func() (units.Power, bool) { return p, true }
}

func step(b *Battery, i int, dt units.Time, ambient units.Temperature) {
	b.Reset()
	b.Update(sim.Env{
		Inputs: sim.Inputs{Ambient: ambient},
		Step:   i,
		Time:   units.Time(float64(i) * float64(dt)),
		Dt:     dt,
	})
	b.Check()
}

func TestBatteryEnergyBookkeeping(t *testing.T) {
	params := DefaultBatteryParams()
	params.Capacity = units.KilowattHours(10)
	params.InitialSoC = 1.0

	b := NewBattery("battery", params, constantLoad(units.Kilowatts(10)), integrators.NewRK4())

	// 10 kW for 360 s is 1 kWh
	for i := 0; i < 360; i++ {
		step(b, i, units.Seconds(1), params.InitialTemp)
	}

	soc, ok := b.SoC()
	if !ok {
		t.Fatal("expected soc")
	}
	if math.Abs(soc-0.9) > 1e-9 {
		t.Errorf("expected soc 0.9, got %f", soc)
	}

	e, _ := b.energy.Get()
	if math.Abs(float64(e)-10000) > 1e-9 {
		t.Errorf("expected 10 kJ per step, got %v", e)
	}
}

func TestBatterySoCClamped(t *testing.T) {
	params := DefaultBatteryParams()
	params.Capacity = units.Joules(100)
	params.InitialSoC = 0.5

	b := NewBattery("battery", params, constantLoad(units.Watts(-1000)), integrators.NewEuler())
	step(b, 0, units.Seconds(1), params.InitialTemp)

	if soc, _ := b.SoC(); soc != 1 {
		t.Errorf("expected soc clamped to 1, got %f", soc)
	}
}

func TestBatteryJouleHeating(t *testing.T) {
	params := DefaultBatteryParams()
	b := NewBattery("battery", params, constantLoad(units.Kilowatts(40)), integrators.NewRK4())
	step(b, 0, units.Seconds(1), params.InitialTemp)

	// 40 kW at 400 V is 100 A; 100 A through 0.05 ohm is 500 W
	i, _ := b.current.Get()
	if math.Abs(float64(i)-100) > 1e-9 {
		t.Errorf("expected 100 A, got %v", i)
	}
	q, _ := b.heat.Get()
	if math.Abs(float64(q)-500) > 1e-9 {
		t.Errorf("expected 500 W, got %v", q)
	}

	temp, _ := b.Temperature()
	if temp <= params.InitialTemp {
		t.Errorf("expected pack to warm up, got %v", temp)
	}
}

func TestBatteryThermalEquilibrium(t *testing.T) {
	params := DefaultBatteryParams()
	params.HeatCapacity = units.JoulesPerKelvin(1000)
	params.CoolingThreshold = units.Celsius(1000)

	load := units.Kilowatts(40)
	b := NewBattery("battery", params, constantLoad(load), integrators.NewRK4())
	ambient := units.Celsius(20)

	// time constant C/G = 50 s, run for 20 of them
	for i := 0; i < 1000; i++ {
		step(b, i, units.Seconds(1), ambient)
	}

	want := b.dyn.Equilibrium(units.Watts(500), 0, ambient)
	got, _ := b.Temperature()
	if math.Abs(float64(got-want)) > 1e-3 {
		t.Errorf("expected equilibrium %v, got %v", want, got)
	}
}

func TestBatteryCooling(t *testing.T) {
	params := DefaultBatteryParams()
	params.InitialTemp = units.Celsius(40)

	b := NewBattery("battery", params, constantLoad(0), integrators.NewRK4())
	step(b, 0, units.Seconds(1), units.Celsius(40))

	cooling, _ := b.cooling.Get()
	if cooling != params.CoolingPower {
		t.Errorf("expected cooling on, got %v", cooling)
	}
	temp, _ := b.Temperature()
	if temp >= params.InitialTemp {
		t.Errorf("expected cooling to lower temperature, got %v", temp)
	}
}

func TestBatteryPIDCooling(t *testing.T) {
	params := DefaultBatteryParams()
	params.InitialTemp = units.Celsius(36)

	b := NewBattery("battery", params, constantLoad(0), integrators.NewRK4())
	b.SetCooler(control.NewPID(control.Gains{Kp: 400}, params.CoolingThreshold, params.CoolingPower))
	step(b, 0, units.Seconds(1), units.Celsius(36))

	// 1 K above target at 400 W/K
	cooling, _ := b.cooling.Get()
	if math.Abs(float64(cooling)-400) > 1e-6 {
		t.Errorf("expected 400 W of cooling, got %v", cooling)
	}
}

func TestBatteryMissingUpstream(t *testing.T) {
	noLoad := func() (units.Power, bool) { return 0, false }
	b := NewBattery("battery", DefaultBatteryParams(), noLoad, integrators.NewEuler())

	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, tracked.ErrMissingWrite) {
			t.Fatalf("expected missing write, got %v", err)
		}
		var mw *tracked.MissingWriteError
		errors.As(err, &mw)
		if mw.Group != "battery" || mw.Cells[0] != "power" {
			t.Errorf("unexpected report %v", mw)
		}
	}()

	step(b, 0, units.Seconds(1), units.Celsius(20))
}

func TestBatteryWithMotor(t *testing.T) {
	motor := NewMotor("motor", MotorParams{Efficiency: 0.5, RegenEfficiency: 0.5, MaxPower: units.Kilowatts(100)})
	b := NewBattery("battery", DefaultBatteryParams(), motor.ElectricalPower, integrators.NewRK4())

	env := sim.Env{Inputs: sim.Inputs{Demand: units.Kilowatts(5), Ambient: units.Celsius(20)}, Dt: 1}
	for _, c := range []sim.Component{motor, b} {
		c.Reset()
		c.Update(env)
		c.Check()
	}

	p, _ := b.power.Get()
	if p != units.Kilowatts(10) {
		t.Errorf("expected battery to see 10 kW, got %v", p)
	}
}

func TestThermalDynamics(t *testing.T) {
	d := &ThermalDynamics{HeatCapacity: 100, Conductance: 2}
	if d.StateDim() != 1 || d.ControlDim() != 3 {
		t.Error("unexpected dimensions")
	}

	dx := d.Derivative(sim.State{310}, sim.Control{50, 10, 300}, 0)
	// (50 - 10 - 2*10) / 100
	if math.Abs(dx[0]-0.2) > 1e-12 {
		t.Errorf("expected 0.2 K/s, got %f", dx[0])
	}
}
