package experiment

import (
	"context"
	"log"

	"github.com/san-kum/tracksim/internal/config"
	"github.com/san-kum/tracksim/internal/integrators"
	"github.com/san-kum/tracksim/internal/metrics"
	"github.com/san-kum/tracksim/internal/models"
	"github.com/san-kum/tracksim/internal/sim"
)

const joulesPerKWh = 3.6e6

// Experiment wires a motor and a battery into a simulator from a config.
type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
	motor     *models.Motor
	battery   *models.Battery
}

func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prof, err := cfg.BuildProfile()
	if err != nil {
		return nil, err
	}
	integ, err := integrators.Get(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	cooler, err := cfg.BuildCooler()
	if err != nil {
		return nil, err
	}

	motor := models.NewMotor("motor", cfg.Motor)
	battery := models.NewBattery("battery", cfg.Battery, motor.ElectricalPower, integ)
	battery.SetCooler(cooler)

	s := sim.New(prof, motor, battery)
	for _, m := range DefaultMetrics() {
		s.AddMetric(m)
	}

	return &Experiment{cfg: cfg, simulator: s, motor: motor, battery: battery}, nil
}

// DefaultMetrics summarises a battery run.
func DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewPeak("peak_temp_k", "battery.temperature"),
		metrics.NewMean("mean_temp_k", "battery.temperature"),
		metrics.NewPeak("peak_current_a", "battery.current"),
		metrics.NewThroughput("throughput_kwh", "battery.power", 1/joulesPerKWh),
		metrics.NewThroughput("motor_loss_kwh", "motor.loss", 1/joulesPerKWh),
		metrics.NewExceedance("cooling_duty", "battery.cooling", 0),
		metrics.NewDominantPeriod("power_period_s", "battery.power"),
	}
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.simulator.Run(ctx, e.cfg.SimConfig())
}

func (e *Experiment) SetLogger(l *log.Logger)   { e.simulator.SetLogger(l) }
func (e *Experiment) Config() *config.Config    { return e.cfg }
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }
func (e *Experiment) Battery() *models.Battery  { return e.battery }
func (e *Experiment) Motor() *models.Motor      { return e.motor }

// Components returns the components in step order.
func (e *Experiment) Components() []sim.Component {
	return e.simulator.Components()
}
