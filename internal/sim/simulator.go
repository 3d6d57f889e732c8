package sim

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/san-kum/tracksim/internal/units"
)

type Simulator struct {
	profile    Profile
	components []Component
	metrics    []Metric
	observers  []Observer
	logger     *log.Logger
}

func New(profile Profile, components ...Component) *Simulator {
	return &Simulator{
		profile:    profile,
		components: components,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		logger:     log.New(io.Discard, "", 0),
	}
}

func (s *Simulator) AddMetric(m Metric)       { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)   { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l *log.Logger)  { s.logger = l }
func (s *Simulator) Components() []Component  { return s.components }
func (s *Simulator) AddComponent(c Component) { s.components = append(s.components, c) }
func (s *Simulator) Metrics() []Metric        { return s.metrics }
func (s *Simulator) Profile() Profile         { return s.profile }

// Columns lists the snapshot keys in component then cell order.
func (s *Simulator) Columns() []string {
	cols := make([]string, 0)
	for _, c := range s.components {
		for _, cell := range c.Cells().Cells() {
			cols = append(cols, columnKey(c.Name(), cell))
		}
	}
	return cols
}

// Step runs one reset, update, check cycle over every component in
// registration order. A component that leaves a required cell unwritten
// panics out of Check; the panic is not recovered here.
func (s *Simulator) Step(env Env) Snapshot {
	snap := Snapshot{Step: env.Step, Time: env.Time + env.Dt, Values: make(map[string]float64)}

	for _, c := range s.components {
		c.Reset()
		c.Update(env)
		c.Check()

		for _, cell := range c.Cells().Cells() {
			v, ok := cell.Value()
			if !ok {
				continue
			}
			if f, ok := numeric(v); ok {
				snap.Values[columnKey(c.Name(), cell)] = f
			}
		}
	}

	return snap
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validate(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Floor(float64(cfg.Duration)/float64(cfg.Dt) + 1e-9))
	cols := s.Columns()
	result := &Result{
		Seed:    cfg.Seed,
		Columns: cols,
		Times:   make([]float64, 0, steps),
		Series:  make(map[string][]float64, len(cols)),
		Metrics: make(map[string]float64),
	}
	for _, col := range cols {
		result.Series[col] = make([]float64, 0, steps)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.logger.Printf("running %d components for %d steps (dt=%v)", len(s.components), steps, cfg.Dt)

	t := units.Seconds(0)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.collectMetrics(result)
			return result, ctx.Err()
		default:
		}

		env := Env{Inputs: s.profile.At(t), Step: i, Time: t, Dt: cfg.Dt}
		snap := s.Step(env)

		if cfg.ValidateState {
			if key, ok := firstInvalid(cols, snap); !ok {
				s.collectMetrics(result)
				return result, SimError{Time: float64(t), Step: i, Message: "non-finite value in " + key}
			}
		}

		for _, m := range s.metrics {
			m.Observe(snap)
		}
		for _, obs := range s.observers {
			obs.OnStep(snap)
		}

		result.Times = append(result.Times, float64(snap.Time))
		for _, col := range cols {
			v, ok := snap.Values[col]
			if !ok {
				v = math.NaN()
			}
			result.Series[col] = append(result.Series[col], v)
		}

		t = snap.Time
		result.StepsTaken++
	}

	s.collectMetrics(result)
	s.logger.Printf("finished %d steps at t=%v", result.StepsTaken, t)

	return result, nil
}

func firstInvalid(cols []string, snap Snapshot) (string, bool) {
	for _, col := range cols {
		if v, ok := snap.Values[col]; ok && (math.IsNaN(v) || math.IsInf(v, 0)) {
			return col, false
		}
	}
	return "", true
}

func (s *Simulator) collectMetrics(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validate(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(float64(cfg.Dt), 1) {
		return fmt.Errorf("%w: dt must be positive and finite, got %v", ErrInvalidConfig, cfg.Dt)
	}
	if !(cfg.Duration > 0) || math.IsInf(float64(cfg.Duration), 1) {
		return fmt.Errorf("%w: duration must be positive and finite, got %v", ErrInvalidConfig, cfg.Duration)
	}
	if len(s.components) == 0 {
		return ErrNoComponents
	}
	if s.profile == nil {
		return fmt.Errorf("%w: no input profile", ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(s.components))
	for _, c := range s.components {
		if _, dup := seen[c.Name()]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateComponent, c.Name())
		}
		seen[c.Name()] = struct{}{}
	}
	return nil
}
