package metrics

import (
	"math"

	"github.com/san-kum/tracksim/internal/sim"
)

// Peak tracks the largest value of one snapshot key.
type Peak struct {
	name    string
	key     string
	max     float64
	samples int
}

func NewPeak(name, key string) *Peak {
	return &Peak{name: name, key: key}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(s sim.Snapshot) {
	v, ok := s.Get(p.key)
	if !ok {
		return
	}
	if p.samples == 0 || v > p.max {
		p.max = v
	}
	p.samples++
}

func (p *Peak) Value() float64 {
	if p.samples == 0 {
		return math.NaN()
	}
	return p.max
}

func (p *Peak) Reset() {
	p.max = 0
	p.samples = 0
}

// Mean is the sample average of one snapshot key.
type Mean struct {
	name    string
	key     string
	sum     float64
	samples int
}

func NewMean(name, key string) *Mean {
	return &Mean{name: name, key: key}
}

func (m *Mean) Name() string { return m.name }

func (m *Mean) Observe(s sim.Snapshot) {
	v, ok := s.Get(m.key)
	if !ok {
		return
	}
	m.sum += v
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return math.NaN()
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}

// Throughput integrates the absolute value of a key over time, for example
// energy moved through a pack regardless of direction. Scale converts the
// result, e.g. 1/3.6e6 for watts to kWh.
type Throughput struct {
	name  string
	key   string
	scale float64
	total float64
	last  float64
}

func NewThroughput(name, key string, scale float64) *Throughput {
	return &Throughput{name: name, key: key, scale: scale}
}

func (t *Throughput) Name() string { return t.name }

func (t *Throughput) Observe(s sim.Snapshot) {
	now := float64(s.Time)
	dt := now - t.last
	t.last = now

	v, ok := s.Get(t.key)
	if !ok {
		return
	}
	t.total += math.Abs(v) * dt
}

func (t *Throughput) Value() float64 {
	return t.total * t.scale
}

func (t *Throughput) Reset() {
	t.total = 0
	t.last = 0
}

// Exceedance is the fraction of samples in which a key was above a limit.
type Exceedance struct {
	name       string
	key        string
	limit      float64
	violations int
	samples    int
}

func NewExceedance(name, key string, limit float64) *Exceedance {
	return &Exceedance{name: name, key: key, limit: limit}
}

func (e *Exceedance) Name() string { return e.name }

func (e *Exceedance) Observe(s sim.Snapshot) {
	v, ok := s.Get(e.key)
	if !ok {
		return
	}
	e.samples++
	if v > e.limit {
		e.violations++
	}
}

func (e *Exceedance) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.violations) / float64(e.samples)
}

func (e *Exceedance) Reset() {
	e.violations = 0
	e.samples = 0
}
