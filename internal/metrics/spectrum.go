package metrics

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/tracksim/internal/sim"
)

// DominantPeriod reports the period in seconds of the strongest oscillation
// in one snapshot key, or NaN when the series is too short or flat.
// Samples are assumed evenly spaced.
type DominantPeriod struct {
	name   string
	key    string
	first  float64
	last   float64
	values []float64
}

func NewDominantPeriod(name, key string) *DominantPeriod {
	return &DominantPeriod{name: name, key: key}
}

func (d *DominantPeriod) Name() string { return d.name }

func (d *DominantPeriod) Observe(s sim.Snapshot) {
	v, ok := s.Get(d.key)
	if !ok {
		return
	}
	if len(d.values) == 0 {
		d.first = float64(s.Time)
	}
	d.last = float64(s.Time)
	d.values = append(d.values, v)
}

func (d *DominantPeriod) Value() float64 {
	n := len(d.values)
	if n < 4 {
		return math.NaN()
	}

	mean := 0.0
	for _, v := range d.values {
		mean += v
	}
	mean /= float64(n)

	x := make([]float64, n)
	for i, v := range d.values {
		x[i] = v - mean
	}

	spectrum := fft.FFTReal(x)
	best, bestMag := 0, 0.0
	for k := 1; k <= n/2; k++ {
		if mag := cmplx.Abs(spectrum[k]); mag > bestMag {
			best, bestMag = k, mag
		}
	}
	if best == 0 || bestMag < 1e-9*float64(n) {
		return math.NaN()
	}

	dt := (d.last - d.first) / float64(n-1)
	return float64(n) * dt / float64(best)
}

func (d *DominantPeriod) Reset() {
	d.values = d.values[:0]
	d.first = 0
	d.last = 0
}
