package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/tracksim/internal/experiment"
	"github.com/san-kum/tracksim/internal/sim"
)

var (
	ErrEmptyGrid     = errors.New("optim: empty grid")
	ErrUnknownMetric = errors.New("optim: unknown metric")
)

// Point is one combination of parameter values.
type Point map[string]float64

func (p Point) String() string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s=%g", k, p[k])
	}
	return strings.Join(parts, " ")
}

type Trial struct {
	Point   Point
	Metrics map[string]float64
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, ErrEmptyGrid
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("%w: no values for %s", ErrEmptyGrid, params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Points enumerates the grid with the last parameter varying fastest.
func (g *GridSearch) Points() []Point {
	var out []Point
	g.collect(0, Point{}, &out)
	return out
}

func (g *GridSearch) collect(depth int, current Point, out *[]Point) {
	if depth == len(g.paramNames) {
		p := make(Point, len(current))
		for k, v := range current {
			p[k] = v
		}
		*out = append(*out, p)
		return
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		g.collect(depth+1, current, out)
	}
	delete(current, name)
}

// Search builds one experiment per grid point, runs them concurrently and
// returns the trial that minimises metric along with every trial in grid
// order. Trials whose metric is NaN never win.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(Point) (*experiment.Experiment, error),
	metricName string,
) (Trial, []Trial, error) {
	points := g.Points()
	exps := make([]*experiment.Experiment, len(points))
	for i, p := range points {
		exp, err := buildExperiment(p)
		if err != nil {
			return Trial{}, nil, fmt.Errorf("optim: %s: %w", p, err)
		}
		exps[i] = exp
	}

	ensemble := sim.NewEnsemble(func(run int) (*sim.Simulator, error) {
		return exps[run].Simulator(), nil
	}, len(exps))

	results, err := ensemble.Run(ctx, exps[0].Config().SimConfig())
	if err != nil {
		return Trial{}, nil, err
	}

	trials := make([]Trial, len(points))
	best := -1
	bestVal := math.Inf(1)
	for i, r := range results {
		val, ok := r.Metrics[metricName]
		if !ok {
			return Trial{}, nil, fmt.Errorf("%w: %s", ErrUnknownMetric, metricName)
		}
		trials[i] = Trial{Point: points[i], Metrics: r.Metrics}
		if val < bestVal {
			best, bestVal = i, val
		}
	}

	if best < 0 {
		return Trial{}, trials, nil
	}
	return trials[best], trials, nil
}
