package report

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/tracksim/internal/tracked"
)

func TestMetrics(t *testing.T) {
	out := Metrics("summary", map[string]float64{"peak_temp_k": 310.5, "a": 1})

	for _, want := range []string{"summary", "peak_temp_k", "310.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCells(t *testing.T) {
	power := tracked.NewStrict[float64]("power")
	soc := tracked.NewStrict[float64]("soc")
	g := tracked.NewGroup("battery").Add(power, soc)
	power.Update(12)

	out := Cells(g)
	if !strings.Contains(out, "power = 12 @ report_test.go:") {
		t.Errorf("expected written cell with provenance:\n%s", out)
	}
	if !strings.Contains(out, "soc = <unset>") {
		t.Errorf("expected unset cell:\n%s", out)
	}
}

func TestPlot(t *testing.T) {
	out := Plot([]float64{1, 2, math.NaN(), 3, 2, 1}, "temperature", 40, 5)
	if !strings.Contains(out, "temperature") {
		t.Errorf("expected caption:\n%s", out)
	}

	empty := Plot([]float64{math.NaN()}, "soc", 40, 5)
	if !strings.Contains(empty, "no data") {
		t.Errorf("expected no data message, got %q", empty)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 4); got != "────" {
		t.Errorf("unexpected empty sparkline %q", got)
	}

	out := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	if !strings.Contains(out, "▁") || !strings.Contains(out, "█") {
		t.Errorf("expected full range of bars, got %q", out)
	}
}

func TestSeriesSVG(t *testing.T) {
	var sb strings.Builder
	err := SeriesSVG(&sb, []float64{0, 1, 2, 3}, []float64{1, math.NaN(), 2, 3}, 100, 50, "#00ff00")
	if err != nil {
		t.Fatal(err)
	}

	out := sb.String()
	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, `stroke="#00ff00"`) {
		t.Errorf("unexpected svg:\n%s", out)
	}
	// the NaN sample splits the path in two
	if got := strings.Count(out, "M"); got != 2 {
		t.Errorf("expected 2 subpaths, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, `d="M0.0,`) {
		t.Errorf("expected path to start at the left edge:\n%s", out)
	}
}

func TestSeriesSVGTooFewPoints(t *testing.T) {
	var sb strings.Builder
	err := SeriesSVG(&sb, []float64{0, 1}, []float64{1, math.Inf(1)}, 100, 50, "#fff")
	if err != ErrTooFewPoints {
		t.Errorf("expected ErrTooFewPoints, got %v", err)
	}
}
