// Package report renders run summaries, cell dumps and plots for a terminal.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/tracksim/internal/tracked"
)

// Metrics renders name/value pairs sorted by name inside a titled panel.
func Metrics(title string, values map[string]float64) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(Title.Render(title))
	for _, name := range names {
		b.WriteString("\n")
		b.WriteString(MetricLabel.Render(name))
		b.WriteString(MetricValue.Render(fmt.Sprintf("%.4g", values[name])))
	}
	return Panel.Render(b.String())
}

// Cells renders every cell of every group with its value and write site.
// Unwritten cells are highlighted.
func Cells(groups ...*tracked.Group) string {
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Title.Render(g.Name()))
		for _, c := range g.Cells() {
			b.WriteString("\n  ")
			if c.Written() {
				b.WriteString(Written.Render(c.String()))
			} else {
				b.WriteString(Missing.Render(c.String()))
			}
		}
	}
	return Panel.Render(b.String())
}

// Plot draws one series with asciigraph. Non-finite samples are skipped.
func Plot(values []float64, caption string, width, height int) string {
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if isFinite(v) {
			data = append(data, v)
		}
	}
	if len(data) == 0 {
		return Subtle.Render(caption + ": no data")
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
