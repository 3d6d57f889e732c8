package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

var ErrTooFewPoints = errors.New("report: need at least two finite points")

// SeriesSVG writes values against times as an SVG path. Non-finite samples
// break the line rather than being drawn.
func SeriesSVG(w io.Writer, times, values []float64, width, height int, stroke string) error {
	n := min(len(times), len(values))

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	finite := 0
	for i := 0; i < n; i++ {
		if !isFinite(times[i]) || !isFinite(values[i]) {
			continue
		}
		finite++
		minX, maxX = math.Min(minX, times[i]), math.Max(maxX, times[i])
		minY, maxY = math.Min(minY, values[i]), math.Max(maxY, values[i])
	}
	if finite < 2 {
		return ErrTooFewPoints
	}

	// pad the value axis only
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, stroke)

	pen, drawn := false, false
	for i := 0; i < n; i++ {
		if !isFinite(times[i]) || !isFinite(values[i]) {
			pen = false
			continue
		}
		x := (times[i] - minX) / rangeX * float64(width)
		y := float64(height) - (values[i]-minY)/rangeY*float64(height)

		if pen {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		} else {
			if drawn {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			pen, drawn = true, true
		}
	}

	sb.WriteString(`"/>
</svg>
`)
	_, err := io.WriteString(w, sb.String())
	return err
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
