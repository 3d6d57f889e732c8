package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/tracksim/internal/sim"
)

// WriteCSV writes one row per step: time followed by every column.
func WriteCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)

	header := append([]string{"time"}, result.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, t := range result.Times {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(t, 'f', 6, 64))
		for _, col := range result.Columns {
			v := math.NaN()
			if i < len(result.Series[col]) {
				v = result.Series[col][i]
			}
			row = append(row, strconv.FormatFloat(v, 'g', 10, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type ExportData struct {
	Name       string               `json:"name"`
	Integrator string               `json:"integrator"`
	Dt         float64              `json:"dt"`
	Duration   float64              `json:"duration"`
	Steps      int                  `json:"steps"`
	Times      []float64            `json:"times"`
	Series     map[string][]float64 `json:"series"`
	Metrics    map[string]float64   `json:"metrics"`
}

// WriteJSON writes a run's metadata and samples as a single JSON document.
// encoding/json rejects NaN, so a non-finite sample repeats the one before it.
func WriteJSON(w io.Writer, meta RunMetadata, series *Series) error {
	data := ExportData{
		Name:       meta.Name,
		Integrator: meta.Integrator,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		Steps:      len(series.Times),
		Times:      series.Times,
		Series:     make(map[string][]float64, len(series.Columns)),
		Metrics:    meta.Metrics,
	}
	for _, col := range series.Columns {
		data.Series[col] = holdFinite(series.Values[col])
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func holdFinite(in []float64) []float64 {
	out := make([]float64, len(in))
	last := 0.0
	for i, v := range in {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = last
		}
		out[i] = v
		last = v
	}
	return out
}
