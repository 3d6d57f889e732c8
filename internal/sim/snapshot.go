package sim

import (
	"math"
	"reflect"

	"github.com/san-kum/tracksim/internal/tracked"
	"github.com/san-kum/tracksim/internal/units"
)

// Snapshot is the numeric view of every component's cells after a step.
// Keys are "component.cell".
type Snapshot struct {
	Step   int
	Time   units.Time
	Values map[string]float64
}

func (s Snapshot) Get(key string) (float64, bool) {
	v, ok := s.Values[key]
	return v, ok
}

func columnKey(component string, cell tracked.Tracker) string {
	return component + "." + cell.Name()
}

// numeric reports v as a float64 if its underlying kind is a number. Unit
// types are float64 underneath, so they all qualify.
func numeric(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	default:
		return math.NaN(), false
	}
}
