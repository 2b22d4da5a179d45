package model

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the normalization pipeline. Callers match them with
// errors.Is; they are always wrapped with context before being returned.
var (
	// ErrAmbiguousFrequency means an energy series has no explicit sampling
	// interval and none could be inferred from its timestamp spacing.
	ErrAmbiguousFrequency = errors.New("ambiguous sampling frequency")

	// ErrMissingColumn means a required meteorological column is absent.
	ErrMissingColumn = errors.New("missing meteorological column")

	// ErrMissingParameter means a required model parameter is absent or unusable.
	ErrMissingParameter = errors.New("missing model parameter")
)

// MeteoFrame is a time-indexed table of measured weather inputs for the SAPM
// chain. All column slices must be the same length as Index; a nil column
// means the measurement is missing.
type MeteoFrame struct {
	Index       []time.Time
	DNI         []float64 // direct normal irradiance [W/m²]
	GHI         []float64 // global horizontal irradiance [W/m²]
	DHI         []float64 // diffuse horizontal irradiance [W/m²]
	Temperature []float64 // ambient temperature [°C]
	WindSpeed   []float64 // wind speed [m/s]
}

// Validate checks that every required column is present and aligned to the
// index. The returned error wraps ErrMissingColumn for absent columns.
func (f *MeteoFrame) Validate() error {
	columns := []struct {
		name   string
		values []float64
	}{
		{"DNI", f.DNI},
		{"GHI", f.GHI},
		{"DHI", f.DHI},
		{"Temperature", f.Temperature},
		{"Wind Speed", f.WindSpeed},
	}

	for _, col := range columns {
		if col.values == nil {
			return fmt.Errorf("%s: %w", col.name, ErrMissingColumn)
		}
		if len(col.values) != len(f.Index) {
			return fmt.Errorf("column %s has %d values for %d timestamps", col.name, len(col.values), len(f.Index))
		}
	}
	return nil
}

// TimeRange is a closed interval of timestamps.
type TimeRange struct {
	Start time.Time
	End   time.Time
}
