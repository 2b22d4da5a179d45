package pvmodel

import (
	"fmt"
	"time"

	"pv_normalizer/internal/model"
	"pv_normalizer/internal/timeseries"
)

// Standard test condition reference values.
const (
	DefaultGStc = 1000.0 // reference irradiance [W/m²]
	DefaultTStc = 25.0   // reference cell temperature [°C]
)

// PVWattsParams configures the PVWatts v5 module model.
//
// TCell and GammaPdc are both optional; the temperature correction is applied
// only when both are present. Supplying just one of them is silently ignored,
// which matches the all-or-nothing contract of the model.
type PVWattsParams struct {
	// POAGlobal is total effective plane-of-array irradiance [W/m²].
	POAGlobal timeseries.Series
	// PStc is module nameplate DC power at standard test conditions [W].
	PStc float64
	// GStc is the reference irradiance [W/m²]. Must be positive.
	GStc float64
	// TStc is the reference cell temperature [°C].
	TStc float64
	// TCell is measured or derived cell temperature [°C], sampled at the
	// same cadence as POAGlobal.
	TCell *timeseries.Series
	// GammaPdc is the linear efficiency temperature coefficient [1/°C].
	GammaPdc *float64
}

// NewPVWattsParams returns params with STC reference defaults filled in.
func NewPVWattsParams(poaGlobal timeseries.Series, pStc float64) PVWattsParams {
	return PVWattsParams{
		POAGlobal: poaGlobal,
		PStc:      pStc,
		GStc:      DefaultGStc,
		TStc:      DefaultTStc,
	}
}

// DCPower computes expected DC power via the PVWatts v5 equation:
//
//	dc = PStc * poa / GStc
//	dc *= 1 + GammaPdc*(TCell - TStc)   (only when both TCell and GammaPdc are set)
//
// Values are deliberately not clamped or range-checked: negative irradiance
// or an extreme temperature factor passes straight through to the output.
func DCPower(p PVWattsParams) (timeseries.Series, error) {
	if p.GStc <= 0 {
		return timeseries.Series{}, fmt.Errorf("reference irradiance %v W/m² is not positive: %w", p.GStc, model.ErrMissingParameter)
	}

	withTemp := p.TCell != nil && p.GammaPdc != nil
	if withTemp && p.TCell.Len() != p.POAGlobal.Len() {
		return timeseries.Series{}, fmt.Errorf("cell temperature has %d samples for %d irradiance samples", p.TCell.Len(), p.POAGlobal.Len())
	}

	values := make([]float64, p.POAGlobal.Len())
	for i, poa := range p.POAGlobal.Values {
		dc := p.PStc * poa / p.GStc
		if withTemp {
			dc *= 1 + *p.GammaPdc*(p.TCell.Values[i]-p.TStc)
		}
		values[i] = dc
	}

	times := append([]time.Time(nil), p.POAGlobal.Times...)
	return timeseries.Series{Times: times, Values: values, Freq: p.POAGlobal.Freq}, nil
}
