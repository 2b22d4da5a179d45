// Package normalize divides measured AC energy by modeled expected DC energy,
// producing the dimensionless performance-ratio series consumed by
// degradation-rate estimators.
package normalize

import (
	"fmt"

	"pv_normalizer/internal/model"
	"pv_normalizer/internal/pvmodel"
	"pv_normalizer/internal/timeseries"
)

// WithPVWatts normalizes measured energy against PVWatts-modeled DC energy.
//
// The energy and irradiance series may have different granularities: modeled
// DC power is summed onto the energy series' reporting interval before
// division. The result carries exactly the energy series' index; timestamps
// with no modeled interval become NaN entries rather than errors.
func WithPVWatts(energy timeseries.Series, params pvmodel.PVWattsParams) (timeseries.Series, error) {
	freq, err := timeseries.ResolveFreq(energy)
	if err != nil {
		return timeseries.Series{}, fmt.Errorf("energy series: %w", err)
	}

	dcPower, err := pvmodel.DCPower(params)
	if err != nil {
		return timeseries.Series{}, fmt.Errorf("pvwatts dc power: %w", err)
	}

	dcEnergy := timeseries.ResampleSum(dcPower, freq)
	return timeseries.Divide(energy, dcEnergy), nil
}

// WithSAPM normalizes measured energy against DC energy from the Sandia Array
// Performance Model chain, driven by the injected modeling capability.
// Reconciliation and division behave exactly as in WithPVWatts.
func WithSAPM(energy timeseries.Series, sys pvmodel.System, frame model.MeteoFrame) (timeseries.Series, error) {
	freq, err := timeseries.ResolveFreq(energy)
	if err != nil {
		return timeseries.Series{}, fmt.Errorf("energy series: %w", err)
	}

	dcPower, err := pvmodel.SAPMDCPower(sys, frame)
	if err != nil {
		return timeseries.Series{}, fmt.Errorf("sapm dc power: %w", err)
	}

	dcEnergy := timeseries.ResampleSum(dcPower, freq)
	return timeseries.Divide(energy, dcEnergy), nil
}
