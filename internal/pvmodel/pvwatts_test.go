package pvmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv_normalizer/internal/model"
	"pv_normalizer/internal/timeseries"
)

var startTime = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func makeSeries(values []float64, interval time.Duration) timeseries.Series {
	times := make([]time.Time, len(values))
	for i := range values {
		times[i] = startTime.Add(time.Duration(i) * interval)
	}
	return timeseries.New(times, values)
}

func constSeries(v float64, n int, interval time.Duration) timeseries.Series {
	values := make([]float64, n)
	for i := range values {
		values[i] = v
	}
	return makeSeries(values, interval)
}

func TestDCPower_ReturnsNameplateAtSTC(t *testing.T) {
	params := NewPVWattsParams(constSeries(1000, 1, time.Hour), 300)

	dc, err := DCPower(params)
	require.NoError(t, err)
	assert.Equal(t, 300.0, dc.Values[0])
}

func TestDCPower_NameplateAtSTCWithTemperatureArgs(t *testing.T) {
	gamma := -0.004
	tCell := constSeries(25, 1, time.Hour)

	params := NewPVWattsParams(constSeries(1000, 1, time.Hour), 300)
	params.TCell = &tCell
	params.GammaPdc = &gamma

	dc, err := DCPower(params)
	require.NoError(t, err)
	assert.Equal(t, 300.0, dc.Values[0], "temperature factor is 1 at T_stc")
}

func TestDCPower_LinearInIrradiance(t *testing.T) {
	poa := makeSeries([]float64{0, 250, 500, 750, 1000}, time.Hour)
	scaled := makeSeries([]float64{0, 500, 1000, 1500, 2000}, time.Hour)

	base, err := DCPower(NewPVWattsParams(poa, 300))
	require.NoError(t, err)
	doubled, err := DCPower(NewPVWattsParams(scaled, 300))
	require.NoError(t, err)

	for i := range base.Values {
		assert.InDelta(t, 2*base.Values[i], doubled.Values[i], 1e-9)
	}
}

func TestDCPower_TemperatureCorrection(t *testing.T) {
	gamma := -0.004
	tCell := constSeries(35, 24, time.Hour)

	params := NewPVWattsParams(constSeries(1000, 24, time.Hour), 300)
	params.TCell = &tCell
	params.GammaPdc = &gamma

	dc, err := DCPower(params)
	require.NoError(t, err)
	// 1 + (-0.004)*(35-25) = 0.96
	for _, v := range dc.Values {
		assert.InDelta(t, 288.0, v, 1e-9)
	}
}

func TestDCPower_TemperatureCorrectionIsAllOrNothing(t *testing.T) {
	gamma := -0.004
	tCell := constSeries(35, 3, time.Hour)
	poa := makeSeries([]float64{200, 600, 1000}, time.Hour)

	base, err := DCPower(NewPVWattsParams(poa, 300))
	require.NoError(t, err)

	onlyTCell := NewPVWattsParams(poa, 300)
	onlyTCell.TCell = &tCell
	withTCell, err := DCPower(onlyTCell)
	require.NoError(t, err)
	assert.Equal(t, base.Values, withTCell.Values, "TCell alone must not change output")

	onlyGamma := NewPVWattsParams(poa, 300)
	onlyGamma.GammaPdc = &gamma
	withGamma, err := DCPower(onlyGamma)
	require.NoError(t, err)
	assert.Equal(t, base.Values, withGamma.Values, "GammaPdc alone must not change output")
}

func TestDCPower_NegativeIrradiancePassesThrough(t *testing.T) {
	dc, err := DCPower(NewPVWattsParams(makeSeries([]float64{-50}, time.Hour), 300))
	require.NoError(t, err)
	assert.Equal(t, -15.0, dc.Values[0], "no clamping of unphysical inputs")
}

func TestDCPower_NonPositiveReferenceIrradiance(t *testing.T) {
	params := NewPVWattsParams(constSeries(1000, 1, time.Hour), 300)
	params.GStc = 0

	_, err := DCPower(params)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrMissingParameter)
}

func TestDCPower_CellTemperatureLengthMismatch(t *testing.T) {
	gamma := -0.004
	tCell := constSeries(35, 2, time.Hour)

	params := NewPVWattsParams(constSeries(1000, 24, time.Hour), 300)
	params.TCell = &tCell
	params.GammaPdc = &gamma

	_, err := DCPower(params)
	require.Error(t, err)
}

func TestDCPower_PreservesIndexAndFreq(t *testing.T) {
	poa := constSeries(1000, 4, time.Hour).WithFreq(time.Hour)

	dc, err := DCPower(NewPVWattsParams(poa, 300))
	require.NoError(t, err)
	assert.Equal(t, poa.Times, dc.Times)
	assert.Equal(t, time.Hour, dc.Freq)
}
