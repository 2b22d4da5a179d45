// Package solar synthesizes clear-sky irradiance and weather traces. The
// normalization core never reads files, so demo commands and tests build
// their inputs here instead.
package solar

import (
	"math"
	"time"

	"pv_normalizer/internal/timeseries"
)

// Profile holds a normalized diurnal generation shape: HourlyFactor is the
// clear-sky irradiance fraction for each hour [0-23], peak hour = 1.0.
type Profile struct {
	HourlyFactor [24]float64
	PeakHour     int
}

// ClearSkyProfile returns a bell-shaped diurnal profile peaking at peakHour.
// width controls how many hours the shoulder spans; 3 is typical for a
// south-facing array at mid latitudes.
func ClearSkyProfile(peakHour int, width float64) Profile {
	p := Profile{PeakHour: peakHour}
	for h := 0; h < 24; h++ {
		dist := float64(h - peakHour)
		f := math.Exp(-dist * dist / (2 * width * width))
		if f < 0.01 {
			f = 0
		}
		p.HourlyFactor[h] = f
	}
	return p
}

// Oriented shifts and reshapes a profile for a different array orientation.
// East peaks mid-morning, south at noon, west mid-afternoon; the shift is
// (azimuthDeg - baseAzimuth) / 45 hours. Tilt away from the ~35° optimum
// narrows or broadens the curve and costs overall output.
func Oriented(base Profile, azimuthDeg, tiltDeg, baseAzimuth float64) Profile {
	shiftHours := (azimuthDeg - baseAzimuth) / 45.0

	widthFactor := 1.0
	if tiltDeg > 40 {
		widthFactor = 1.0 - (tiltDeg-40)/200.0
	} else if tiltDeg < 40 {
		widthFactor = 1.0 + (40-tiltDeg)/200.0
	}
	widthFactor = clamp(widthFactor, 0.5, 1.5)

	tiltEfficiency := math.Cos((tiltDeg - 35) * math.Pi / 180)
	if tiltEfficiency < 0.5 {
		tiltEfficiency = 0.5
	}

	var result Profile
	peakHour := float64(base.PeakHour)
	var maxFactor float64
	for h := 0; h < 24; h++ {
		srcHour := float64(h) - shiftHours
		adjusted := peakHour + (srcHour-peakHour)/widthFactor
		f := base.FactorAt(adjusted) * tiltEfficiency
		if f < 0 {
			f = 0
		}
		result.HourlyFactor[h] = f
		if f > maxFactor {
			maxFactor = f
			result.PeakHour = h
		}
	}

	// Re-normalize so peak = 1.0
	if maxFactor > 0 {
		for h := 0; h < 24; h++ {
			result.HourlyFactor[h] /= maxFactor
		}
	}
	return result
}

// FactorAt returns the linearly interpolated factor for a fractional hour.
func (p Profile) FactorAt(hour float64) float64 {
	for hour < 0 {
		hour += 24
	}
	for hour >= 24 {
		hour -= 24
	}
	lo := int(math.Floor(hour)) % 24
	hi := (lo + 1) % 24
	frac := hour - math.Floor(hour)
	return p.HourlyFactor[lo]*(1-frac) + p.HourlyFactor[hi]*frac
}

// IrradianceSeries generates plane-of-array irradiance [W/m²] for the given
// span: the profile's diurnal shape scaled to peakWm2 at the summer peak,
// modulated seasonally by day of year (northern-hemisphere convention,
// minimum around the winter solstice).
func IrradianceSeries(p Profile, start time.Time, days int, step time.Duration, peakWm2 float64) timeseries.Series {
	times, values := span(start, days, step, func(t time.Time) float64 {
		v := p.FactorAt(fractionalHour(t)) * seasonalFactor(t) * peakWm2
		if v < 0 {
			return 0
		}
		return v
	})
	return timeseries.Series{Times: times, Values: values, Freq: step}
}

// TemperatureSeries generates ambient temperature [°C] with a seasonal mean
// swing and a diurnal cycle peaking mid-afternoon.
func TemperatureSeries(start time.Time, days int, step time.Duration, annualMeanC, seasonalSwingC float64) timeseries.Series {
	times, values := span(start, days, step, func(t time.Time) float64 {
		seasonal := annualMeanC + seasonalSwingC*(seasonalFactor(t)*2-1)
		diurnal := 4 * math.Sin((fractionalHour(t)-9)*math.Pi/12)
		return seasonal + diurnal
	})
	return timeseries.Series{Times: times, Values: values, Freq: step}
}

// WindSeries generates wind speed [m/s]: a baseline with a mild afternoon
// pickup. Deterministic on purpose so fixtures stay reproducible.
func WindSeries(start time.Time, days int, step time.Duration, meanMS float64) timeseries.Series {
	times, values := span(start, days, step, func(t time.Time) float64 {
		v := meanMS * (1 + 0.3*math.Sin((fractionalHour(t)-12)*math.Pi/12))
		if v < 0 {
			return 0
		}
		return v
	})
	return timeseries.Series{Times: times, Values: values, Freq: step}
}

// CellTemperatureSeries derives synthetic cell temperature from ambient
// temperature and irradiance via the NOCT approximation:
// tCell = tAmb + (noctC-20)/800 * poa. Both inputs must share a cadence.
func CellTemperatureSeries(poa, ambient timeseries.Series, noctC float64) timeseries.Series {
	n := poa.Len()
	if ambient.Len() < n {
		n = ambient.Len()
	}
	times := make([]time.Time, n)
	values := make([]float64, n)
	copy(times, poa.Times[:n])
	for i := 0; i < n; i++ {
		values[i] = ambient.Values[i] + (noctC-20)/800*poa.Values[i]
	}
	return timeseries.Series{Times: times, Values: values, Freq: poa.Freq}
}

func span(start time.Time, days int, step time.Duration, f func(time.Time) float64) ([]time.Time, []float64) {
	n := int(time.Duration(days) * 24 * time.Hour / step)
	times := make([]time.Time, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		t := start.Add(time.Duration(i) * step)
		times[i] = t
		values[i] = f(t)
	}
	return times, values
}

func fractionalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

// seasonalFactor is ~1.0 near the summer solstice and ~0.35 near the winter
// solstice.
func seasonalFactor(t time.Time) float64 {
	day := float64(t.YearDay())
	return 0.675 + 0.325*math.Cos(2*math.Pi*(day-172)/365)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
