package pvmodel

import (
	"fmt"
	"time"

	"pv_normalizer/internal/model"
	"pv_normalizer/internal/timeseries"
)

// AirmassKastenYoung1989 selects the Kasten–Young 1989 absolute air-mass
// formulation when calling System.AbsoluteAirmass.
const AirmassKastenYoung1989 = "kastenyoung1989"

// SolarPosition holds per-timestamp solar angles in degrees.
type SolarPosition struct {
	Zenith  []float64
	Azimuth []float64
}

// POAComponents holds transposed plane-of-array irradiance [W/m²].
type POAComponents struct {
	Direct  []float64
	Diffuse []float64
	Global  []float64
}

// System is the injected modeling capability backing the SAPM chain: array
// orientation, location and module/inverter constants live behind it. Any
// implementation satisfying these operations is acceptable; this package
// ships none of its own.
//
// Implementations report missing module or array metadata by wrapping
// model.ErrMissingParameter; such errors propagate out of SAPMDCPower
// unrecovered.
type System interface {
	// SolarPosition returns solar zenith and azimuth for each timestamp.
	SolarPosition(index []time.Time) (SolarPosition, error)
	// POAGlobal transposes irradiance components into the array plane.
	POAGlobal(pos SolarPosition, dni, ghi, dhi []float64) (POAComponents, error)
	// AOI returns the angle of incidence on the array, in degrees.
	AOI(pos SolarPosition) ([]float64, error)
	// AbsoluteAirmass returns pressure-corrected air mass for the named model.
	AbsoluteAirmass(pos SolarPosition, airmassModel string) ([]float64, error)
	// SAPMEffectivePOA combines transposed irradiance, air mass and angle of
	// incidence with the module's spectral and angular response, normalized
	// against referencePOA.
	SAPMEffectivePOA(direct, diffuse, airmassAbsolute, aoi []float64, referencePOA float64) ([]float64, error)
	// SAPMCellTemp applies the empirical Sandia thermal model.
	SAPMCellTemp(poaGlobal, windSpeed, ambientTemp []float64) ([]float64, error)
	// PVWattsDC evaluates the PVWatts-form DC equation with the module's
	// calibrated coefficients.
	PVWattsDC(effectivePOA, cellTemp []float64) ([]float64, error)
}

// SAPMDCPower runs the Sandia Array Performance Model chain over a
// meteorological frame and returns expected DC power indexed like the frame.
//
// The stage order is fixed: solar position, POA transposition, angle of
// incidence, absolute air mass, effective irradiance (reference 1), cell
// temperature, DC power. The first failing stage aborts the chain.
func SAPMDCPower(sys System, frame model.MeteoFrame) (timeseries.Series, error) {
	if err := frame.Validate(); err != nil {
		return timeseries.Series{}, err
	}

	pos, err := sys.SolarPosition(frame.Index)
	if err != nil {
		return timeseries.Series{}, fmt.Errorf("solar position: %w", err)
	}

	total, err := sys.POAGlobal(pos, frame.DNI, frame.GHI, frame.DHI)
	if err != nil {
		return timeseries.Series{}, fmt.Errorf("poa transposition: %w", err)
	}

	aoi, err := sys.AOI(pos)
	if err != nil {
		return timeseries.Series{}, fmt.Errorf("angle of incidence: %w", err)
	}

	airmassAbsolute, err := sys.AbsoluteAirmass(pos, AirmassKastenYoung1989)
	if err != nil {
		return timeseries.Series{}, fmt.Errorf("air mass: %w", err)
	}

	effectivePOA, err := sys.SAPMEffectivePOA(total.Direct, total.Diffuse, airmassAbsolute, aoi, 1)
	if err != nil {
		return timeseries.Series{}, fmt.Errorf("effective irradiance: %w", err)
	}

	cellTemp, err := sys.SAPMCellTemp(total.Global, frame.WindSpeed, frame.Temperature)
	if err != nil {
		return timeseries.Series{}, fmt.Errorf("cell temperature: %w", err)
	}

	dc, err := sys.PVWattsDC(effectivePOA, cellTemp)
	if err != nil {
		return timeseries.Series{}, fmt.Errorf("dc power: %w", err)
	}

	times := append([]time.Time(nil), frame.Index...)
	return timeseries.New(times, dc), nil
}
