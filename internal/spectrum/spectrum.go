package spectrum

import (
	"fmt"
	"math"
)

// NmEV converts between wavelength (nm) and photon energy (eV):
// E = NmEV / lambda.
const NmEV = 1239.84207

// edgeMarginNm is trimmed from both ends of the wavelength table when deriving
// the usable bandgap domain, so later interpolation never lands on the very
// first or last sample.
const edgeMarginNm = 10.0

// Validation bounds for the input table.
const (
	minSamples    = 100
	wavelengthLo  = 200.0   // nm
	wavelengthHi  = 10000.0 // nm
	irradianceLo  = 0.0     // W/m2/nm
	irradianceHi  = 10.0    // W/m2/nm
	totalPowerLo  = 1.0     // W/m2
	totalPowerHi  = 10000.0 // W/m2
)

// FormatError reports a malformed or out-of-range spectrum table.
// It is fatal: no computation is possible without a valid spectrum.
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("spectrum: %s", e.Reason)
	}
	return fmt.Sprintf("spectrum %s: %s", e.Path, e.Reason)
}

// Curve is a validated reference solar spectrum.
// Units:
// - Wavelength: nm, strictly increasing
// - Irradiance: W/m2/nm
// - Power: W/m2, trapezoidal integral of irradiance over wavelength
// - BandgapMin/BandgapMax: eV, the usable bandgap domain
//
// A Curve is immutable after construction and safe to share across calls.
type Curve struct {
	Wavelength []float64
	Irradiance []float64

	Power      float64
	BandgapMin float64
	BandgapMax float64
}

// New validates the wavelength/irradiance table and derives the total power
// and the usable bandgap domain. All load paths funnel through here.
func New(wavelength, irradiance []float64) (*Curve, error) {
	if len(wavelength) != len(irradiance) {
		return nil, &FormatError{Reason: fmt.Sprintf("column length mismatch: %d wavelengths vs %d irradiances", len(wavelength), len(irradiance))}
	}
	if len(wavelength) < minSamples {
		return nil, &FormatError{Reason: fmt.Sprintf("need at least %d samples, got %d", minSamples, len(wavelength))}
	}
	for i, w := range wavelength {
		if w < wavelengthLo || w > wavelengthHi {
			return nil, &FormatError{Reason: fmt.Sprintf("wavelength %g nm at row %d outside [%g, %g]", w, i, wavelengthLo, wavelengthHi)}
		}
		if i > 0 && w <= wavelength[i-1] {
			return nil, &FormatError{Reason: fmt.Sprintf("wavelength not strictly increasing at row %d (%g after %g)", i, w, wavelength[i-1])}
		}
		if e := irradiance[i]; e < irradianceLo || e > irradianceHi || math.IsNaN(e) {
			return nil, &FormatError{Reason: fmt.Sprintf("irradiance %g at row %d outside [%g, %g]", e, i, irradianceLo, irradianceHi)}
		}
	}

	power := trapezoid(wavelength, irradiance)
	if power <= totalPowerLo || power >= totalPowerHi {
		return nil, &FormatError{Reason: fmt.Sprintf("total integrated power %.3f W/m2 outside (%g, %g)", power, totalPowerLo, totalPowerHi)}
	}

	// Own copies, so later caller mutations cannot break immutability.
	wl := make([]float64, len(wavelength))
	copy(wl, wavelength)
	ir := make([]float64, len(irradiance))
	copy(ir, irradiance)

	c := &Curve{
		Wavelength: wl,
		Irradiance: ir,
		Power:      power,
		BandgapMin: NmEV / (wl[len(wl)-1] - edgeMarginNm),
		BandgapMax: NmEV / (wl[0] + edgeMarginNm),
	}
	return c, nil
}

// Len returns the number of spectral samples.
func (c *Curve) Len() int { return len(c.Wavelength) }

// Window returns the index range [lo, hi) of samples whose wavelength lies in
// [lambdaLo, lambdaHi]. lambdaLo <= 0 means no lower cut.
func (c *Curve) Window(lambdaLo, lambdaHi float64) (lo, hi int) {
	lo = 0
	for lo < len(c.Wavelength) && c.Wavelength[lo] < lambdaLo {
		lo++
	}
	hi = lo
	for hi < len(c.Wavelength) && c.Wavelength[hi] <= lambdaHi {
		hi++
	}
	return lo, hi
}

func trapezoid(x, y []float64) float64 {
	var sum float64
	for i := 1; i < len(x); i++ {
		sum += 0.5 * (y[i] + y[i-1]) * (x[i] - x[i-1])
	}
	return sum
}
