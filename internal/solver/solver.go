// Package solver implements the detailed-balance (Shockley-Queisser) diode
// model for a single junction: short-circuit current from spectral
// integration, dark saturation current from blackbody emission above the
// bandgap, and the resulting J-V characteristic.
package solver

import (
	"fmt"
	"math"

	"sq-limit/internal/model"
	"sq-limit/internal/spectrum"
)

// Physical constants (SI unless noted).
const (
	ChargeQ = 1.602176e-19    // elementary charge, C
	PlanckH = 6.626068e-34    // Planck constant, J.s
	LightC  = 2.99792458e+8   // speed of light in vacuum, m/s
	HC      = 1.986445213e-25 // h*c, J.m

	// kT/q at 300 K, in eV.
	thermalVoltage300 = 0.02585202874091
)

// jvSamples is the fixed number of voltage samples from 0 to Voc.
const jvSamples = 501

// SolveError reports that a single bandgap evaluation is infeasible:
// bandgap outside the spectrum's domain, or a non-physical Jsc/J0 ratio.
// A sweep skips the sample; it is never fatal for the process.
type SolveError struct {
	Bandgap float64
	Reason  string
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("solve bandgap %.3f eV: %s", e.Bandgap, e.Reason)
}

// ThermalVoltage returns kT/q in eV for the given temperature in K.
func ThermalVoltage(temperature float64) float64 {
	return thermalVoltage300 * temperature / 300.0
}

// Solve computes the detailed-balance J-V characteristic of one junction.
// temperature is in K, concentration in suns (>= 1). When spec.TopBandgap
// exceeds spec.Bandgap, wavelengths already absorbed by the higher cell are
// excluded from the incident spectrum.
func Solve(curve *spectrum.Curve, spec model.JunctionSpec, temperature, concentration float64) (*model.JVCurve, error) {
	if spec.Bandgap < curve.BandgapMin || spec.Bandgap > curve.BandgapMax {
		return nil, &SolveError{Bandgap: spec.Bandgap, Reason: fmt.Sprintf("outside spectrum domain [%.3f, %.3f] eV", curve.BandgapMin, curve.BandgapMax)}
	}

	// Absorption window: everything above the bandgap is absorbed; everything
	// above the top cell's bandgap never arrives.
	lambdaHi := spectrum.NmEV / spec.Bandgap
	lambdaLo := 0.0
	if spec.Stacked() && spec.TopBandgap >= curve.BandgapMin && spec.TopBandgap <= curve.BandgapMax {
		lambdaLo = spectrum.NmEV / spec.TopBandgap
	}
	lo, hi := curve.Window(lambdaLo, lambdaHi)
	if hi-lo < 2 {
		return nil, &SolveError{Bandgap: spec.Bandgap, Reason: "no spectrum samples in absorption window"}
	}

	wl := curve.Wavelength[lo:hi]
	irr := curve.Irradiance[lo:hi]

	// Short-circuit current: q * integral of the photon flux over the window.
	flux := make([]float64, len(wl))
	for i := range wl {
		flux[i] = concentration * irr[i] * wl[i] * 1e-9 / HC
	}
	jsc := ChargeQ * trapezoid(wl, flux)

	// Dark saturation current: q * integral of the Planck photon emission rate
	// over the window's photon energies. Energies descend as wavelength
	// ascends; the negative emission samples cancel the reversed integration
	// direction, leaving J0 positive.
	kTeV := ThermalVoltage(temperature)
	kTJ := kTeV * ChargeQ
	energy := make([]float64, len(wl))
	planck := make([]float64, len(wl))
	for i := range wl {
		energy[i] = spectrum.NmEV / wl[i]
		eJ := energy[i] * ChargeQ
		planck[i] = -ChargeQ * (2.0 * math.Pi / (math.Pow(PlanckH, 3) * LightC * LightC)) * eJ * eJ / (math.Exp(eJ/kTJ) - 1.0)
	}
	j0 := ChargeQ * trapezoid(energy, planck)

	if jsc <= 0 || j0 <= 0 {
		return nil, &SolveError{Bandgap: spec.Bandgap, Reason: fmt.Sprintf("non-physical Jsc/J0 ratio (Jsc=%g, J0=%g)", jsc, j0)}
	}

	voc := kTeV * math.Log(jsc/j0+1.0)
	if math.IsInf(voc, 0) || math.IsNaN(voc) || voc <= 0 {
		return nil, &SolveError{Bandgap: spec.Bandgap, Reason: fmt.Sprintf("non-physical open-circuit voltage %g", voc)}
	}

	jv := &model.JVCurve{
		Voltage: make([]float64, jvSamples),
		Current: make([]float64, jvSamples),
		Jsc:     jsc,
		Voc:     voc,
	}

	pm := 0.0
	minPower := 0.0
	for i := 0; i < jvSamples; i++ {
		v := voc * float64(i) / float64(jvSamples-1)
		j := -jsc + j0*(math.Exp(v/kTeV)-1.0)
		jv.Voltage[i] = v
		jv.Current[i] = j
		if p := j * v; p < minPower {
			minPower = p
		}
		if j < 0 && math.Abs(j*v) > pm {
			pm = math.Abs(j * v)
			jv.Vm = v
			jv.Jm = j
		}
	}
	jv.FF = pm / (jsc * voc)
	jv.Efficiency = -100.0 * minPower / (curve.Power * concentration)

	return jv, nil
}

func trapezoid(x, y []float64) float64 {
	var sum float64
	for i := 1; i < len(x); i++ {
		sum += 0.5 * (y[i] + y[i-1]) * (x[i] - x[i-1])
	}
	return sum
}
