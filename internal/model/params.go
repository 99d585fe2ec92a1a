package model

import "fmt"

// Documented parameter domains and their fallback defaults.
const (
	BandgapFloor = 0.2 // eV
	BandgapCeil  = 6.0 // eV

	TemperatureFloor = 100.0 // K
	TemperatureCeil  = 700.0 // K

	ConcentrationFloor = 1.0    // suns
	ConcentrationCeil  = 1000.0 // suns

	DefaultTargetBandgap = 1.1   // eV
	DefaultTemperature   = 300.0 // K
	DefaultConcentration = 1.0   // suns
)

// InvalidParameterError reports an out-of-domain input that was replaced by
// its documented default. It is non-fatal: the run proceeds with the default.
type InvalidParameterError struct {
	Name    string
	Value   float64
	Default float64
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("parameter %s=%g outside documented domain, using %g", e.Name, e.Value, e.Default)
}

// RunParams are the engine entry-point parameters.
// Units:
// - TargetBandgap: eV, [0.2, 6.0]
// - TargetTopBandgap: eV, 0 (no stacking) or > TargetBandgap
// - Temperature: K, [100, 700]
// - Concentration: suns, [1, 1000]
// - Resolution: sweep sample count; values below 2 use the engine default
type RunParams struct {
	TargetBandgap    float64
	TargetTopBandgap float64
	Temperature      float64
	Concentration    float64
	Resolution       int
}

// DefaultRunParams returns the documented defaults.
func DefaultRunParams() RunParams {
	return RunParams{
		TargetBandgap: DefaultTargetBandgap,
		Temperature:   DefaultTemperature,
		Concentration: DefaultConcentration,
	}
}

// TargetSpec returns the junction selected by the target parameters.
func (p RunParams) TargetSpec() JunctionSpec {
	return JunctionSpec{Bandgap: p.TargetBandgap, TopBandgap: p.TargetTopBandgap}
}

// Clamp replaces out-of-domain values with their defaults in place and
// returns one InvalidParameterError per substitution. Out-of-range inputs are
// recovered, not rejected; callers may surface the returned errors as
// warnings.
func (p *RunParams) Clamp() []error {
	var errs []error

	if p.TargetBandgap < BandgapFloor || p.TargetBandgap > BandgapCeil {
		errs = append(errs, &InvalidParameterError{Name: "target_bandgap", Value: p.TargetBandgap, Default: DefaultTargetBandgap})
		p.TargetBandgap = DefaultTargetBandgap
	}

	// The top bandgap is only meaningful when it exceeds the target bandgap;
	// anything else means "no stacking".
	if p.TargetTopBandgap != 0 &&
		(p.TargetTopBandgap < BandgapFloor || p.TargetTopBandgap > BandgapCeil || p.TargetTopBandgap <= p.TargetBandgap) {
		errs = append(errs, &InvalidParameterError{Name: "target_top_bandgap", Value: p.TargetTopBandgap, Default: 0})
		p.TargetTopBandgap = 0
	}

	if p.Temperature < TemperatureFloor || p.Temperature > TemperatureCeil {
		errs = append(errs, &InvalidParameterError{Name: "temperature", Value: p.Temperature, Default: DefaultTemperature})
		p.Temperature = DefaultTemperature
	}

	if p.Concentration < ConcentrationFloor || p.Concentration > ConcentrationCeil {
		errs = append(errs, &InvalidParameterError{Name: "concentration", Value: p.Concentration, Default: DefaultConcentration})
		p.Concentration = DefaultConcentration
	}

	return errs
}
