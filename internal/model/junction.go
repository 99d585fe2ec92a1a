package model

// JunctionSpec selects the spectral slice a junction absorbs.
// Units:
// - Bandgap: eV
// - TopBandgap: eV; > Bandgap means a higher-bandgap cell above this one has
//   already absorbed the short-wavelength part of the spectrum, 0 means the
//   junction sees the full spectrum.
type JunctionSpec struct {
	Bandgap    float64
	TopBandgap float64
}

// Stacked reports whether the incident spectrum is pre-filtered by a cell
// above this junction.
func (s JunctionSpec) Stacked() bool {
	return s.TopBandgap > s.Bandgap
}
