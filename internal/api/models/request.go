package models

// LimitRequest are the parameters for POST /api/v1/limit.
// Out-of-range values fall back to documented defaults; substitutions are
// reported in the response warnings.
type LimitRequest struct {
	TargetBandgapEV    float64 `json:"target_bandgap_ev"`
	TargetTopBandgapEV float64 `json:"target_top_bandgap_ev"`
	TemperatureK       float64 `json:"temperature_k"`
	ConcentrationSuns  float64 `json:"concentration_suns"`

	// Resolution is the number of sweep samples; 0 or 1 uses the default 500.
	Resolution int `json:"resolution"`

	// IncludeCurves adds the full sweep and J-V sample arrays to the response.
	IncludeCurves bool `json:"include_curves"`
}

// StackRequest are the parameters for POST /api/v1/stack.
type StackRequest struct {
	// BandgapsEV lists sub-cell bandgaps ordered top to bottom, N >= 2.
	BandgapsEV        []float64 `json:"bandgaps_ev"`
	TemperatureK      float64   `json:"temperature_k"`
	ConcentrationSuns float64   `json:"concentration_suns"`

	IncludeCurve bool `json:"include_curve"`
}
