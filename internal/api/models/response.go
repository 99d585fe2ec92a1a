package models

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// JVSummary reports the derived scalars of one J-V characteristic.
type JVSummary struct {
	BandgapEV    float64 `json:"bandgap_ev"`
	EfficiencyPc float64 `json:"efficiency_pc"`
	JscAm2       float64 `json:"jsc_am2"`
	VocV         float64 `json:"voc_v"`
	FF           float64 `json:"ff"`
	VmV          float64 `json:"vm_v"`
	JmAm2        float64 `json:"jm_am2"`
}

// Curve is a pair of sample arrays (x[i], y[i]).
type Curve struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// LimitResponse is the result of a sweep + target evaluation.
type LimitResponse struct {
	Max    JVSummary `json:"max"`
	Target JVSummary `json:"target"`

	SweepFailedSamples int      `json:"sweep_failed_samples,omitempty"`
	Warnings           []string `json:"warnings,omitempty"`

	// Populated when include_curves is set.
	EfficiencyCurve *Curve `json:"efficiency_curve,omitempty"`
	MaxJV           *Curve `json:"max_jv,omitempty"`
	TargetJV        *Curve `json:"target_jv,omitempty"`
}

// StackResponse is the result of a series multi-junction combination.
type StackResponse struct {
	EfficiencyPc float64     `json:"efficiency_pc"`
	Cells        []JVSummary `json:"cells"`

	CombinedJV *Curve `json:"combined_jv,omitempty"`
}

// SpectrumResponse summarizes the loaded reference spectrum.
type SpectrumResponse struct {
	Samples      int     `json:"samples"`
	PowerWm2     float64 `json:"power_wm2"`
	BandgapMinEV float64 `json:"bandgap_min_ev"`
	BandgapMaxEV float64 `json:"bandgap_max_ev"`
	WavelengthLo float64 `json:"wavelength_lo_nm"`
	WavelengthHi float64 `json:"wavelength_hi_nm"`
}
