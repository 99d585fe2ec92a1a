// Package stack combines single-junction J-V characteristics into the
// series-connected multi-junction characteristic: voltages add per sample,
// current is limited by the weakest sub-cell.
package stack

import (
	"fmt"

	"sq-limit/internal/model"
	"sq-limit/internal/solver"
	"sq-limit/internal/spectrum"
)

// Result is the combined multi-junction characteristic.
// Units match model.JVCurve (V, A/m2); Efficiency is in percent.
type Result struct {
	Voltage []float64
	Current []float64

	Cells      []*model.JVCurve // per-junction curves, top to bottom
	Efficiency float64
}

// CombineSeries solves each junction with the spectrum slice its
// predecessors let through (cell i gets TopBandgap = bandgaps[i-1], the first
// cell gets 0) and combines them under series current continuity. bandgaps
// are ordered top to bottom and N >= 2 is required.
//
// When sub-curves have different lengths, the exhausted tail of a shorter
// curve is padded by holding its last sample. The reference procedures for
// two and three junctions disagreed here; pad-by-last-value is the
// standardized policy.
func CombineSeries(curve *spectrum.Curve, bandgaps []float64, temperature, concentration float64) (*Result, error) {
	if len(bandgaps) < 2 {
		return nil, fmt.Errorf("stack: need at least 2 junctions, got %d", len(bandgaps))
	}

	cells := make([]*model.JVCurve, len(bandgaps))
	top := 0.0
	for i, gap := range bandgaps {
		jv, err := solver.Solve(curve, model.JunctionSpec{Bandgap: gap, TopBandgap: top}, temperature, concentration)
		if err != nil {
			return nil, fmt.Errorf("stack cell %d: %w", i, err)
		}
		cells[i] = jv
		top = gap
	}

	n := 0
	for _, c := range cells {
		if c.Len() > n {
			n = c.Len()
		}
	}

	res := &Result{
		Voltage: make([]float64, n),
		Current: make([]float64, n),
		Cells:   cells,
	}

	minPower := 0.0
	for i := 0; i < n; i++ {
		var v, j float64
		for k, c := range cells {
			v += sampleAt(c.Voltage, i)
			jc := sampleAt(c.Current, i)
			// Currents are negative; the weakest cell (smallest magnitude,
			// closest to zero) limits the series current.
			if k == 0 || jc > j {
				j = jc
			}
		}
		res.Voltage[i] = v
		res.Current[i] = j
		if p := j * v; p < minPower {
			minPower = p
		}
	}
	res.Efficiency = -100.0 * minPower / (curve.Power * concentration)

	return res, nil
}

// sampleAt holds the last value once the curve is exhausted.
func sampleAt(a []float64, i int) float64 {
	if i < len(a) {
		return a[i]
	}
	return a[len(a)-1]
}
