package stack

import (
	"errors"
	"fmt"

	"sq-limit/internal/solver"
	"sq-limit/internal/spectrum"
)

// Bandgap-pair scan bounds for the double-junction optimizer.
const (
	pairGapMin  = 0.25 // eV
	pairGapMax  = 3.20 // eV
	pairGapStep = 0.05 // eV
)

// PairOptimum is the best (top, bottom) bandgap pair found by OptimizePair.
type PairOptimum struct {
	Top        float64 // eV
	Bottom     float64 // eV
	Efficiency float64 // %
	Evaluated  int     // pairs that solved
	Skipped    int     // pairs skipped (outside domain or solve error)
}

// OptimizePair scans (top, bottom) bandgap pairs on a fixed 0.05 eV grid over
// [0.25, 3.20] eV, top > bottom, and returns the pair with the highest
// series-combined efficiency. Pairs that fail to solve (e.g. outside the
// spectrum domain) are skipped.
func OptimizePair(curve *spectrum.Curve, temperature, concentration float64) (*PairOptimum, error) {
	best := &PairOptimum{}
	for bottom := pairGapMin; bottom < pairGapMax; bottom += pairGapStep {
		for top := bottom + pairGapStep; top < pairGapMax; top += pairGapStep {
			res, err := CombineSeries(curve, []float64{top, bottom}, temperature, concentration)
			if err != nil {
				var se *solver.SolveError
				if errors.As(err, &se) {
					best.Skipped++
					continue
				}
				return nil, err
			}
			best.Evaluated++
			if res.Efficiency > best.Efficiency {
				best.Top = top
				best.Bottom = bottom
				best.Efficiency = res.Efficiency
			}
		}
	}
	if best.Evaluated == 0 {
		return nil, fmt.Errorf("pair optimization: no bandgap pair inside spectrum domain [%.3f, %.3f] eV", curve.BandgapMin, curve.BandgapMax)
	}

	return best, nil
}
