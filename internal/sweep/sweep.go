// Package sweep locates the Shockley-Queisser limit by sweeping the
// detailed-balance solver over the spectrum's valid bandgap domain.
package sweep

import (
	"errors"
	"fmt"
	"sync/atomic"

	"sq-limit/internal/model"
	"sq-limit/internal/solver"
	"sq-limit/internal/spectrum"
)

// DefaultResolution is the number of bandgap samples in a sweep.
const DefaultResolution = 500

// Key identifies the parameters a cached sweep is valid for. The sweep curve
// depends on temperature and concentration only, never on the target bandgap.
type Key struct {
	Temperature   float64 // K
	Concentration float64 // suns
	Resolution    int
}

// Result is the efficiency-vs-bandgap curve plus the optimum sample.
// Bandgap ascends; Bandgap[i] pairs with Efficiency[i].
type Result struct {
	Bandgap    []float64 // eV
	Efficiency []float64 // %

	Best   Best
	Failed int // samples skipped due to solve errors
}

// Best is the sweep sample with maximum efficiency and its full J-V curve.
type Best struct {
	Bandgap float64 // eV
	JV      *model.JVCurve
}

// RunResult bundles a sweep with the evaluation of the caller's target
// junction under the same (clamped) parameters.
type RunResult struct {
	Params  model.RunParams // effective parameters after clamping
	Clamped []error         // InvalidParameterError per substituted input
	Sweep   *Result
	Target  *model.JVCurve
}

// Engine owns the loaded spectrum and the cached sweep. It is synchronous;
// one engine serves one in-flight computation, so no locking is done. A
// caller wanting responsiveness runs FindLimit on its own goroutine and polls
// Progress.
type Engine struct {
	curve *spectrum.Curve

	cached    *Result
	cachedKey Key

	done  atomic.Int64
	total atomic.Int64
}

// New returns an engine over a loaded, validated spectrum.
func New(curve *spectrum.Curve) *Engine {
	return &Engine{curve: curve}
}

// Curve returns the engine's spectrum.
func (e *Engine) Curve() *spectrum.Curve { return e.curve }

// Progress reports the current sweep position as (done, total) sample counts.
func (e *Engine) Progress() (done, total int64) {
	return e.done.Load(), e.total.Load()
}

// cacheValid reports whether the cached sweep can be reused for key.
func (e *Engine) cacheValid(key Key) bool {
	return e.cached != nil && e.cachedKey == key
}

// FindLimit sweeps resolution evenly spaced bandgaps across the spectrum's
// valid domain with no top-cell filtering and returns the efficiency curve
// and its maximum. Individual solve failures are recorded with zero
// efficiency and skipped; they never corrupt the running maximum. The result
// is cached and reused until temperature, concentration or resolution change.
func (e *Engine) FindLimit(temperature, concentration float64, resolution int) (*Result, error) {
	if resolution < 2 {
		resolution = DefaultResolution
	}
	key := Key{Temperature: temperature, Concentration: concentration, Resolution: resolution}
	if e.cacheValid(key) {
		return e.cached, nil
	}

	step := (e.curve.BandgapMax - e.curve.BandgapMin) / float64(resolution)
	res := &Result{
		Bandgap:    make([]float64, resolution),
		Efficiency: make([]float64, resolution),
	}

	e.done.Store(0)
	e.total.Store(int64(resolution))

	for i := 0; i < resolution; i++ {
		gap := e.curve.BandgapMin + float64(i)*step
		res.Bandgap[i] = gap

		jv, err := solver.Solve(e.curve, model.JunctionSpec{Bandgap: gap}, temperature, concentration)
		if err != nil {
			var se *solver.SolveError
			if !errors.As(err, &se) {
				return nil, err
			}
			res.Failed++
			e.done.Add(1)
			continue
		}

		res.Efficiency[i] = jv.Efficiency
		if res.Best.JV == nil || jv.Efficiency > res.Best.JV.Efficiency {
			res.Best = Best{Bandgap: gap, JV: jv}
		}
		e.done.Add(1)
	}

	if res.Best.JV == nil {
		return nil, fmt.Errorf("bandgap sweep: all %d samples failed to solve", resolution)
	}

	e.cached = res
	e.cachedKey = key
	return res, nil
}

// Run clamps params to their documented domains, computes (or reuses) the
// sweep, and evaluates the target junction under the same parameters.
func (e *Engine) Run(params model.RunParams) (*RunResult, error) {
	clamped := params.Clamp()

	sweepRes, err := e.FindLimit(params.Temperature, params.Concentration, params.Resolution)
	if err != nil {
		return nil, err
	}

	target, err := solver.Solve(e.curve, params.TargetSpec(), params.Temperature, params.Concentration)
	if err != nil {
		return nil, fmt.Errorf("target junction: %w", err)
	}

	return &RunResult{
		Params:  params,
		Clamped: clamped,
		Sweep:   sweepRes,
		Target:  target,
	}, nil
}
