package sweep_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sq-limit/internal/model"
	"sq-limit/internal/spectrum"
	"sq-limit/internal/sweep"
)

func flatCurve(t *testing.T) *spectrum.Curve {
	t.Helper()
	var wl, ir []float64
	for w := 300.0; w <= 1000.0; w++ {
		wl = append(wl, w)
		ir = append(ir, 1.0)
	}
	c, err := spectrum.New(wl, ir)
	require.NoError(t, err)
	return c
}

// sunlikeCurve approximates the terrestrial solar spectrum with a diluted
// 5778 K blackbody over [280, 4000] nm; total power comes out near the solar
// constant (~1368 W/m2).
func sunlikeCurve(t *testing.T) *spectrum.Curve {
	t.Helper()
	const (
		h        = 6.626068e-34
		c0       = 2.99792458e8
		kB       = 1.380649e-23
		tSun     = 5778.0
		dilution = 2.1626e-5 // (solar radius / 1 AU)^2
	)
	var wl, ir []float64
	for w := 280.0; w <= 4000.0; w += 4.0 {
		lm := w * 1e-9
		x := h * c0 / (lm * kB * tSun)
		// Spectral emissive power per nm at the top of the atmosphere.
		e := 2 * math.Pi * h * c0 * c0 / math.Pow(lm, 5) / (math.Exp(x) - 1) * dilution * 1e-9
		wl = append(wl, w)
		ir = append(ir, e)
	}
	cv, err := spectrum.New(wl, ir)
	require.NoError(t, err)
	return cv
}

// ------------------------------------------------------------------------
// Sweep properties.
// ------------------------------------------------------------------------

func TestFindLimit_EfficiencyWithinBounds(t *testing.T) {
	e := sweep.New(flatCurve(t))
	res, err := e.FindLimit(300, 1, 200)
	require.NoError(t, err)

	require.Len(t, res.Bandgap, 200)
	require.Len(t, res.Efficiency, 200)
	for i, eff := range res.Efficiency {
		assert.GreaterOrEqual(t, eff, 0.0, "sample %d", i)
		assert.LessOrEqual(t, eff, 100.0, "sample %d", i)
	}
	for i := 1; i < len(res.Bandgap); i++ {
		assert.Greater(t, res.Bandgap[i], res.Bandgap[i-1])
	}
}

func TestFindLimit_SingleGlobalMaximum(t *testing.T) {
	e := sweep.New(sunlikeCurve(t))
	res, err := e.FindLimit(300, 1, sweep.DefaultResolution)
	require.NoError(t, err)

	maxEff := res.Best.JV.Efficiency
	dupes := 0
	for _, eff := range res.Efficiency {
		if eff == maxEff {
			dupes++
		}
	}
	assert.Equal(t, 1, dupes, "the global maximum must be unique")

	// Historically known optimum region for a realistic terrestrial spectrum.
	assert.Greater(t, res.Best.Bandgap, 1.0)
	assert.Less(t, res.Best.Bandgap, 1.5)
	assert.Greater(t, maxEff, 20.0)
	assert.Less(t, maxEff, 45.0)
}

func TestFindLimit_BestMatchesCurve(t *testing.T) {
	e := sweep.New(flatCurve(t))
	res, err := e.FindLimit(300, 1, 100)
	require.NoError(t, err)

	best := 0.0
	for _, eff := range res.Efficiency {
		if eff > best {
			best = eff
		}
	}
	assert.Equal(t, best, res.Best.JV.Efficiency)
	require.NotNil(t, res.Best.JV)
	assert.Equal(t, 501, res.Best.JV.Len())
	assert.Zero(t, res.Failed)
}

func TestFindLimit_ProgressCounter(t *testing.T) {
	e := sweep.New(flatCurve(t))
	_, err := e.FindLimit(300, 1, 100)
	require.NoError(t, err)
	done, total := e.Progress()
	assert.Equal(t, int64(100), done)
	assert.Equal(t, int64(100), total)
}

// coarseCurve uses 20 nm steps over [300, 2300] nm, so bandgaps near the top
// of the domain cut a window with fewer than two samples and fail to solve.
func coarseCurve(t *testing.T) *spectrum.Curve {
	t.Helper()
	var wl, ir []float64
	for w := 300.0; w <= 2300.0; w += 20.0 {
		wl = append(wl, w)
		ir = append(ir, 1.0)
	}
	c, err := spectrum.New(wl, ir)
	require.NoError(t, err)
	return c
}

func TestFindLimit_SkipsUnsolvableSamples(t *testing.T) {
	e := sweep.New(coarseCurve(t))
	res, err := e.FindLimit(300, 1, 200)
	require.NoError(t, err)

	assert.Greater(t, res.Failed, 0)
	assert.Less(t, res.Failed, 200)

	// Failed samples stay at zero efficiency; the highest bandgaps cannot
	// gather two window samples on a 20 nm grid.
	assert.Zero(t, res.Efficiency[len(res.Efficiency)-1])

	best := 0.0
	for _, eff := range res.Efficiency {
		if eff > best {
			best = eff
		}
	}
	assert.Greater(t, best, 0.0)
	assert.Equal(t, best, res.Best.JV.Efficiency)

	// Skipped samples still advance the progress counter.
	done, total := e.Progress()
	assert.Equal(t, int64(200), done)
	assert.Equal(t, int64(200), total)
}

// ------------------------------------------------------------------------
// Cache validity: reuse across target changes, invalidate on parameter change.
// ------------------------------------------------------------------------

func TestFindLimit_CacheReusedForSameParams(t *testing.T) {
	e := sweep.New(flatCurve(t))
	r1, err := e.FindLimit(300, 1, 100)
	require.NoError(t, err)
	r2, err := e.FindLimit(300, 1, 100)
	require.NoError(t, err)
	assert.Same(t, r1, r2)
}

func TestFindLimit_CacheInvalidatedOnParamChange(t *testing.T) {
	e := sweep.New(flatCurve(t))
	r1, err := e.FindLimit(300, 1, 100)
	require.NoError(t, err)

	r2, err := e.FindLimit(350, 1, 100)
	require.NoError(t, err)
	assert.NotSame(t, r1, r2)

	r3, err := e.FindLimit(350, 2, 100)
	require.NoError(t, err)
	assert.NotSame(t, r2, r3)
}

func TestRun_SweepReusedAcrossTargetChanges(t *testing.T) {
	e := sweep.New(flatCurve(t))

	p1 := model.DefaultRunParams()
	p1.TargetBandgap = 1.4
	run1, err := e.Run(p1)
	require.NoError(t, err)

	p2 := model.DefaultRunParams()
	p2.TargetBandgap = 1.6
	run2, err := e.Run(p2)
	require.NoError(t, err)

	// Only the target changed; the sweep must not be recomputed.
	assert.Same(t, run1.Sweep, run2.Sweep)
	assert.NotEqual(t, run1.Target.Jsc, run2.Target.Jsc)
}

func TestRun_HonorsConfiguredResolution(t *testing.T) {
	e := sweep.New(flatCurve(t))

	p := model.DefaultRunParams()
	p.TargetBandgap = 1.5
	p.Resolution = 50
	run, err := e.Run(p)
	require.NoError(t, err)

	require.Len(t, run.Sweep.Bandgap, 50)
	require.Len(t, run.Sweep.Efficiency, 50)

	// Unset resolution keeps the default sweep width.
	run, err = e.Run(model.RunParams{TargetBandgap: 1.5, Temperature: 300, Concentration: 1})
	require.NoError(t, err)
	require.Len(t, run.Sweep.Bandgap, sweep.DefaultResolution)
}

// ------------------------------------------------------------------------
// Clamping and defaults at the entry point.
// ------------------------------------------------------------------------

func TestRun_ClampsOutOfRangeParams(t *testing.T) {
	e := sweep.New(flatCurve(t))

	run, err := e.Run(model.RunParams{
		TargetBandgap: 1.4,
		Temperature:   9999, // out of [100, 700]
		Concentration: 1,
	})
	require.NoError(t, err)
	require.Len(t, run.Clamped, 1)

	var ipe *model.InvalidParameterError
	require.ErrorAs(t, run.Clamped[0], &ipe)
	assert.Equal(t, "temperature", ipe.Name)
	assert.Equal(t, model.DefaultTemperature, run.Params.Temperature)
}

func TestRun_ReportsTargetAndMax(t *testing.T) {
	e := sweep.New(flatCurve(t))
	run, err := e.Run(model.RunParams{TargetBandgap: 1.5, Temperature: 300, Concentration: 1})
	require.NoError(t, err)

	assert.Greater(t, run.Target.Efficiency, 0.0)
	assert.GreaterOrEqual(t, run.Sweep.Best.JV.Efficiency, run.Target.Efficiency*0.99)
}
