package handlers

import (
	"errors"
	"net/http"

	"sq-limit/internal/api/models"
	"sq-limit/internal/model"
	"sq-limit/internal/solver"
	"sq-limit/internal/sweep"

	"github.com/gin-gonic/gin"
)

// LimitHandler serves sweep + target-bandgap evaluations.
type LimitHandler struct {
	engine *sweep.Engine
}

// NewLimitHandler wraps an engine whose spectrum is already loaded.
func NewLimitHandler(engine *sweep.Engine) *LimitHandler {
	return &LimitHandler{engine: engine}
}

// Run handles POST /api/v1/limit.
func (h *LimitHandler) Run(c *gin.Context) {
	var req models.LimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	params := model.RunParams{
		TargetBandgap:    req.TargetBandgapEV,
		TargetTopBandgap: req.TargetTopBandgapEV,
		Temperature:      req.TemperatureK,
		Concentration:    req.ConcentrationSuns,
		Resolution:       req.Resolution,
	}
	// Zero means unset; leave the defaults in place rather than clamp-warn.
	defaults := model.DefaultRunParams()
	if params.TargetBandgap == 0 {
		params.TargetBandgap = defaults.TargetBandgap
	}
	if params.Temperature == 0 {
		params.Temperature = defaults.Temperature
	}
	if params.Concentration == 0 {
		params.Concentration = defaults.Concentration
	}

	run, err := h.engine.Run(params)
	if err != nil {
		status := http.StatusInternalServerError
		code := "RUN_ERROR"
		var se *solver.SolveError
		if errors.As(err, &se) {
			status = http.StatusBadRequest
			code = "SOLVE_ERROR"
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: err.Error(),
			},
		})
		return
	}

	resp := models.LimitResponse{
		Max:                jvSummary(run.Sweep.Best.Bandgap, run.Sweep.Best.JV),
		Target:             jvSummary(run.Params.TargetBandgap, run.Target),
		SweepFailedSamples: run.Sweep.Failed,
	}
	for _, w := range run.Clamped {
		resp.Warnings = append(resp.Warnings, w.Error())
	}
	if req.IncludeCurves {
		resp.EfficiencyCurve = &models.Curve{X: run.Sweep.Bandgap, Y: run.Sweep.Efficiency}
		resp.MaxJV = &models.Curve{X: run.Sweep.Best.JV.Voltage, Y: run.Sweep.Best.JV.Current}
		resp.TargetJV = &models.Curve{X: run.Target.Voltage, Y: run.Target.Current}
	}

	c.JSON(http.StatusOK, resp)
}

func jvSummary(bandgap float64, jv *model.JVCurve) models.JVSummary {
	return models.JVSummary{
		BandgapEV:    bandgap,
		EfficiencyPc: jv.Efficiency,
		JscAm2:       jv.Jsc,
		VocV:         jv.Voc,
		FF:           jv.FF,
		VmV:          jv.Vm,
		JmAm2:        jv.Jm,
	}
}
