package handlers

import (
	"errors"
	"net/http"

	"sq-limit/internal/api/models"
	"sq-limit/internal/model"
	"sq-limit/internal/solver"
	"sq-limit/internal/stack"
	"sq-limit/internal/sweep"

	"github.com/gin-gonic/gin"
)

// StackHandler serves series multi-junction combinations.
type StackHandler struct {
	engine *sweep.Engine
}

func NewStackHandler(engine *sweep.Engine) *StackHandler {
	return &StackHandler{engine: engine}
}

// Combine handles POST /api/v1/stack.
func (h *StackHandler) Combine(c *gin.Context) {
	var req models.StackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	temperature := req.TemperatureK
	if temperature == 0 {
		temperature = model.DefaultTemperature
	}
	concentration := req.ConcentrationSuns
	if concentration == 0 {
		concentration = model.DefaultConcentration
	}

	res, err := stack.CombineSeries(h.engine.Curve(), req.BandgapsEV, temperature, concentration)
	if err != nil {
		status := http.StatusBadRequest
		code := "STACK_ERROR"
		var se *solver.SolveError
		if errors.As(err, &se) {
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

	resp := models.StackResponse{
		EfficiencyPc: res.Efficiency,
		Cells:        make([]models.JVSummary, len(res.Cells)),
	}
	for i, cell := range res.Cells {
		resp.Cells[i] = jvSummary(req.BandgapsEV[i], cell)
	}
	if req.IncludeCurve {
		resp.CombinedJV = &models.Curve{X: res.Voltage, Y: res.Current}
	}

	c.JSON(http.StatusOK, resp)
}
