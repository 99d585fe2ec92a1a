package handlers

import (
	"net/http"

	"sq-limit/internal/api/models"
	"sq-limit/internal/spectrum"

	"github.com/gin-gonic/gin"
)

// SpectrumHandler reports the loaded reference spectrum.
type SpectrumHandler struct {
	curve *spectrum.Curve
}

func NewSpectrumHandler(curve *spectrum.Curve) *SpectrumHandler {
	return &SpectrumHandler{curve: curve}
}

// Get handles GET /api/v1/spectrum.
func (h *SpectrumHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, models.SpectrumResponse{
		Samples:      h.curve.Len(),
		PowerWm2:     h.curve.Power,
		BandgapMinEV: h.curve.BandgapMin,
		BandgapMaxEV: h.curve.BandgapMax,
		WavelengthLo: h.curve.Wavelength[0],
		WavelengthHi: h.curve.Wavelength[h.curve.Len()-1],
	})
}
