package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/magda-charts/internal/models"
	"github.com/Conceptual-Machines/magda-charts/internal/services"
	"github.com/gin-gonic/gin"
)

type ChartHandler struct {
	service *services.ChartService
}

func NewChartHandler(service *services.ChartService) *ChartHandler {
	return &ChartHandler{service: service}
}

// GenerateScale returns the seven notes of a key in a mode
func (h *ChartHandler) GenerateScale(c *gin.Context) {
	var req models.ScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.GenerateScale(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RenderChord renders one relative chord symbol into a key
func (h *ChartHandler) RenderChord(c *gin.Context) {
	var req models.ChordRenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.RenderChord(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RenderProgression renders a progression sent in the request body
func (h *ChartHandler) RenderProgression(c *gin.Context) {
	var req models.ProgressionRenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.RenderProgression(c.Request.Context(), req.Symbols, req.RenderOptions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, renderResponse("", result))
}

func renderResponse(id string, r *services.RenderResult) models.ProgressionRenderResponse {
	return models.ProgressionRenderResponse{
		ID:              id,
		Key:             r.KeyName,
		Scheme:          r.Scheme,
		Symbols:         r.Symbols,
		Chords:          r.Chords,
		RepeatStructure: r.RepeatStructure,
		Length:          len(r.Symbols),
		Compact:         r.Compact,
	}
}
