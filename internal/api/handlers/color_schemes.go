package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/magda-charts/internal/models"
	"github.com/Conceptual-Machines/magda-charts/internal/services"
	"github.com/Conceptual-Machines/magda-charts/internal/theory"
	"github.com/gin-gonic/gin"
)

type ColorSchemeHandler struct {
	service *services.ChartService
}

func NewColorSchemeHandler(service *services.ChartService) *ColorSchemeHandler {
	return &ColorSchemeHandler{service: service}
}

// ListColorSchemes returns the registered scheme names
func (h *ColorSchemeHandler) ListColorSchemes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"schemes": h.service.Schemes().Names(),
		"default": theory.DefaultSchemeName,
	})
}

// GetColorScheme returns the color of every key in a scheme, keyed by the
// key's name in that color
func (h *ColorSchemeHandler) GetColorScheme(c *gin.Context) {
	scheme, err := h.service.ColorScheme(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemeResponse(scheme))
}

func schemeResponse(scheme *theory.ColorScheme) models.ColorSchemeResponse {
	table := scheme.Table()
	colors := make(map[string]theory.Color, len(table))
	for pc, color := range table {
		colors[theory.NewKey(pc).Name(color)] = color
	}
	return models.ColorSchemeResponse{
		Name:     scheme.Name(),
		Fallback: scheme.Fallback(),
		Colors:   colors,
	}
}
