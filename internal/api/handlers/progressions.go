package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Conceptual-Machines/magda-charts/internal/api/middleware"
	"github.com/Conceptual-Machines/magda-charts/internal/logger"
	"github.com/Conceptual-Machines/magda-charts/internal/models"
	"github.com/Conceptual-Machines/magda-charts/internal/repository"
	"github.com/Conceptual-Machines/magda-charts/internal/services"
	"github.com/Conceptual-Machines/magda-charts/internal/theory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProgressionHandler struct {
	service *services.ChartService
}

func NewProgressionHandler(service *services.ChartService) *ProgressionHandler {
	return &ProgressionHandler{service: service}
}

// CreateProgression stores a progression. Storing an existing progression
// returns the stored record with 200 instead of 201.
func (h *ProgressionHandler) CreateProgression(c *gin.Context) {
	var req models.CreateProgressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	stored, parsed, created, err := h.service.StoreProgression(c.Request.Context(), req.Symbols)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		userID, _ := middleware.GetUserID(c)
		logger.Info("Progression created", logger.Fields{
			"request_id":     c.GetString("request_id"),
			"progression_id": stored.ID,
			"user_id":        userID,
		})
	}
	c.JSON(status, progressionResponse(stored, parsed))
}

// GetProgression returns a stored progression with its repeat structure
func (h *ProgressionHandler) GetProgression(c *gin.Context) {
	id, ok := progressionID(c)
	if !ok {
		return
	}

	stored, parsed, err := h.service.GetProgression(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progressionResponse(stored, parsed))
}

// RenderProgression renders a stored progression into the key given in the
// query string
func (h *ProgressionHandler) RenderProgression(c *gin.Context) {
	id, ok := progressionID(c)
	if !ok {
		return
	}

	var opts models.RenderOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.RenderStored(c.Request.Context(), id, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, renderResponse(id, result))
}

// ListProgressions returns recently stored progressions
func (h *ProgressionHandler) ListProgressions(c *gin.Context) {
	limit := defaultPageSize
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(parsed, maxPageSize)
	}

	stored, err := h.service.ListProgressions(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]models.ProgressionResponse, 0, len(stored))
	for i := range stored {
		parsed, err := h.service.ParseStored(&stored[i])
		if err != nil {
			respondError(c, err)
			return
		}
		out = append(out, progressionResponse(&stored[i], parsed))
	}

	c.JSON(http.StatusOK, gin.H{
		"progressions": out,
		"count":        len(out),
	})
}

// progressionID validates the :id path parameter. Anything that is not a
// UUID cannot name a stored progression.
func progressionID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		respondError(c, repository.ErrProgressionNotFound)
		return "", false
	}
	return id, true
}

func progressionResponse(stored *models.Progression, parsed *theory.Progression) models.ProgressionResponse {
	return models.ProgressionResponse{
		ID:              stored.ID,
		Symbols:         parsed.Symbols(),
		Length:          parsed.Len(),
		RepeatStructure: parsed.RepeatStructure(),
		CreatedAt:       stored.CreatedAt.UTC().Format(time.RFC3339),
	}
}
