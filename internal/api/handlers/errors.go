package handlers

import (
	"errors"
	"net/http"

	"github.com/Conceptual-Machines/magda-charts/internal/logger"
	"github.com/Conceptual-Machines/magda-charts/internal/repository"
	"github.com/Conceptual-Machines/magda-charts/internal/services"
	"github.com/Conceptual-Machines/magda-charts/internal/theory"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, theory.ErrUnknownColorScheme),
		errors.Is(err, repository.ErrProgressionNotFound):
		return http.StatusNotFound
	case errors.Is(err, theory.ErrInvalidKeyColor):
		return http.StatusUnprocessableEntity
	case errors.Is(err, theory.ErrMalformedChord),
		errors.Is(err, theory.ErrMalformedKey),
		errors.Is(err, theory.ErrUnknownMode),
		errors.Is(err, theory.ErrUnknownColor),
		errors.Is(err, theory.ErrEmptyProgression):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrStoreDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		fields := logger.WithContext(c)
		fields["path"] = c.Request.URL.Path
		logger.Error("Request failed", err, fields)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request",
		"message": err.Error(),
	})
}
