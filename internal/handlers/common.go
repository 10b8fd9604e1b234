package handlers

import (
	"errors"
	"net/http"

	"green_index/internal/models"
	"green_index/internal/service"
	"green_index/internal/tabular"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusStarted = "started"
	statusStopped = "stopped"
	statusCleared = "cleared"

	errInvalidBodyPref = "invalid body: "
	errInternal        = "internal error"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondError maps known domain errors to client errors and logs the rest
// as internal failures under logKey.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	var missing *tabular.MissingColumnsError
	switch {
	case errors.Is(err, service.ErrSensorNotFound),
		errors.Is(err, service.ErrEmptyDataset):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnknownCategory),
		errors.Is(err, models.ErrInvalidPacket),
		errors.Is(err, service.ErrNotEnergySensor),
		errors.Is(err, service.ErrNonFiniteReading),
		errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrInvalidInterval),
		errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, tabular.ErrNoDataRows),
		errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, logKey, err, kv...)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
