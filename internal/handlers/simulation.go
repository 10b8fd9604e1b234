package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"green_index/internal/service"

	"github.com/gin-gonic/gin"
)

// StartSimulationRequest is the optional body of the start endpoint.
type StartSimulationRequest struct {
	// Tick interval in milliseconds (default 5000)
	IntervalMS int64 `json:"interval_ms,omitempty" example:"5000"`
}

// @Summary      Simulation status
// @Tags         simulation
// @Produce      json
// @Success      200  {object}  service.SimulationStatus
// @Router       /api/v1/simulation [get]
func (h *Handler) simulationStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Simulator.Status())
}

// @Summary      Start simulation
// @Description  Starting an already running simulation is a no-op
// @Tags         simulation
// @Accept       json
// @Produce      json
// @Param        body  body      StartSimulationRequest  false  "Tick interval"
// @Success      200   {object}  map[string]interface{}  "status, simulation"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/simulation/start [post]
func (h *Handler) startSimulation(c *gin.Context) {
	var req StartSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	interval := service.DefaultSimulationInterval
	if req.IntervalMS != 0 {
		interval = time.Duration(req.IntervalMS) * time.Millisecond
	}
	if err := h.services.Simulator.Start(c.Request.Context(), interval); err != nil {
		h.respondError(c, "simulation_start_failed", err, "interval_ms", req.IntervalMS)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusStarted, "simulation": h.services.Simulator.Status()})
}

// @Summary      Stop simulation
// @Tags         simulation
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, simulation"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/simulation/stop [post]
func (h *Handler) stopSimulation(c *gin.Context) {
	if err := h.services.Simulator.Stop(c.Request.Context()); err != nil {
		h.respondError(c, "simulation_stop_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusStopped, "simulation": h.services.Simulator.Status()})
}
