package handlers

import (
	"net/http"
	"strconv"

	"green_index/internal/models"

	"github.com/gin-gonic/gin"
)

const defaultEnergyHours = 1.0

// @Summary      List sensors
// @Description  Latest reading of every tracked sensor, optionally for one category
// @Tags         sensors
// @Produce      json
// @Param        category  query  string  false  "Sensor category"  Enums(energy,water,waste,transport)
// @Success      200  {object}  map[string]interface{}  "count, sensors"
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/sensors [get]
func (h *Handler) listSensors(c *gin.Context) {
	var category models.Category
	if q := c.Query("category"); q != "" {
		parsed, err := models.ParseCategory(q)
		if err != nil {
			h.respondError(c, "sensors_list_failed", err)
			return
		}
		category = parsed
	}
	sensors, err := h.services.Sensors.Sensors(category)
	if err != nil {
		h.respondError(c, "sensors_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(sensors), "sensors": sensors})
}

// @Summary      Energy history
// @Description  Up to the last 100 cumulative energy samples of a meter, oldest first
// @Tags         sensors
// @Produce      json
// @Param        id   path  string  true  "Sensor id"
// @Success      200  {array}   models.EnergySample
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sensors/{id}/history [get]
func (h *Handler) sensorHistory(c *gin.Context) {
	samples, err := h.services.Sensors.EnergyHistory(c.Param("id"))
	if err != nil {
		h.respondError(c, "sensor_history_failed", err, "sensor_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, samples)
}

// @Summary      Persisted readings
// @Tags         sensors
// @Produce      json
// @Param        id     path   string  true   "Device id"
// @Param        limit  query  int     false  "Max rows (default 50, max 1000)"
// @Success      200  {object}  map[string]interface{}  "count, readings"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/sensors/{id}/readings [get]
func (h *Handler) sensorReadings(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'limit'; use a positive integer"})
			return
		}
		limit = v
	}
	readings, err := h.services.Telemetry.Recent(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		h.respondError(c, "sensor_readings_failed", err, "sensor_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(readings), "readings": readings})
}

// @Summary      Energy calculations
// @Description  Energy, carbon and cost at the meter's current power over a duration
// @Tags         sensors
// @Produce      json
// @Param        id     path   string  true   "Energy sensor id"
// @Param        hours  query  number  false  "Duration in hours (default 1)"
// @Success      200  {object}  models.EnergyCalculations
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sensors/{id}/energy [get]
func (h *Handler) sensorEnergy(c *gin.Context) {
	hours := defaultEnergyHours
	if s := c.Query("hours"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'hours'; use a positive number"})
			return
		}
		hours = v
	}
	calc, err := h.services.Sensors.EnergyCalculations(c.Param("id"), hours)
	if err != nil {
		h.respondError(c, "sensor_energy_failed", err, "sensor_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, calc)
}

// @Summary      Category analytics
// @Tags         analytics
// @Produce      json
// @Param        category  path  string  true  "Category"  Enums(energy,water,waste,transport)
// @Success      200  {object}  map[string]interface{}  "aggregate, score"
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/analytics/{category} [get]
func (h *Handler) categoryAnalytics(c *gin.Context) {
	category, err := models.ParseCategory(c.Param("category"))
	if err != nil {
		h.respondError(c, "analytics_failed", err)
		return
	}
	agg, err := h.services.Sensors.AggregateByCategory(category)
	if err != nil {
		h.respondError(c, "analytics_failed", err, "category", category)
		return
	}
	score, err := h.services.Sensors.CategoryScore(category)
	if err != nil {
		h.respondError(c, "analytics_failed", err, "category", category)
		return
	}
	c.JSON(http.StatusOK, gin.H{"aggregate": agg, "score": score})
}

// @Summary      Campus totals
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  models.CampusTotals
// @Router       /api/v1/campus [get]
func (h *Handler) campusTotals(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Sensors.CampusTotals())
}

// @Summary      Wastage alerts
// @Description  The most recent alerts, oldest first
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, alerts"
// @Router       /api/v1/alerts/wastage [get]
func (h *Handler) wastageAlerts(c *gin.Context) {
	alerts := h.services.Sensors.WastageAlerts()
	c.JSON(http.StatusOK, gin.H{"count": len(alerts), "alerts": alerts})
}
