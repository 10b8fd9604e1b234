package handlers

import (
	"net/http"

	"green_index/internal/models"
	"green_index/internal/service"

	"github.com/gin-gonic/gin"
)

// DevicePacketRequest is an exported model for Swagger docs of the ingest payload.
type DevicePacketRequest struct {
	// Device identifier, e.g. ROOM1
	DeviceID string `json:"deviceId" example:"ROOM1"`
	// Unix seconds
	Timestamp int64 `json:"timestamp" example:"1700000000"`
	// Instantaneous power in W
	Power       float64 `json:"power" example:"640"`
	Voltage     float64 `json:"voltage,omitempty" example:"230"`
	Current     float64 `json:"current,omitempty" example:"2.78"`
	Energy      float64 `json:"energy,omitempty" example:"12.5"`
	Temperature float64 `json:"temperature,omitempty" example:"26.5"`
	Humidity    float64 `json:"humidity,omitempty" example:"48"`
	// 1 occupied, 0 empty
	Occupancy int `json:"occupancy,omitempty" example:"0"`
}

// @Summary      Ingest a device reading
// @Description  deviceId, timestamp and power are required
// @Tags         iot
// @Accept       json
// @Produce      json
// @Param        body  body      DevicePacketRequest  true  "Device packet"
// @Success      201   {object}  models.NormalizedReading
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/iot [post]
func (h *Handler) postReading(c *gin.Context) {
	var pkt models.DevicePacket
	if err := c.ShouldBindJSON(&pkt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	reading, err := h.services.Telemetry.Record(c.Request.Context(), service.SourceHTTP, pkt)
	if err != nil {
		h.respondError(c, "iot_record_failed", err, "device_id", pkt.DeviceID)
		return
	}
	c.JSON(http.StatusCreated, reading)
}

// @Summary      Campus snapshot
// @Description  Campus totals plus every tracked sensor
// @Tags         iot
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "totals, sensors"
// @Router       /api/v1/iot [get]
func (h *Handler) getIoTSnapshot(c *gin.Context) {
	sensors, err := h.services.Sensors.Sensors("")
	if err != nil {
		h.respondError(c, "iot_snapshot_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totals":  h.services.Sensors.CampusTotals(),
		"sensors": sensors,
	})
}
