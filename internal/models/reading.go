package models

import (
	"errors"
	"time"
)

// Status classifies a sensor's latest reading.
type Status string

const (
	StatusNormal  Status = "normal"
	StatusHigh    Status = "high"
	StatusLow     Status = "low"
	StatusOffline Status = "offline"
)

// DeviceReading is one raw sample from a metering node (PZEM-004T power
// meter, DHT11, PIR). Occupancy is nil when the device did not report it.
type DeviceReading struct {
	DeviceID    string
	Timestamp   int64 // Unix seconds
	Voltage     float64
	Current     float64
	Power       float64 // W
	Energy      float64 // cumulative kWh
	Temperature float64
	Humidity    float64
	Occupancy   *int
}

// DevicePacket is the JSON body posted by devices and the MQTT bridge.
// Pointer fields distinguish "absent" from zero.
type DevicePacket struct {
	DeviceID    string   `json:"deviceId"`
	Timestamp   *int64   `json:"timestamp"`
	Voltage     *float64 `json:"voltage,omitempty"`
	Current     *float64 `json:"current,omitempty"`
	Power       *float64 `json:"power"`
	Energy      *float64 `json:"energy,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Occupancy   *int     `json:"occupancy,omitempty"`
}

var ErrInvalidPacket = errors.New("invalid packet structure: deviceId, timestamp and power are required")

// Validate checks the required fields. A zero timestamp counts as missing.
func (p DevicePacket) Validate() error {
	if p.DeviceID == "" || p.Timestamp == nil || *p.Timestamp == 0 || p.Power == nil {
		return ErrInvalidPacket
	}
	return nil
}

// Reading converts a validated packet; absent optional values become zero.
func (p DevicePacket) Reading() DeviceReading {
	r := DeviceReading{
		DeviceID:  p.DeviceID,
		Occupancy: p.Occupancy,
	}
	if p.Timestamp != nil {
		r.Timestamp = *p.Timestamp
	}
	r.Voltage = deref(p.Voltage)
	r.Current = deref(p.Current)
	r.Power = deref(p.Power)
	r.Energy = deref(p.Energy)
	r.Temperature = deref(p.Temperature)
	r.Humidity = deref(p.Humidity)
	return r
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// Electrical carries the energy-meter specific part of a reading.
type Electrical struct {
	Voltage     float64 `json:"voltage"`
	Current     float64 `json:"current"`
	Power       float64 `json:"power_w"`
	PowerKW     float64 `json:"power_kw"`
	Energy      float64 `json:"energy_kwh"`
	Temperature float64 `json:"temperature,omitempty"`
	Humidity    float64 `json:"humidity,omitempty"`
	Occupancy   *int    `json:"occupancy,omitempty"`
	CarbonRate  float64 `json:"carbon_rate_kg_per_hr"`
}

// NormalizedReading is the engine's latest view of one sensor.
type NormalizedReading struct {
	SensorID   string      `json:"sensor_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Value      float64     `json:"value"`
	Unit       string      `json:"unit"`
	Category   Category    `json:"category"`
	Zone       string      `json:"zone"`
	Status     Status      `json:"status"`
	Electrical *Electrical `json:"electrical,omitempty"`
}

// EnergySample is one point of a device's cumulative energy trend.
type EnergySample struct {
	Timestamp time.Time `json:"timestamp"`
	EnergyKWh float64   `json:"energy_kwh"`
}

// StoredReading is a normalized reading as persisted by the ingestion boundary.
type StoredReading struct {
	ID          int64     `json:"id"`
	DeviceID    string    `json:"device_id"`
	Zone        string    `json:"zone"`
	Timestamp   time.Time `json:"timestamp"`
	Voltage     float64   `json:"voltage"`
	Current     float64   `json:"current"`
	Power       float64   `json:"power"`
	Energy      float64   `json:"energy"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Occupancy   *int      `json:"occupancy,omitempty"`
	CarbonRate  float64   `json:"carbon_rate"`
	Status      Status    `json:"status"`
	Source      string    `json:"source"`
}
