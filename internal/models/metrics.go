package models

import "time"

// WastageAlert records an unoccupied room drawing power above threshold.
type WastageAlert struct {
	ID              string    `json:"id"`
	SensorID        string    `json:"sensor_id"`
	Zone            string    `json:"zone"`
	PowerW          float64   `json:"power_w"`
	DurationMinutes float64   `json:"duration_minutes"`
	Occupancy       int       `json:"occupancy"`
	EstimatedWaste  float64   `json:"estimated_waste_kwh"`
	CarbonWasted    float64   `json:"carbon_wasted_kg"`
	CostWasted      float64   `json:"cost_wasted_inr"`
	DetectedAt      time.Time `json:"detected_at"`
}

// AggregatedData summarises one category across all tracked sensors. The
// energy-only fields are nil for the other categories.
type AggregatedData struct {
	Category        Category  `json:"category"`
	SensorCount     int       `json:"sensor_count"`
	Current         float64   `json:"current"`
	Average         float64   `json:"average"`
	Peak            float64   `json:"peak"`
	Trend           []float64 `json:"trend"`
	LastUpdated     time.Time `json:"last_updated"`
	EnergyConsumed  *float64  `json:"energy_consumed_kwh,omitempty"`
	CarbonEmitted   *float64  `json:"carbon_emitted_kg,omitempty"`
	Cost            *float64  `json:"cost_inr,omitempty"`
	WastageDetected *bool     `json:"wastage_detected,omitempty"`
	GreenScore      *int      `json:"green_score,omitempty"`
}

// EnergyCalculations is the full derived-metrics breakdown for one power draw
// held for Duration hours.
type EnergyCalculations struct {
	PowerW            float64 `json:"power_w"`
	PowerKW           float64 `json:"power_kw"`
	EnergyKWh         float64 `json:"energy_kwh"`
	CarbonKg          float64 `json:"carbon_kg"`
	CarbonRateKgPerHr float64 `json:"carbon_rate_kg_per_hr"`
	CostINR           float64 `json:"cost_inr"`
	Duration          float64 `json:"duration_hours"`
}

type RealTimeTotals struct {
	TotalPowerW       float64 `json:"total_power_w"`
	TotalPowerKW      float64 `json:"total_power_kw"`
	CarbonRateKgPerHr float64 `json:"carbon_rate_kg_per_hr"`
}

type PeriodTotals struct {
	EnergyKWh float64 `json:"energy_kwh"`
	CarbonKg  float64 `json:"carbon_kg"`
	CostINR   float64 `json:"cost_inr"`
}

// CampusTotals rolls every energy meter up into real-time, daily and
// monthly (30 day) projections.
type CampusTotals struct {
	RealTime      RealTimeTotals `json:"real_time"`
	Daily         PeriodTotals   `json:"daily"`
	Monthly       PeriodTotals   `json:"monthly"`
	WastageAlerts int            `json:"wastage_alerts"`
}
