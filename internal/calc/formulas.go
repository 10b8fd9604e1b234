// Package calc holds the energy, carbon and cost formulas shared by the live
// sensor engine and the batch pipeline. Every function is exact; rounding is
// left to callers that present the values.
package calc

import "math"

const (
	// EmissionFactorKgPerKWh is the grid emission factor (India, academic average).
	EmissionFactorKgPerKWh = 0.82
	// ElectricityRatePerKWh is the campus electricity tariff in rupees.
	ElectricityRatePerKWh = 8.50

	// WastagePowerThresholdW is the draw above which an unoccupied room wastes energy.
	WastagePowerThresholdW = 150.0
	// WastageMinDurationMin is how long a room must stay unoccupied before it counts.
	WastageMinDurationMin = 10.0
)

// Energy converts a constant power draw over a period into kWh.
func Energy(powerW, timeHours float64) float64 {
	return powerW * timeHours / 1000
}

// Carbon returns kg CO2 emitted for the given energy.
func Carbon(energyKWh float64) float64 {
	return energyKWh * EmissionFactorKgPerKWh
}

// CarbonRate returns the instantaneous emission rate in kg CO2 per hour.
func CarbonRate(powerKW float64) float64 {
	return powerKW * EmissionFactorKgPerKWh
}

// Cost returns the electricity cost of the given energy.
func Cost(energyKWh float64) float64 {
	return energyKWh * ElectricityRatePerKWh
}

// Wastage reports whether an unoccupied room drawing powerW for durationMin
// minutes is wasting energy. Both thresholds are strict.
func Wastage(occupancy int, powerW, durationMin float64) bool {
	return occupancy == 0 && powerW > WastagePowerThresholdW && durationMin > WastageMinDurationMin
}

// GreenScore rates consumption against an expected maximum on a 0..100 scale.
// A zero maximum scores 100.
func GreenScore(energyUsed, maxExpected float64) float64 {
	if maxExpected == 0 {
		return 100
	}
	return Clamp(100-energyUsed/maxExpected*100, 0, 100)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
