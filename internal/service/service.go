package service

import (
	"context"
	"time"

	"green_index/internal/models"
)

// Telemetry is the device ingestion boundary.
type Telemetry interface {
	Record(ctx context.Context, source string, pkt models.DevicePacket) (models.NormalizedReading, error)
	Recent(ctx context.Context, deviceID string, limit int) ([]models.StoredReading, error)
}

// Sensors exposes the live engine's read side.
type Sensors interface {
	Sensors(c models.Category) ([]models.NormalizedReading, error)
	AggregateByCategory(c models.Category) (models.AggregatedData, error)
	CategoryScore(c models.Category) (int, error)
	CampusTotals() models.CampusTotals
	WastageAlerts() []models.WastageAlert
	EnergyHistory(sensorID string) ([]models.EnergySample, error)
	EnergyCalculations(sensorID string, hours float64) (models.EnergyCalculations, error)
	StreamReadings(buffer int, onDrop func()) (<-chan models.NormalizedReading, func())
	StreamAlerts(buffer int, onDrop func()) (<-chan models.WastageAlert, func())
}

// Simulator drives periodic synthetic readings.
type Simulator interface {
	Start(ctx context.Context, interval time.Duration) error
	Stop(ctx context.Context) error
	Status() SimulationStatus
}

// Dataset is the batch tabular pipeline.
type Dataset interface {
	Ingest(ctx context.Context, text string) (models.ProcessedResult, error)
	Rows(f RowFilter) []models.CSVRow
	Statistics() models.Statistics
	Leaderboard() models.Leaderboard
	GreenIndex() int
	CategoryScores() *models.CategoryScores
	Export() (string, error)
	Clear(ctx context.Context)
	StreamDataset(buffer int, onDrop func()) (<-chan []models.CSVRow, func())
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.SystemEvent, error)
}

// Service aggregates the sub-services the transport layer depends on.
type Service struct {
	Telemetry
	Sensors
	Simulator
	Dataset
	EventLog
}

func NewService(telemetry Telemetry, sensors Sensors, simulator Simulator, dataset Dataset, eventLog EventLog) *Service {
	return &Service{
		Telemetry: telemetry,
		Sensors:   sensors,
		Simulator: simulator,
		Dataset:   dataset,
		EventLog:  eventLog,
	}
}

var (
	_ Telemetry = (*TelemetryService)(nil)
	_ Sensors   = (*SensorEngine)(nil)
	_ Simulator = (*SimulatorService)(nil)
	_ Dataset   = (*DatasetService)(nil)
	_ EventLog  = (*EventLogService)(nil)
)
