package service

import (
	"context"
	"errors"

	"green_index/internal/logger"
	"green_index/internal/models"
	"green_index/internal/repository"
)

// Reading sources.
const (
	SourceHTTP = "http"
	SourceMQTT = "mqtt"
)

// TelemetryService is the device ingestion boundary shared by the HTTP
// endpoint and the MQTT bridge: validate, hand to the engine, persist.
type TelemetryService struct {
	engine      ReadingIngester
	readingRepo repository.ReadingRepo
	metrics     Metrics
	log         *logger.Logger
}

func NewTelemetryService(engine ReadingIngester, readingRepo repository.ReadingRepo, metrics Metrics, log *logger.Logger) *TelemetryService {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &TelemetryService{engine: engine, readingRepo: readingRepo, metrics: metrics, log: log}
}

// Record ingests one device packet. A storage failure is logged and counted
// but does not fail the call: the engine already holds the reading.
func (s *TelemetryService) Record(ctx context.Context, source string, pkt models.DevicePacket) (models.NormalizedReading, error) {
	if err := pkt.Validate(); err != nil {
		s.metrics.ReadingRejected(source, "invalid_packet")
		return models.NormalizedReading{}, err
	}

	reading, err := s.engine.Ingest(pkt.Reading())
	if err != nil {
		reason := "rejected"
		if errors.Is(err, ErrNonFiniteReading) {
			reason = "non_finite"
		}
		s.metrics.ReadingRejected(source, reason)
		return models.NormalizedReading{}, err
	}
	s.metrics.ReadingIngested(source)

	if s.readingRepo == nil {
		return reading, nil
	}
	if _, err := s.readingRepo.Insert(ctx, storedReading(reading, source)); err != nil {
		s.metrics.PersistFailed()
		s.log.Errorw("reading_persist_failed", "device_id", reading.SensorID, "source", source, "err", err)
	}
	return reading, nil
}

// Recent returns the latest persisted readings for a device, newest first.
func (s *TelemetryService) Recent(ctx context.Context, deviceID string, limit int) ([]models.StoredReading, error) {
	if s.readingRepo == nil {
		return []models.StoredReading{}, nil
	}
	return s.readingRepo.ListByDevice(ctx, deviceID, limit)
}

func storedReading(r models.NormalizedReading, source string) models.StoredReading {
	out := models.StoredReading{
		DeviceID:  r.SensorID,
		Zone:      r.Zone,
		Timestamp: r.Timestamp,
		Power:     r.Value,
		Status:    r.Status,
		Source:    source,
	}
	if el := r.Electrical; el != nil {
		out.Voltage = el.Voltage
		out.Current = el.Current
		out.Energy = el.Energy
		out.Temperature = el.Temperature
		out.Humidity = el.Humidity
		out.Occupancy = copyInt(el.Occupancy)
		out.CarbonRate = el.CarbonRate
	}
	return out
}
