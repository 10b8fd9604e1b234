package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"green_index/internal/logger"
	"green_index/internal/models"
	"green_index/internal/repository"
)

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "WASTAGE", "DATASET_UPLOAD", "DATASET_CLEAR", "SIMULATION_START", "SIMULATION_STOP"
}

type EventLogService struct {
	eventRepo repository.EventRepo
	log       *logger.Logger
}

func NewEventLogService(eventRepo repository.EventRepo, log *logger.Logger) *EventLogService {
	if log == nil {
		log = logger.Nop()
	}
	return &EventLogService{eventRepo: eventRepo, log: log}
}

var ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", ErrInvalidTimeRange
	}

	eventType := normalizeEventType(f.Type)
	return from, to, eventType, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.SystemEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, from, to, typ)
}

// RecordAlerts writes a WASTAGE event for every alert received until ctx is
// done or the channel is closed. Append failures are logged and skipped.
func (s *EventLogService) RecordAlerts(ctx context.Context, alerts <-chan models.WastageAlert) {
	for {
		select {
		case <-ctx.Done():
			return
		case a, ok := <-alerts:
			if !ok {
				return
			}
			ev := models.SystemEvent{
				EventID:     a.ID,
				OccurredAt:  a.DetectedAt,
				Type:        models.EventWastage,
				Description: fmt.Sprintf("%s in %s drew %.0f W while unoccupied for %.0f min", a.SensorID, a.Zone, a.PowerW, a.DurationMinutes),
				Metadata:    a,
			}
			if err := s.eventRepo.Append(ctx, ev); err != nil {
				s.log.Warnw("wastage_event_append_failed", "sensor_id", a.SensorID, "err", err)
			}
		}
	}
}
