package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"green_index/internal/models"
)

type fakeReadingRepo struct {
	mu        sync.Mutex
	inserted  []models.StoredReading
	insertErr error
	listed    []models.StoredReading
	gotLimit  int
}

func (f *fakeReadingRepo) Insert(_ context.Context, r models.StoredReading) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted = append(f.inserted, r)
	return int64(len(f.inserted)), nil
}

func (f *fakeReadingRepo) ListByDevice(_ context.Context, _ string, limit int) ([]models.StoredReading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotLimit = limit
	return f.listed, nil
}

type countingMetrics struct {
	NopMetrics
	mu            sync.Mutex
	ingested      map[string]int
	rejected      map[string]int
	persistFailed int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{ingested: map[string]int{}, rejected: map[string]int{}}
}

func (m *countingMetrics) ReadingIngested(source string) {
	m.mu.Lock()
	m.ingested[source]++
	m.mu.Unlock()
}

func (m *countingMetrics) ReadingRejected(source, reason string) {
	m.mu.Lock()
	m.rejected[source+"/"+reason]++
	m.mu.Unlock()
}

func (m *countingMetrics) PersistFailed() {
	m.mu.Lock()
	m.persistFailed++
	m.mu.Unlock()
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

func validPacket() models.DevicePacket {
	return models.DevicePacket{
		DeviceID:  "ESP32_001",
		Timestamp: i64(engineEpoch.Unix()),
		Voltage:   f64(230),
		Current:   f64(4),
		Power:     f64(920),
		Energy:    f64(12.5),
		Occupancy: occ(1),
	}
}

func TestTelemetryRecord_PersistsReading(t *testing.T) {
	engine, _ := newTestEngine()
	repo := &fakeReadingRepo{}
	m := newCountingMetrics()
	svc := NewTelemetryService(engine, repo, m, nil)

	got, err := svc.Record(context.Background(), SourceHTTP, validPacket())
	require.NoError(t, err)
	assert.Equal(t, "ESP32_001", got.SensorID)
	assert.Equal(t, UnknownZone, got.Zone)

	require.Len(t, repo.inserted, 1)
	stored := repo.inserted[0]
	assert.Equal(t, "ESP32_001", stored.DeviceID)
	assert.Equal(t, engineEpoch, stored.Timestamp)
	assert.Equal(t, 920.0, stored.Power)
	assert.Equal(t, 12.5, stored.Energy)
	assert.Equal(t, SourceHTTP, stored.Source)
	assert.Equal(t, 1, *stored.Occupancy)
	assert.Equal(t, 1, m.ingested[SourceHTTP])
}

func TestTelemetryRecord_InvalidPacket(t *testing.T) {
	engine, _ := newTestEngine()
	repo := &fakeReadingRepo{}
	m := newCountingMetrics()
	svc := NewTelemetryService(engine, repo, m, nil)

	pkt := validPacket()
	pkt.Power = nil
	_, err := svc.Record(context.Background(), SourceMQTT, pkt)
	assert.ErrorIs(t, err, models.ErrInvalidPacket)

	pkt = validPacket()
	pkt.Current = f64(math.Inf(1))
	_, err = svc.Record(context.Background(), SourceMQTT, pkt)
	assert.ErrorIs(t, err, ErrNonFiniteReading)

	assert.Empty(t, repo.inserted)
	sensors, _ := engine.Sensors("")
	assert.Empty(t, sensors)
	assert.Equal(t, 1, m.rejected["mqtt/invalid_packet"])
	assert.Equal(t, 1, m.rejected["mqtt/non_finite"])
}

func TestTelemetryRecord_PersistFailureIsNotFatal(t *testing.T) {
	engine, _ := newTestEngine()
	repo := &fakeReadingRepo{insertErr: errors.New("disk full")}
	m := newCountingMetrics()
	svc := NewTelemetryService(engine, repo, m, nil)

	got, err := svc.Record(context.Background(), SourceHTTP, validPacket())
	require.NoError(t, err)
	assert.Equal(t, 920.0, got.Value)
	assert.Equal(t, 1, m.persistFailed)

	sensors, _ := engine.Sensors(models.CategoryEnergy)
	assert.Len(t, sensors, 1)
}

func TestTelemetryRecent(t *testing.T) {
	engine, _ := newTestEngine()
	want := []models.StoredReading{{ID: 2, DeviceID: "ESP32_001", Timestamp: engineEpoch.Add(time.Minute)}}
	repo := &fakeReadingRepo{listed: want}
	svc := NewTelemetryService(engine, repo, nil, nil)

	got, err := svc.Recent(context.Background(), "ESP32_001", 5)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 5, repo.gotLimit)

	got, err = NewTelemetryService(engine, nil, nil, nil).Recent(context.Background(), "ESP32_001", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
