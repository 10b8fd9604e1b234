package handlers

import (
	"context"
	"time"

	"green_index/internal/models"
	"green_index/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockTelemetry struct {
	reading    models.NormalizedReading
	recordErr  error
	lastSource string
	lastPacket models.DevicePacket
	recorded   int

	recent    []models.StoredReading
	recentErr error
	lastLimit int
}

func (m *mockTelemetry) Record(ctx context.Context, source string, pkt models.DevicePacket) (models.NormalizedReading, error) {
	m.recorded++
	m.lastSource = source
	m.lastPacket = pkt
	return m.reading, m.recordErr
}
func (m *mockTelemetry) Recent(ctx context.Context, deviceID string, limit int) ([]models.StoredReading, error) {
	m.lastLimit = limit
	return m.recent, m.recentErr
}

type mockSensors struct {
	sensors      []models.NormalizedReading
	sensorsErr   error
	lastCategory models.Category

	aggregate models.AggregatedData
	score     int
	totals    models.CampusTotals
	alerts    []models.WastageAlert

	history    []models.EnergySample
	historyErr error

	calc      models.EnergyCalculations
	calcErr   error
	lastHours float64

	readingsCh chan models.NormalizedReading
	alertsCh   chan models.WastageAlert
}

func (m *mockSensors) Sensors(c models.Category) ([]models.NormalizedReading, error) {
	m.lastCategory = c
	return m.sensors, m.sensorsErr
}
func (m *mockSensors) AggregateByCategory(c models.Category) (models.AggregatedData, error) {
	return m.aggregate, nil
}
func (m *mockSensors) CategoryScore(c models.Category) (int, error) { return m.score, nil }
func (m *mockSensors) CampusTotals() models.CampusTotals            { return m.totals }
func (m *mockSensors) WastageAlerts() []models.WastageAlert         { return m.alerts }
func (m *mockSensors) EnergyHistory(sensorID string) ([]models.EnergySample, error) {
	return m.history, m.historyErr
}
func (m *mockSensors) EnergyCalculations(sensorID string, hours float64) (models.EnergyCalculations, error) {
	m.lastHours = hours
	return m.calc, m.calcErr
}
func (m *mockSensors) StreamReadings(int, func()) (<-chan models.NormalizedReading, func()) {
	if m.readingsCh == nil {
		m.readingsCh = make(chan models.NormalizedReading)
	}
	return m.readingsCh, func() {}
}
func (m *mockSensors) StreamAlerts(int, func()) (<-chan models.WastageAlert, func()) {
	if m.alertsCh == nil {
		m.alertsCh = make(chan models.WastageAlert)
	}
	return m.alertsCh, func() {}
}

type mockSimulator struct {
	status       service.SimulationStatus
	startErr     error
	lastInterval time.Duration
	startCalled  int
	stopCalled   int
}

func (m *mockSimulator) Start(ctx context.Context, interval time.Duration) error {
	m.startCalled++
	m.lastInterval = interval
	if m.startErr == nil {
		m.status.Running = true
		m.status.IntervalMS = interval.Milliseconds()
	}
	return m.startErr
}
func (m *mockSimulator) Stop(ctx context.Context) error {
	m.stopCalled++
	m.status.Running = false
	return nil
}
func (m *mockSimulator) Status() service.SimulationStatus { return m.status }

type mockDataset struct {
	result     models.ProcessedResult
	ingestErr  error
	lastText   string
	rows       []models.CSVRow
	lastFilter service.RowFilter
	stats      models.Statistics
	board      models.Leaderboard
	index      int
	scores     *models.CategoryScores
	export     string
	exportErr  error
	cleared    int
	datasetCh  chan []models.CSVRow
}

func (m *mockDataset) Ingest(ctx context.Context, text string) (models.ProcessedResult, error) {
	m.lastText = text
	return m.result, m.ingestErr
}
func (m *mockDataset) Rows(f service.RowFilter) []models.CSVRow {
	m.lastFilter = f
	return m.rows
}
func (m *mockDataset) Statistics() models.Statistics          { return m.stats }
func (m *mockDataset) Leaderboard() models.Leaderboard        { return m.board }
func (m *mockDataset) GreenIndex() int                        { return m.index }
func (m *mockDataset) CategoryScores() *models.CategoryScores { return m.scores }
func (m *mockDataset) Export() (string, error)                { return m.export, m.exportErr }
func (m *mockDataset) Clear(ctx context.Context)              { m.cleared++ }
func (m *mockDataset) StreamDataset(int, func()) (<-chan []models.CSVRow, func()) {
	if m.datasetCh == nil {
		m.datasetCh = make(chan []models.CSVRow)
	}
	return m.datasetCh, func() {}
}

type mockEventLog struct {
	resp     []models.SystemEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.SystemEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
