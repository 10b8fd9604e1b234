package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"green_index/internal/bus"
	"green_index/internal/calc"
	"green_index/internal/logger"
	"green_index/internal/models"
	"green_index/internal/repository"
	"green_index/internal/tabular"
)

const (
	DefaultGreenIndex = 73

	msgMissingFields    = "Missing required fields"
	msgInvalidTimestamp = "Invalid timestamp format"

	badgeMostImproved = "Most Improved"
	trendUpAbove      = 70

	csvDefaultTemperature = 25.0
	csvDefaultHumidity    = 50.0
)

var ErrEmptyDataset = errors.New("no dataset has been uploaded")

// zoneWeights are the overall-score weights for energy, water, waste and
// transport, in that order.
var zoneWeights = []float64{0.30, 0.25, 0.25, 0.20}

// ReadingIngester accepts device readings. SensorEngine implements it.
type ReadingIngester interface {
	Ingest(r models.DeviceReading) (models.NormalizedReading, error)
}

// RowFilter narrows Rows. Category matches case-insensitively; empty
// fields match everything.
type RowFilter struct {
	Category string
	Zone     string
}

// DatasetService holds the rows accepted from the latest upload. Each upload
// replaces the previous dataset wholesale.
type DatasetService struct {
	engine    ReadingIngester
	eventRepo repository.EventRepo
	metrics   Metrics
	log       *logger.Logger

	// writeMu orders replacements with their notifications; mu guards rows.
	writeMu sync.Mutex
	mu      sync.RWMutex
	rows    []models.CSVRow
	updates *bus.Broker[[]models.CSVRow]

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewDatasetService(engine ReadingIngester, eventRepo repository.EventRepo, rng *rand.Rand, metrics Metrics, log *logger.Logger) *DatasetService {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	s := &DatasetService{
		engine:    engine,
		eventRepo: eventRepo,
		metrics:   metrics,
		log:       log,
		updates:   bus.New[[]models.CSVRow](),
		rng:       rng,
	}
	s.updates.OnError = func(err error) { s.log.Errorw("dataset_subscriber_failed", "err", err) }
	return s
}

// Ingest parses an upload, validates every row and replaces the dataset with
// the accepted ones. Energy rows that carry a power value are also fed to
// the sensor engine. Structural problems (missing header columns, no data
// rows) fail the whole upload; row problems are reported in the result.
func (s *DatasetService) Ingest(ctx context.Context, text string) (models.ProcessedResult, error) {
	parsed, err := tabular.Parse(text)
	if err != nil {
		return models.ProcessedResult{}, err
	}

	res := models.ProcessedResult{
		UploadID:  uuid.NewString(),
		TotalRows: len(parsed),
		Zones:     []string{},
		Errors:    []models.RowError{},
	}
	accepted := make([]models.CSVRow, 0, len(parsed))
	seenZones := make(map[string]struct{})
	var first, last time.Time

	for _, pr := range parsed {
		res.CoercedFields += pr.Coerced
		row := pr.Row

		if row.Timestamp == "" || row.Zone == "" || row.Category == "" || !pr.HasValue {
			res.Errors = append(res.Errors, models.RowError{Line: pr.Line, Message: msgMissingFields})
			continue
		}
		ts, err := tabular.ParseTimestamp(row.Timestamp)
		if err != nil {
			res.Errors = append(res.Errors, models.RowError{Line: pr.Line, Message: msgInvalidTimestamp})
			continue
		}

		category := models.Category(strings.ToLower(row.Category))
		if category == models.CategoryEnergy && row.Power != nil {
			if _, err := s.engine.Ingest(csvDeviceReading(row, ts)); err != nil {
				res.Errors = append(res.Errors, models.RowError{Line: pr.Line, Message: err.Error()})
				continue
			}
			res.ReadingsRouted++
		}

		res.Categories.Inc(category)
		if _, ok := seenZones[row.Zone]; !ok {
			seenZones[row.Zone] = struct{}{}
			res.Zones = append(res.Zones, row.Zone)
		}
		if first.IsZero() || ts.Before(first) {
			first = ts
		}
		if last.IsZero() || ts.After(last) {
			last = ts
		}
		accepted = append(accepted, row)
	}

	res.ValidRows = len(accepted)
	res.InvalidRows = len(res.Errors)
	if res.ValidRows > 0 {
		res.DateRange = &models.DateRange{Start: first, End: last}
	}

	s.writeMu.Lock()
	s.mu.Lock()
	s.rows = accepted
	s.mu.Unlock()
	s.updates.Publish(slices.Clone(accepted))
	s.writeMu.Unlock()

	s.metrics.DatasetIngested(res.ValidRows, res.InvalidRows)
	s.appendEvent(ctx, models.EventDatasetUpload,
		fmt.Sprintf("%d of %d rows accepted", res.ValidRows, res.TotalRows),
		map[string]any{
			"upload_id":       res.UploadID,
			"valid_rows":      res.ValidRows,
			"invalid_rows":    res.InvalidRows,
			"readings_routed": res.ReadingsRouted,
			"zones":           res.Zones,
		})
	return res, nil
}

// csvDeviceReading synthesizes a meter packet for an energy row. Missing or
// zero electrical fields fall back to mains defaults; missing occupancy
// counts as occupied.
func csvDeviceReading(row models.CSVRow, ts time.Time) models.DeviceReading {
	power := *row.Power
	occupied := 1
	if row.Occupancy != nil && *row.Occupancy == 0 {
		occupied = 0
	}
	return models.DeviceReading{
		DeviceID:    "CSV_" + strings.Join(strings.Fields(row.Zone), "_"),
		Timestamp:   ts.Unix(),
		Voltage:     orDefault(row.Voltage, DefaultVoltage),
		Current:     orDefault(row.Current, power/DefaultVoltage),
		Power:       power,
		Energy:      orDefault(row.Energy, 0),
		Temperature: orDefault(row.Temperature, csvDefaultTemperature),
		Humidity:    orDefault(row.Humidity, csvDefaultHumidity),
		Occupancy:   &occupied,
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil || *v == 0 {
		return def
	}
	return *v
}

// Rows returns the accepted rows matching f, in upload order.
func (s *DatasetService) Rows(f RowFilter) []models.CSVRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CSVRow, 0, len(s.rows))
	for _, r := range s.rows {
		if f.Category != "" && !strings.EqualFold(r.Category, f.Category) {
			continue
		}
		if f.Zone != "" && r.Zone != f.Zone {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Statistics is computed from the current dataset on every call.
func (s *DatasetService) Statistics() models.Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.Statistics{
		TotalRecords: len(s.rows),
		ByZone:       make(map[string]int),
	}
	values := make(map[models.Category][]float64)
	for _, r := range s.rows {
		if c := models.Category(strings.ToLower(r.Category)); c.Valid() {
			stats.ByCategory.Inc(c)
			values[c] = append(values[c], r.Value)
		}
		stats.ByZone[r.Zone]++
	}
	for c, vs := range values {
		stats.AverageValues.Set(c, calc.Round(stat.Mean(vs, nil), 2))
	}
	return stats
}

type zoneScore struct {
	zone       string
	overall    int
	sub        models.CategoryScores
	dataPoints int
}

// LinearZoneScore converts a zone's per-category averages into 0-100
// sub-scores (100 - avg/200 for energy, 100 - avg/150 for water,
// 100 - avg/100 for waste, avg*5 for transport) and their weighted overall
// score. This is the dataset leaderboard's model and differs from the live
// engine's BaselineCategoryScore.
func LinearZoneScore(avg models.CategoryValues) (models.CategoryScores, int) {
	sub := []float64{
		calc.Clamp(100-avg.Energy/200, 0, 100),
		calc.Clamp(100-avg.Water/150, 0, 100),
		calc.Clamp(100-avg.Waste/100, 0, 100),
		calc.Clamp(avg.Transport*5, 0, 100),
	}
	overall := int(calc.Clamp(math.Round(floats.Dot(sub, zoneWeights)), 0, 100))
	return models.CategoryScores{
		Energy:    int(math.Round(sub[0])),
		Water:     int(math.Round(sub[1])),
		Waste:     int(math.Round(sub[2])),
		Transport: int(math.Round(sub[3])),
	}, overall
}

// scoreZones groups rows by zone (first-seen order) and scores each zone,
// best first. Zones with equal scores keep first-seen order.
func scoreZones(rows []models.CSVRow) []zoneScore {
	type bucket struct {
		values map[models.Category][]float64
		points int
	}
	var order []string
	byZone := make(map[string]*bucket)
	for _, r := range rows {
		b, ok := byZone[r.Zone]
		if !ok {
			b = &bucket{values: make(map[models.Category][]float64)}
			byZone[r.Zone] = b
			order = append(order, r.Zone)
		}
		if c := models.Category(strings.ToLower(r.Category)); c.Valid() {
			b.values[c] = append(b.values[c], r.Value)
			b.points++
		}
	}

	scores := make([]zoneScore, 0, len(order))
	for _, zone := range order {
		b := byZone[zone]
		var avg models.CategoryValues
		for c, vs := range b.values {
			avg.Set(c, stat.Mean(vs, nil))
		}
		sub, overall := LinearZoneScore(avg)
		scores = append(scores, zoneScore{zone: zone, overall: overall, sub: sub, dataPoints: b.points})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].overall > scores[j].overall })
	return scores
}

// Leaderboard ranks zones within three buckets chosen by zone name. A zone
// can land in more than one bucket, or in none.
func (s *DatasetService) Leaderboard() models.Leaderboard {
	s.mu.RLock()
	scores := scoreZones(s.rows)
	s.mu.RUnlock()

	var departments, hostels, blocks []zoneScore
	for _, z := range scores {
		if isDepartment(z.zone) {
			departments = append(departments, z)
		}
		if isHostel(z.zone) {
			hostels = append(hostels, z)
		}
		if isBlock(z.zone) {
			blocks = append(blocks, z)
		}
	}
	return models.Leaderboard{
		Departments: s.rank(departments),
		Hostels:     s.rank(hostels),
		Blocks:      s.rank(blocks),
	}
}

func isDepartment(zone string) bool {
	return containsAny(zone, "Dept", "CSE", "Lab", "Library")
}

func isHostel(zone string) bool { return containsAny(zone, "Hostel", "Quarters") }

func isBlock(zone string) bool { return containsAny(zone, "Block", "Campus") }

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// rank formats one bucket. Change is a simulated movement figure and the
// top entry always gets the Most Improved badge.
func (s *DatasetService) rank(zones []zoneScore) []models.LeaderboardEntry {
	out := make([]models.LeaderboardEntry, 0, len(zones))
	for i, z := range zones {
		e := models.LeaderboardEntry{
			Rank:           i + 1,
			Name:           z.zone,
			Score:          z.overall,
			Change:         s.simulatedChange(),
			Trend:          "down",
			DataPoints:     z.dataPoints,
			CategoryScores: z.sub,
		}
		if i == 0 {
			e.Badge = badgeMostImproved
		}
		if z.overall > trendUpAbove {
			e.Trend = "up"
		}
		out = append(out, e)
	}
	return out
}

func (s *DatasetService) simulatedChange() float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return calc.Round((s.rng.Float64()-0.3)*5, 1)
}

func (s *DatasetService) bucketed() []models.LeaderboardEntry {
	lb := s.Leaderboard()
	all := make([]models.LeaderboardEntry, 0, len(lb.Departments)+len(lb.Hostels)+len(lb.Blocks))
	all = append(all, lb.Departments...)
	all = append(all, lb.Hostels...)
	return append(all, lb.Blocks...)
}

// GreenIndex is the mean overall score of every leaderboard entry, or 73
// when there is nothing to rank.
func (s *DatasetService) GreenIndex() int {
	all := s.bucketed()
	if len(all) == 0 {
		return DefaultGreenIndex
	}
	total := 0
	for _, e := range all {
		total += e.Score
	}
	return int(math.Round(float64(total) / float64(len(all))))
}

// CategoryScores averages each sub-score over every leaderboard entry. It
// returns nil when there is nothing to rank.
func (s *DatasetService) CategoryScores() *models.CategoryScores {
	all := s.bucketed()
	if len(all) == 0 {
		return nil
	}
	var sum [4]int
	for _, e := range all {
		sum[0] += e.CategoryScores.Energy
		sum[1] += e.CategoryScores.Water
		sum[2] += e.CategoryScores.Waste
		sum[3] += e.CategoryScores.Transport
	}
	n := float64(len(all))
	avg := func(v int) int { return int(math.Round(float64(v) / n)) }
	return &models.CategoryScores{
		Energy:    avg(sum[0]),
		Water:     avg(sum[1]),
		Waste:     avg(sum[2]),
		Transport: avg(sum[3]),
	}
}

// Export renders the current dataset in the upload format.
func (s *DatasetService) Export() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.rows) == 0 {
		return "", ErrEmptyDataset
	}
	return tabular.Export(s.rows), nil
}

// Clear empties the dataset and notifies subscribers.
func (s *DatasetService) Clear(ctx context.Context) {
	s.writeMu.Lock()
	s.mu.Lock()
	removed := len(s.rows)
	s.rows = nil
	s.mu.Unlock()
	s.updates.Publish([]models.CSVRow{})
	s.writeMu.Unlock()

	s.appendEvent(ctx, models.EventDatasetClear, "Dataset cleared", map[string]any{"rows_removed": removed})
}

// SubscribeDataset calls fn with the full accepted-row set after every
// upload or clear, in the order the replacements happened. fn may read the
// dataset but must not upload or clear it.
func (s *DatasetService) SubscribeDataset(fn func([]models.CSVRow)) (unsubscribe func()) {
	return s.updates.Subscribe(fn)
}

func (s *DatasetService) StreamDataset(buffer int, onDrop func()) (<-chan []models.CSVRow, func()) {
	return s.updates.SubscribeBuffered(buffer, onDrop)
}

func (s *DatasetService) appendEvent(ctx context.Context, typ, desc string, meta map[string]any) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.Append(ctx, models.SystemEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
	if err != nil {
		s.log.Warnw("dataset_event_append_failed", "type", typ, "err", err)
	}
}
