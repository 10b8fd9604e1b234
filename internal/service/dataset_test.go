package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"green_index/internal/models"
	"green_index/internal/tabular"
)

const campusCSV = `timestamp,zone,category,value,source,power,occupancy
2024-01-15T10:00:00Z,Block A,energy,100,meter,1200,0
2024-01-15T11:00:00Z,Block B,energy,300,meter,,
2024-01-16T09:00:00Z,CSE Dept,Water,40,flow,,
,Boys Hostel A,waste,20,bin,,
2024-13-45,Main Campus,transport,10,gps,,
2024-01-14,Parking,transport,12,gps,,
2024-01-15T12:00:00Z,Main Campus,steam,5,boiler,,`

func newTestDataset(t *testing.T) (*DatasetService, *SensorEngine, *fakeEventRepo) {
	t.Helper()
	engine, _ := newTestEngine()
	events := &fakeEventRepo{}
	return NewDatasetService(engine, events, rand.New(rand.NewPCG(7, 7)), nil, nil), engine, events
}

func TestDatasetIngest_ValidatesRows(t *testing.T) {
	ds, engine, events := newTestDataset(t)

	res, err := ds.Ingest(context.Background(), campusCSV)
	require.NoError(t, err)

	assert.NotEmpty(t, res.UploadID)
	assert.Equal(t, 7, res.TotalRows)
	assert.Equal(t, 5, res.ValidRows)
	assert.Equal(t, 2, res.InvalidRows)
	assert.Equal(t, []models.RowError{
		{Line: 5, Message: "Missing required fields"},
		{Line: 6, Message: "Invalid timestamp format"},
	}, res.Errors)
	assert.Equal(t, models.CategoryCounts{Energy: 2, Water: 1, Transport: 1}, res.Categories)
	assert.Equal(t, []string{"Block A", "Block B", "CSE Dept", "Parking", "Main Campus"}, res.Zones)
	require.NotNil(t, res.DateRange)
	assert.Equal(t, time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), res.DateRange.Start)
	assert.Equal(t, time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC), res.DateRange.End)
	assert.Equal(t, 1, res.ReadingsRouted)

	// only the energy row with a power value reaches the engine
	sensors, err := engine.Sensors(models.CategoryEnergy)
	require.NoError(t, err)
	require.Len(t, sensors, 1)
	assert.Equal(t, "CSV_Block_A", sensors[0].SensorID)
	assert.Equal(t, UnknownZone, sensors[0].Zone)
	assert.Equal(t, 1200.0, sensors[0].Value)
	assert.Len(t, engine.WastageAlerts(), 1, "unoccupied 1200 W row is wastage")

	assert.Len(t, ds.Rows(RowFilter{}), 5)

	got := events.appended()
	require.Len(t, got, 1)
	assert.Equal(t, models.EventDatasetUpload, got[0].Type)
	assert.Equal(t, "5 of 7 rows accepted", got[0].Description)
}

func TestDatasetIngest_MissingColumnFailsWhole(t *testing.T) {
	ds, _, events := newTestDataset(t)
	_, err := ds.Ingest(context.Background(), campusCSV)
	require.NoError(t, err)

	var notified int
	ds.SubscribeDataset(func([]models.CSVRow) { notified++ })

	_, err = ds.Ingest(context.Background(), "timestamp,category,value,source\n2024-01-15,energy,1,m")
	var mce *tabular.MissingColumnsError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, []string{"zone"}, mce.Columns)

	assert.Len(t, ds.Rows(RowFilter{}), 5, "previous dataset kept")
	assert.Zero(t, notified)
	assert.Len(t, events.appended(), 1)
}

func TestDatasetIngest_ReplacesDataset(t *testing.T) {
	ds, _, _ := newTestDataset(t)
	ctx := context.Background()

	_, err := ds.Ingest(ctx, campusCSV)
	require.NoError(t, err)
	res, err := ds.Ingest(ctx, "timestamp,zone,category,value,source\n2024-02-01,Girls Hostel,waste,12,bin")
	require.NoError(t, err)
	assert.Equal(t, 1, res.ValidRows)

	rows := ds.Rows(RowFilter{})
	require.Len(t, rows, 1)
	assert.Equal(t, "Girls Hostel", rows[0].Zone)
}

func TestDatasetIngest_CountsCoercions(t *testing.T) {
	ds, _, _ := newTestDataset(t)

	res, err := ds.Ingest(context.Background(), "timestamp,zone,category,value,source\n2024-02-01,Block C,water,lots,meter")
	require.NoError(t, err)
	assert.Equal(t, 1, res.ValidRows)
	assert.Equal(t, 1, res.CoercedFields)
	assert.Equal(t, 0.0, ds.Rows(RowFilter{})[0].Value)
}

func TestDatasetRows_Filter(t *testing.T) {
	ds, _, _ := newTestDataset(t)
	_, _ = ds.Ingest(context.Background(), campusCSV)

	assert.Len(t, ds.Rows(RowFilter{Category: "ENERGY"}), 2)
	assert.Len(t, ds.Rows(RowFilter{Category: "water"}), 1)
	assert.Len(t, ds.Rows(RowFilter{Zone: "Main Campus"}), 1)
	assert.Empty(t, ds.Rows(RowFilter{Category: "energy", Zone: "Parking"}))
}

func TestDatasetStatistics(t *testing.T) {
	ds, _, _ := newTestDataset(t)
	_, _ = ds.Ingest(context.Background(), campusCSV)

	first := ds.Statistics()
	assert.Equal(t, 5, first.TotalRecords)
	assert.Equal(t, models.CategoryCounts{Energy: 2, Water: 1, Transport: 1}, first.ByCategory)
	assert.Equal(t, map[string]int{"Block A": 1, "Block B": 1, "CSE Dept": 1, "Parking": 1, "Main Campus": 1}, first.ByZone)
	assert.Equal(t, models.CategoryValues{Energy: 200, Water: 40, Transport: 12}, first.AverageValues)

	assert.Equal(t, first, ds.Statistics())
}

func TestDatasetLeaderboard(t *testing.T) {
	ds, _, _ := newTestDataset(t)
	_, _ = ds.Ingest(context.Background(), campusCSV)

	lb := ds.Leaderboard()

	require.Len(t, lb.Departments, 1)
	assert.Equal(t, "CSE Dept", lb.Departments[0].Name)
	assert.Empty(t, lb.Hostels)

	require.Len(t, lb.Blocks, 3)
	names := []string{lb.Blocks[0].Name, lb.Blocks[1].Name, lb.Blocks[2].Name}
	assert.Equal(t, []string{"Block A", "Block B", "Main Campus"}, names)
	for i, e := range lb.Blocks {
		assert.Equal(t, i+1, e.Rank)
		assert.Equal(t, 80, e.Score)
		assert.Equal(t, "up", e.Trend)
	}
	assert.Equal(t, "Most Improved", lb.Blocks[0].Badge)
	assert.Empty(t, lb.Blocks[1].Badge)
	assert.Greater(t, lb.Blocks[0].CategoryScores.Energy, lb.Blocks[1].CategoryScores.Energy)
	assert.Equal(t, 0, lb.Blocks[2].DataPoints)
}

func TestDatasetLeaderboard_Buckets(t *testing.T) {
	ds, _, _ := newTestDataset(t)
	csv := "timestamp,zone,category,value,source\n" +
		"2024-01-01,CSE Dept,energy,100,m\n" +
		"2024-01-01,Boys Hostel A,energy,100,m\n" +
		"2024-01-01,Main Campus,energy,100,m\n" +
		"2024-01-01,Parking,energy,100,m"
	_, err := ds.Ingest(context.Background(), csv)
	require.NoError(t, err)

	lb := ds.Leaderboard()
	bucketOf := func(name string) []string {
		var in []string
		for bucket, entries := range map[string][]models.LeaderboardEntry{
			"departments": lb.Departments, "hostels": lb.Hostels, "blocks": lb.Blocks,
		} {
			for _, e := range entries {
				if e.Name == name {
					in = append(in, bucket)
				}
			}
		}
		return in
	}
	assert.Equal(t, []string{"departments"}, bucketOf("CSE Dept"))
	assert.Equal(t, []string{"hostels"}, bucketOf("Boys Hostel A"))
	assert.Equal(t, []string{"blocks"}, bucketOf("Main Campus"))
	assert.Empty(t, bucketOf("Parking"))
}

func TestLinearZoneScore(t *testing.T) {
	blockA, overallA := LinearZoneScore(models.CategoryValues{Energy: 100})
	blockB, overallB := LinearZoneScore(models.CategoryValues{Energy: 300})
	assert.Greater(t, blockA.Energy, blockB.Energy)
	assert.GreaterOrEqual(t, overallA, overallB)

	sub, overall := LinearZoneScore(models.CategoryValues{Energy: 1e6, Water: 1e6, Waste: 1e6, Transport: 1e6})
	assert.Equal(t, models.CategoryScores{Transport: 100}, sub)
	assert.Equal(t, 20, overall)

	sub, overall = LinearZoneScore(models.CategoryValues{Transport: 20})
	assert.Equal(t, models.CategoryScores{Energy: 100, Water: 100, Waste: 100, Transport: 100}, sub)
	assert.Equal(t, 100, overall)
}

func TestDatasetGreenIndexAndCategoryScores(t *testing.T) {
	ds, _, _ := newTestDataset(t)

	assert.Equal(t, DefaultGreenIndex, ds.GreenIndex())
	assert.Nil(t, ds.CategoryScores())

	_, _ = ds.Ingest(context.Background(), campusCSV)
	assert.Equal(t, 80, ds.GreenIndex())
	assert.Equal(t, &models.CategoryScores{Energy: 100, Water: 100, Waste: 100, Transport: 0}, ds.CategoryScores())

	// rows exist but no zone lands in a bucket
	_, _ = ds.Ingest(context.Background(), "timestamp,zone,category,value,source\n2024-01-01,Parking,transport,3,gps")
	assert.Equal(t, DefaultGreenIndex, ds.GreenIndex())
	assert.Nil(t, ds.CategoryScores())
}

func TestDatasetExport_RoundTrip(t *testing.T) {
	ds, _, _ := newTestDataset(t)
	ctx := context.Background()

	_, err := ds.Export()
	assert.ErrorIs(t, err, ErrEmptyDataset)

	first, err := ds.Ingest(ctx, campusCSV)
	require.NoError(t, err)
	text, err := ds.Export()
	require.NoError(t, err)

	second, err := ds.Ingest(ctx, text)
	require.NoError(t, err)
	assert.Equal(t, first.ValidRows, second.ValidRows)
	assert.Zero(t, second.InvalidRows)
}

func TestDatasetClearAndSubscribe(t *testing.T) {
	ds, _, events := newTestDataset(t)
	ctx := context.Background()

	var sizes []int
	unsubscribe := ds.SubscribeDataset(func(rows []models.CSVRow) { sizes = append(sizes, len(rows)) })

	_, _ = ds.Ingest(ctx, campusCSV)
	ds.Clear(ctx)
	unsubscribe()
	_, _ = ds.Ingest(ctx, campusCSV)

	assert.Equal(t, []int{5, 0}, sizes)
	assert.Len(t, ds.Rows(RowFilter{}), 5)

	got := events.appended()
	require.Len(t, got, 3)
	assert.Equal(t, models.EventDatasetClear, got[1].Type)
}

func TestCSVDeviceReading_Defaults(t *testing.T) {
	power := 460.0
	zeroV := 0.0
	r := csvDeviceReading(models.CSVRow{Zone: "Hostel  Zone", Power: &power, Voltage: &zeroV}, time.Unix(1700000000, 0))

	assert.Equal(t, "CSV_Hostel_Zone", r.DeviceID)
	assert.Equal(t, int64(1700000000), r.Timestamp)
	assert.Equal(t, 230.0, r.Voltage)
	assert.Equal(t, 2.0, r.Current)
	assert.Equal(t, 25.0, r.Temperature)
	assert.Equal(t, 50.0, r.Humidity)
	require.NotNil(t, r.Occupancy)
	assert.Equal(t, 1, *r.Occupancy)
}

func waterCSV(rows int) string {
	var b strings.Builder
	b.WriteString("timestamp,zone,category,value,source\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "2024-01-15T10:00:00Z,Hostel %d,water,%d,meter\n", i, 10+i)
	}
	return b.String()
}

func TestDatasetIngest_LastNotificationMatchesStoredRows(t *testing.T) {
	ds, _, _ := newTestDataset(t)

	var mu sync.Mutex
	var published []int
	ds.SubscribeDataset(func(rows []models.CSVRow) {
		mu.Lock()
		published = append(published, len(rows))
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for n := 1; n <= 16; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if n%5 == 0 {
				ds.Clear(context.Background())
				return
			}
			_, err := ds.Ingest(context.Background(), waterCSV(n))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, published, 16)
	assert.Equal(t, len(ds.Rows(RowFilter{})), published[len(published)-1])
}
