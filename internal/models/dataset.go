package models

import (
	"strconv"
	"time"
)

// CSVRow is one accepted line of an uploaded dataset. Optional sensor
// columns are nil when the column was absent or the cell empty.
type CSVRow struct {
	Timestamp   string   `json:"timestamp"`
	Zone        string   `json:"zone"`
	Category    string   `json:"category"`
	Value       float64  `json:"value"`
	Source      string   `json:"source"`
	Voltage     *float64 `json:"voltage,omitempty"`
	Current     *float64 `json:"current,omitempty"`
	Power       *float64 `json:"power,omitempty"`
	Energy      *float64 `json:"energy,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Occupancy   *float64 `json:"occupancy,omitempty"`
}

// RowError is a row-level validation failure. Line is the 1-based line
// number in the uploaded text (the header is line 1).
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e RowError) String() string {
	return "Row " + strconv.Itoa(e.Line) + ": " + e.Message
}

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ProcessedResult summarises one upload.
type ProcessedResult struct {
	UploadID       string         `json:"upload_id"`
	TotalRows      int            `json:"total_rows"`
	ValidRows      int            `json:"valid_rows"`
	InvalidRows    int            `json:"invalid_rows"`
	Categories     CategoryCounts `json:"categories"`
	DateRange      *DateRange     `json:"date_range,omitempty"`
	Zones          []string       `json:"zones"`
	Errors         []RowError     `json:"errors"`
	CoercedFields  int            `json:"coerced_fields"`
	ReadingsRouted int            `json:"readings_routed"`
}

// Statistics is recomputed from the accepted rows on every call.
type Statistics struct {
	TotalRecords  int            `json:"total_records"`
	ByCategory    CategoryCounts `json:"by_category"`
	ByZone        map[string]int `json:"by_zone"`
	AverageValues CategoryValues `json:"average_values"`
}

type CategoryScores struct {
	Energy    int `json:"energy"`
	Water     int `json:"water"`
	Waste     int `json:"waste"`
	Transport int `json:"transport"`
}

// LeaderboardEntry is one ranked zone inside a bucket. Change is a
// simulated movement figure, not derived from history.
type LeaderboardEntry struct {
	Rank           int            `json:"rank"`
	Name           string         `json:"name"`
	Score          int            `json:"score"`
	Change         float64        `json:"change"`
	Badge          string         `json:"badge,omitempty"`
	Trend          string         `json:"trend"`
	DataPoints     int            `json:"data_points"`
	CategoryScores CategoryScores `json:"category_scores"`
}

type Leaderboard struct {
	Departments []LeaderboardEntry `json:"departments"`
	Hostels     []LeaderboardEntry `json:"hostels"`
	Blocks      []LeaderboardEntry `json:"blocks"`
}
