// Package tabular reads and writes the comma-separated upload format:
//
//	timestamp,zone,category,value,source[,voltage,current,power,energy,temperature,humidity,occupancy]
//
// Fields are split on every comma; there is no quoting, so a value that
// contains a comma shifts the remaining columns.
package tabular

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"green_index/internal/calc"
	"green_index/internal/models"
)

const delimiter = ","

// RequiredColumns must all appear in the header.
var RequiredColumns = []string{"timestamp", "zone", "category", "value", "source"}

// OptionalColumns mirror the fields of a device reading.
var OptionalColumns = []string{"voltage", "current", "power", "energy", "temperature", "humidity", "occupancy"}

var ErrNoDataRows = errors.New("csv must have a header row and at least one data row")

// MissingColumnsError rejects a whole upload whose header lacks required columns.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

// ParsedRow is a data line before validation.
type ParsedRow struct {
	Line     int // 1-based line number in the source text
	Row      models.CSVRow
	HasValue bool // the value cell was present and non-empty
	Coerced  int  // numeric cells that did not parse and were read as 0
}

// Parse splits text into rows keyed by the header. Unparseable numbers in
// numeric columns are read as 0 and counted in Coerced rather than failing
// the row.
func Parse(text string) ([]ParsedRow, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil, ErrNoDataRows
	}

	header := splitLine(lines[0])
	for i := range header {
		header[i] = strings.ToLower(header[i])
	}
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	rows := make([]ParsedRow, 0, len(lines)-1)
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		rows = append(rows, parseLine(i+1, header, splitLine(line)))
	}
	return rows, nil
}

func splitLine(line string) []string {
	parts := strings.Split(line, delimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func missingColumns(header []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

func parseLine(lineNo int, header, cells []string) ParsedRow {
	pr := ParsedRow{Line: lineNo}
	for idx, col := range header {
		cell := ""
		if idx < len(cells) {
			cell = cells[idx]
		}
		switch col {
		case "timestamp":
			pr.Row.Timestamp = cell
		case "zone":
			pr.Row.Zone = cell
		case "category":
			pr.Row.Category = cell
		case "source":
			pr.Row.Source = cell
		case "value":
			pr.HasValue = cell != ""
			pr.Row.Value = pr.number(cell)
		case "voltage":
			pr.Row.Voltage = pr.optional(cell)
		case "current":
			pr.Row.Current = pr.optional(cell)
		case "power":
			pr.Row.Power = pr.optional(cell)
		case "energy":
			pr.Row.Energy = pr.optional(cell)
		case "temperature":
			pr.Row.Temperature = pr.optional(cell)
		case "humidity":
			pr.Row.Humidity = pr.optional(cell)
		case "occupancy":
			pr.Row.Occupancy = pr.optional(cell)
		}
	}
	return pr
}

func (pr *ParsedRow) number(cell string) float64 {
	if cell == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || !calc.Finite(v) {
		pr.Coerced++
		return 0
	}
	return v
}

func (pr *ParsedRow) optional(cell string) *float64 {
	if cell == "" {
		return nil
	}
	v := pr.number(cell)
	return &v
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts RFC3339 and the common ISO-8601 variants without a
// zone (read as UTC).
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
