package tabular

import (
	"strconv"
	"strings"

	"green_index/internal/models"
)

// Export renders rows in the upload format. Optional columns are written
// only when at least one row carries them; absent cells are left empty.
// Exporting an empty slice yields "".
func Export(rows []models.CSVRow) string {
	if len(rows) == 0 {
		return ""
	}

	cols := append([]string(nil), RequiredColumns...)
	for _, c := range OptionalColumns {
		for _, r := range rows {
			if optionalField(r, c) != nil {
				cols = append(cols, c)
				break
			}
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(cols, delimiter))
	cells := make([]string, len(cols))
	for _, r := range rows {
		for i, c := range cols {
			cells[i] = cell(r, c)
		}
		b.WriteByte('\n')
		b.WriteString(strings.Join(cells, delimiter))
	}
	return b.String()
}

func cell(r models.CSVRow, col string) string {
	switch col {
	case "timestamp":
		return r.Timestamp
	case "zone":
		return r.Zone
	case "category":
		return r.Category
	case "value":
		return formatFloat(r.Value)
	case "source":
		return r.Source
	}
	if v := optionalField(r, col); v != nil {
		return formatFloat(*v)
	}
	return ""
}

func optionalField(r models.CSVRow, col string) *float64 {
	switch col {
	case "voltage":
		return r.Voltage
	case "current":
		return r.Current
	case "power":
		return r.Power
	case "energy":
		return r.Energy
	case "temperature":
		return r.Temperature
	case "humidity":
		return r.Humidity
	case "occupancy":
		return r.Occupancy
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
