package repository

import (
	"context"
	"database/sql"
	"fmt"

	"green_index/internal/models"
)

type ReadingSQL struct {
	db      *sql.DB
	dialect Dialect
}

func NewReadingSQL(db *sql.DB, dialect Dialect) *ReadingSQL {
	return &ReadingSQL{db: db, dialect: dialect}
}

const (
	defaultReadingLimit = 50
	maxReadingLimit     = 1000

	insertReadingSQL = `
		INSERT INTO sensor_readings (device_id, zone, recorded_at, voltage, current, power, energy,
			temperature, humidity, occupancy, carbon_rate, status, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	selectReadingsSQL = `
		SELECT id, device_id, zone, recorded_at, voltage, current, power, energy,
			temperature, humidity, occupancy, carbon_rate, status, source
		FROM sensor_readings
		WHERE device_id = ?
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?
	`
)

// Insert stores one normalized reading and returns its row id.
func (r *ReadingSQL) Insert(ctx context.Context, rd models.StoredReading) (int64, error) {
	var occupancy sql.NullInt64
	if rd.Occupancy != nil {
		occupancy = sql.NullInt64{Int64: int64(*rd.Occupancy), Valid: true}
	}

	var id int64
	err := r.db.QueryRowContext(ctx, r.dialect.rebind(insertReadingSQL),
		rd.DeviceID,
		rd.Zone,
		rd.Timestamp.UTC(),
		rd.Voltage,
		rd.Current,
		rd.Power,
		rd.Energy,
		rd.Temperature,
		rd.Humidity,
		occupancy,
		rd.CarbonRate,
		string(rd.Status),
		rd.Source,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert reading for %s: %w", rd.DeviceID, err)
	}
	return id, nil
}

// ListByDevice returns a device's most recent readings, newest first.
// A non-positive limit selects the default; large limits are capped.
func (r *ReadingSQL) ListByDevice(ctx context.Context, deviceID string, limit int) ([]models.StoredReading, error) {
	if limit <= 0 {
		limit = defaultReadingLimit
	}
	if limit > maxReadingLimit {
		limit = maxReadingLimit
	}

	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(selectReadingsSQL), deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("list readings for %s: %w", deviceID, err)
	}
	defer rows.Close()

	out := make([]models.StoredReading, 0, limit)
	for rows.Next() {
		var (
			rd        models.StoredReading
			occupancy sql.NullInt64
			status    string
		)
		if err := rows.Scan(
			&rd.ID,
			&rd.DeviceID,
			&rd.Zone,
			&rd.Timestamp,
			&rd.Voltage,
			&rd.Current,
			&rd.Power,
			&rd.Energy,
			&rd.Temperature,
			&rd.Humidity,
			&occupancy,
			&rd.CarbonRate,
			&status,
			&rd.Source,
		); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		if occupancy.Valid {
			v := int(occupancy.Int64)
			rd.Occupancy = &v
		}
		rd.Status = models.Status(status)
		rd.Timestamp = rd.Timestamp.UTC()
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
