package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	sqliteDriverName = "sqlite"
	pgxDriverName    = "pgx"
)

// InitDB opens the configured database and ensures tables exist. driver is
// "sqlite" (dsn is a file path) or "postgres" (dsn is a libpq URL or
// key/value string).
func InitDB(driver, dsn string) (*sql.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSQLite:
		return initSQLite(dsn)
	case DriverPostgres, pgxDriverName:
		return initPostgres(dsn)
	}
	return nil, fmt.Errorf("unsupported db driver %q", driver)
}

func initSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", strings.TrimSuffix(pragma, ";"), err)
		}
	}

	return finish(db, sqliteSchema, "sqlite")
}

func initPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open(pgxDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return finish(db, postgresSchema, "postgres")
}

func finish(db *sql.DB, schema []string, name string) (*sql.DB, error) {
	if err := ensureSchema(db, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", name, err)
	}
	return db, nil
}

var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS sensor_readings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    device_id TEXT NOT NULL,
    zone TEXT NOT NULL,
    recorded_at TIMESTAMP NOT NULL,
    voltage REAL NOT NULL,
    current REAL NOT NULL,
    power REAL NOT NULL,
    energy REAL NOT NULL,
    temperature REAL NOT NULL,
    humidity REAL NOT NULL,
    occupancy INTEGER,
    carbon_rate REAL NOT NULL,
    status TEXT NOT NULL,
    source TEXT NOT NULL
);`, `
CREATE INDEX IF NOT EXISTS idx_sensor_readings_device ON sensor_readings (device_id, recorded_at);`, `
CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);`,
}

var postgresSchema = []string{`
CREATE TABLE IF NOT EXISTS sensor_readings (
    id BIGSERIAL PRIMARY KEY,
    device_id TEXT NOT NULL,
    zone TEXT NOT NULL,
    recorded_at TIMESTAMPTZ NOT NULL,
    voltage DOUBLE PRECISION NOT NULL,
    current DOUBLE PRECISION NOT NULL,
    power DOUBLE PRECISION NOT NULL,
    energy DOUBLE PRECISION NOT NULL,
    temperature DOUBLE PRECISION NOT NULL,
    humidity DOUBLE PRECISION NOT NULL,
    occupancy SMALLINT,
    carbon_rate DOUBLE PRECISION NOT NULL,
    status TEXT NOT NULL,
    source TEXT NOT NULL
);`, `
CREATE INDEX IF NOT EXISTS idx_sensor_readings_device ON sensor_readings (device_id, recorded_at);`, `
CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMPTZ NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);`,
}

func ensureSchema(db *sql.DB, schema []string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range schema {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
