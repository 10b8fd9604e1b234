package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"green_index/internal/models"
)

type ReadingRepo interface {
	Insert(ctx context.Context, r models.StoredReading) (int64, error)
	ListByDevice(ctx context.Context, deviceID string, limit int) ([]models.StoredReading, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.SystemEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.SystemEvent, error)
}

// Dialect selects the bind-parameter style of the underlying database.
type Dialect int

const (
	SQLite   Dialect = iota // ? placeholders
	Postgres                // $1, $2, ...
)

// ParseDialect maps the configured db driver name to a Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
		return SQLite, nil
	case "postgres", "pgx":
		return Postgres, nil
	}
	return 0, fmt.Errorf("unsupported db driver %q", driver)
}

// rebind rewrites ? placeholders for the dialect. Queries here never
// contain a literal question mark.
func (d Dialect) rebind(q string) string {
	if d != Postgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type Repository struct {
	ReadingRepo ReadingRepo
	EventRepo   EventRepo
}

func NewRepository(db *sql.DB, dialect Dialect) *Repository {
	return &Repository{
		ReadingRepo: NewReadingSQL(db, dialect),
		EventRepo:   NewEventSQL(db, dialect),
	}
}
