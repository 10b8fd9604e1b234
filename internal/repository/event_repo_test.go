package repository

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"green_index/internal/models"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newMock(t *testing.T) (*EventSQL, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewEventSQL(db, SQLite), mock
}

func TestAppend_Success_WithDefaults(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO events (id, occurred_at, type, message, meta) VALUES (?, ?, ?, ?, ?)`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), models.EventDatasetUpload, "42 rows", `{"valid":42}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(ctx(t), models.SystemEvent{
		Type:        "  dataset_upload ",
		Description: "42 rows",
		Metadata:    map[string]any{"valid": 42},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAppend_DBError(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO events").
		WillReturnError(errors.New("down"))

	err := repo.Append(ctx(t), models.SystemEvent{Type: models.EventWastage, Description: "x"})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_NoFilters_And_MetadataParsing(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	js, _ := json.Marshal(map[string]any{"zone": "Block A"})

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "message", "meta"}).
		AddRow("1", now, models.EventWastage, "m1", string(js)).
		AddRow("2", now.Add(time.Hour), models.EventDatasetClear, "m2", nil).
		AddRow("3", now.Add(2*time.Hour), models.EventSimulationStart, "m3", "{broken")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, occurred_at, type, message, meta FROM events ORDER BY occurred_at ASC`)).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3, got %d", len(got))
	}
	b1, _ := json.Marshal(got[0].Metadata)
	if string(b1) != string(js) {
		t.Fatalf("metadata mismatch: %s vs %s", string(b1), string(js))
	}
	if got[1].Metadata != nil {
		t.Fatalf("expected nil meta, got %#v", got[1].Metadata)
	}
	if got[2].Metadata != "{broken" {
		t.Fatalf("expected raw meta, got %#v", got[2].Metadata)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_WithFilters_OrderAndArgs(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	from := time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	query := `SELECT id, occurred_at, type, message, meta FROM events WHERE occurred_at >= ? AND occurred_at <= ? AND type = ? ORDER BY occurred_at ASC`
	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "message", "meta"}).
		AddRow("2", from, models.EventWastage, "b", nil).
		AddRow("3", to, models.EventWastage, "c", nil)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(from, to, models.EventWastage).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), from, to, " wastage ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].EventID != "2" || got[1].EventID != "3" {
		t.Fatalf("unexpected results: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_ScanError(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "message", "meta"}).
		// occurred_at wrong type to force scan error
		AddRow("x", 123, "WASTAGE", "msg", nil)

	mock.ExpectQuery("FROM events").WillReturnRows(rows)

	if _, err := repo.List(ctx(t), time.Time{}, time.Time{}, ""); err == nil {
		t.Fatalf("expected scan error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestRebind(t *testing.T) {
	t.Parallel()

	q := "SELECT a FROM t WHERE x = ? AND y = ? LIMIT ?"
	if got := SQLite.rebind(q); got != q {
		t.Fatalf("sqlite rebind changed query: %q", got)
	}
	if got, want := Postgres.rebind(q), "SELECT a FROM t WHERE x = $1 AND y = $2 LIMIT $3"; got != want {
		t.Fatalf("postgres rebind: got %q, want %q", got, want)
	}
}

func TestParseDialect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{"sqlite", SQLite, false},
		{"", SQLite, false},
		{"Postgres", Postgres, false},
		{"pgx", Postgres, false},
		{"mysql", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDialect(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseDialect(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Fatalf("ParseDialect(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
