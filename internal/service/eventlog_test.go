package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"green_index/internal/models"
)

// fakeEventRepo is a minimal stub that satisfies the repository.EventRepo interface.
type fakeEventRepo struct {
	mu sync.Mutex

	// captured inputs
	gotFrom time.Time
	gotTo   time.Time
	gotType string
	appends []models.SystemEvent

	// configured outputs
	events    []models.SystemEvent
	err       error
	appendErr error

	calls int
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.SystemEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.err
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.SystemEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appends = append(f.appends, e)
	return f.appendErr
}

func (f *fakeEventRepo) appended() []models.SystemEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SystemEvent(nil), f.appends...)
}

func mustTimeIn(loc *time.Location, y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, loc)
}

func Test_normalizeToUTC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want func(time.Time) bool
	}{
		{
			name: "zero time remains zero",
			in:   time.Time{},
			want: func(out time.Time) bool { return out.IsZero() },
		},
		{
			name: "non-UTC converted to UTC preserving instant",
			in:   mustTimeIn(time.FixedZone("IST", 5*3600+1800), 2025, time.August, 1, 12, 30, 0),
			want: func(out time.Time) bool {
				exp := time.Date(2025, time.August, 1, 7, 0, 0, 0, time.UTC)
				return out.Location() == time.UTC && out.Equal(exp)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := normalizeToUTC(tc.in)
			if !tc.want(got) {
				t.Fatalf("unexpected normalizeToUTC result: %v (loc=%v)", got, got.Location())
			}
		})
	}
}

func Test_normalizeEventType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		exp  string
	}{
		{name: "empty stays empty", in: "", exp: ""},
		{name: "trim spaces", in: "  WASTAGE ", exp: "WASTAGE"},
		{name: "uppercase", in: "dataset_upload", exp: "DATASET_UPLOAD"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeEventType(c.in); got != c.exp {
				t.Fatalf("normalizeEventType(%q) = %q; want %q", c.in, got, c.exp)
			}
		})
	}
}

func TestEventLogService_List_DelegatesNormalizedParams(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{events: []models.SystemEvent{{EventID: "1"}}}
	svc := NewEventLogService(frepo, nil)

	fromLocal := mustTimeIn(time.FixedZone("UTC+5", 5*3600), 2025, time.October, 1, 10, 0, 0)
	toLocal := mustTimeIn(time.FixedZone("UTC-2", -2*3600), 2025, time.October, 1, 12, 30, 0)

	out, err := svc.List(context.Background(), LogFilter{From: fromLocal, To: toLocal, Type: "  simulation_start "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].EventID != "1" {
		t.Fatalf("unexpected events: %+v", out)
	}

	wantFrom := time.Date(2025, time.October, 1, 5, 0, 0, 0, time.UTC)
	wantTo := time.Date(2025, time.October, 1, 14, 30, 0, 0, time.UTC)
	if !frepo.gotFrom.Equal(wantFrom) || !frepo.gotTo.Equal(wantTo) {
		t.Fatalf("repo got [%v, %v]; want [%v, %v]", frepo.gotFrom, frepo.gotTo, wantFrom, wantTo)
	}
	if frepo.gotType != models.EventSimulationStart {
		t.Fatalf("repo gotType=%q", frepo.gotType)
	}
}

func TestEventLogService_List_ValidationError(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{}
	svc := NewEventLogService(frepo, nil)

	_, err := svc.List(context.Background(), LogFilter{
		From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange; got %v", err)
	}
	if frepo.calls != 0 {
		t.Fatalf("repo should not be called on validation error, calls=%d", frepo.calls)
	}
}

func TestEventLogService_List_RepoErrorPropagation(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{err: errors.New("db down")}
	svc := NewEventLogService(frepo, nil)

	if _, err := svc.List(context.Background(), LogFilter{}); !errors.Is(err, frepo.err) {
		t.Fatalf("expected repo error to propagate; got %v", err)
	}
}

func TestEventLogService_RecordAlerts(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{appendErr: errors.New("disk full")}
	svc := NewEventLogService(frepo, nil)

	alerts := make(chan models.WastageAlert, 2)
	alerts <- models.WastageAlert{ID: "a1", SensorID: "ROOM1", Zone: "Block A", PowerW: 400, DurationMinutes: 15}
	alerts <- models.WastageAlert{ID: "a2", SensorID: "LAB2", Zone: "CSE Dept", PowerW: 900, DurationMinutes: 15}
	close(alerts)

	svc.RecordAlerts(context.Background(), alerts)

	got := frepo.appended()
	if len(got) != 2 {
		t.Fatalf("want 2 appended events even when appends fail, got %d", len(got))
	}
	if got[0].Type != models.EventWastage || got[0].EventID != "a1" {
		t.Fatalf("unexpected event: %+v", got[0])
	}
	if got[1].Description != "LAB2 in CSE Dept drew 900 W while unoccupied for 15 min" {
		t.Fatalf("unexpected description: %q", got[1].Description)
	}
}

func TestEventLogService_RecordAlerts_StopsOnCancel(t *testing.T) {
	t.Parallel()

	svc := NewEventLogService(&fakeEventRepo{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.RecordAlerts(ctx, make(chan models.WastageAlert))
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RecordAlerts did not return after cancel")
	}
}
