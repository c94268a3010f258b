package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/berlinclock/internal/clock"
	"github.com/javiermolinar/berlinclock/internal/history"
)

func TestRecord(t *testing.T) {
	repo := newTestRepo(t)

	e := mustEntry(t, "13:17:01", history.SourceConvert, time.Date(2025, 1, 9, 10, 0, 0, 0, time.UTC))

	if err := repo.Record(context.Background(), e); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if e.ID == 0 {
		t.Error("expected ID to be set after insert")
	}
}

func TestRecord_InvalidSource(t *testing.T) {
	repo := newTestRepo(t)

	e := mustEntry(t, "13:17:01", history.SourceConvert, time.Now())
	e.Source = "watch"

	err := repo.Record(context.Background(), e)
	if !errors.Is(err, history.ErrInvalidSource) {
		t.Errorf("expected ErrInvalidSource, got %v", err)
	}
}

func TestList_NewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 9, 10, 0, 0, 0, time.UTC)
	inputs := []string{"00:00:00", "13:17:01", "23:59:59"}
	for i, in := range inputs {
		e := mustEntry(t, in, history.SourceConvert, base.Add(time.Duration(i)*time.Minute))
		if err := repo.Record(ctx, e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	entries, err := repo.List(ctx, history.Filter{Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].Time.String() != "23:59:59" {
		t.Errorf("expected newest entry first, got %s", entries[0].Time)
	}
	if entries[2].Time.String() != "00:00:00" {
		t.Errorf("expected oldest entry last, got %s", entries[2].Time)
	}
	if entries[1].Display != "O\nRROO\nRRRO\nYYROOOOOOOO\nYYOO" {
		t.Errorf("unexpected stored display %q", entries[1].Display)
	}
	if !entries[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("unexpected created at %v", entries[0].CreatedAt)
	}
}

func TestList_NewestFirstAcrossOffsetChange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Daylight saving ends at 03:00 CEST: wall clocks go back to 02:00 CET.
	cest := time.FixedZone("CEST", 2*60*60)
	cet := time.FixedZone("CET", 1*60*60)
	before := time.Date(2025, 10, 26, 2, 30, 0, 0, cest) // 00:30Z
	after := time.Date(2025, 10, 26, 2, 10, 0, 0, cet)   // 01:10Z

	for _, e := range []*history.Entry{
		mustEntry(t, "11:11:11", history.SourceConvert, before),
		mustEntry(t, "22:22:22", history.SourceConvert, after),
	} {
		if err := repo.Record(ctx, e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	entries, err := repo.List(ctx, history.Filter{Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].Time.String(); got != "22:22:22" {
		t.Errorf("newest entry = %s, want 22:22:22", got)
	}
	if !entries[0].CreatedAt.Equal(after) {
		t.Errorf("created at = %v, want %v", entries[0].CreatedAt, after)
	}
	if entries[0].CreatedAt.Location() != time.Local {
		t.Errorf("expected created at in local time, got %v", entries[0].CreatedAt.Location())
	}

	day := time.Date(2025, 10, 26, 0, 0, 0, 0, cet)
	entries, err = repo.List(ctx, history.Filter{Day: &day, Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected both entries on their local day, got %d", len(entries))
	}
}

func TestList_Limit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 9, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := mustEntry(t, "12:00:00", history.SourceNow, base.Add(time.Duration(i)*time.Second))
		if err := repo.Record(ctx, e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	entries, err := repo.List(ctx, history.Filter{Limit: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Source != history.SourceNow {
		t.Errorf("expected source now, got %s", entries[0].Source)
	}
}

func TestList_InvalidLimit(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.List(context.Background(), history.Filter{})
	if !errors.Is(err, history.ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestList_FilterByDay(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	day1 := time.Date(2025, 1, 9, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)

	for _, e := range []*history.Entry{
		mustEntry(t, "01:00:00", history.SourceConvert, day1),
		mustEntry(t, "02:00:00", history.SourceConvert, day2),
		mustEntry(t, "03:00:00", history.SourceConvert, day2.Add(time.Hour)),
	} {
		if err := repo.Record(ctx, e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	entries, err := repo.List(ctx, history.Filter{Day: &day, Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries on 2025-01-10, got %d", len(entries))
	}
	for _, e := range entries {
		if e.CreatedAt.Format("2006-01-02") != "2025-01-10" {
			t.Errorf("entry %d from wrong day: %v", e.ID, e.CreatedAt)
		}
	}
}

func TestClear(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Record(ctx, mustEntry(t, "12:00:00", history.SourceConvert, time.Now())); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	n, err := repo.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 deleted, got %d", n)
	}

	entries, err := repo.List(ctx, history.Filter{Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history, got %d entries", len(entries))
	}
}

func TestNew_ReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := repo.Record(ctx, mustEntry(t, "24:00:00", history.SourceConvert, time.Now())); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	_ = repo.Close()

	repo, err = New(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = repo.Close() }()

	entries, err := repo.List(ctx, history.Filter{Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Time != (clock.Time{Hours: 24}) {
		t.Errorf("expected persisted 24:00:00 entry, got %+v", entries)
	}
}

func mustEntry(t *testing.T, input string, source history.Source, at time.Time) *history.Entry {
	t.Helper()

	ct, err := clock.Parse(input)
	if err != nil {
		t.Fatalf("parsing %q: %v", input, err)
	}
	e, err := history.NewEntry(ct, source, at)
	if err != nil {
		t.Fatalf("NewEntry failed: %v", err)
	}
	return e
}

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}
