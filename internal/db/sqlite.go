// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/berlinclock/internal/clock"
	"github.com/javiermolinar/berlinclock/internal/history"
)

const (
	dayLayout = "2006-01-02"

	// created_at is stored in UTC with a fixed width so that it sorts lexically.
	timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// SQLite implements history.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ history.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Record adds a conversion to the history.
func (s *SQLite) Record(ctx context.Context, e *history.Entry) error {
	if !e.Source.Valid() {
		return history.ErrInvalidSource
	}

	query := `
		INSERT INTO conversions (clock_time, display, source, created_day, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		e.Time.String(),
		e.Display,
		e.Source,
		e.CreatedAt.Format(dayLayout),
		e.CreatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting conversion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	e.ID = id

	return nil
}

// List returns recorded conversions, newest first.
func (s *SQLite) List(ctx context.Context, f history.Filter) ([]*history.Entry, error) {
	if f.Limit <= 0 {
		return nil, history.ErrInvalidLimit
	}

	query := `
		SELECT id, clock_time, display, source, created_at
		FROM conversions
	`
	args := []any{}
	if f.Day != nil {
		query += ` WHERE created_day = ?`
		args = append(args, f.Day.Format(dayLayout))
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, f.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*history.Entry
	for rows.Next() {
		var (
			e         history.Entry
			clockTime string
			createdAt string
		)
		if err := rows.Scan(&e.ID, &clockTime, &e.Display, &e.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}

		e.Time, err = clock.Parse(clockTime)
		if err != nil {
			return nil, fmt.Errorf("parsing clock time: %w", err)
		}

		created, err := time.Parse(timestampLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}
		e.CreatedAt = created.In(time.Local)

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversions: %w", err)
	}

	return entries, nil
}

// Clear deletes every recorded conversion.
func (s *SQLite) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM conversions`)
	if err != nil {
		return 0, fmt.Errorf("clearing conversions: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return rows, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
