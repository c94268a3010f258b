// Package history defines recorded clock conversions and their storage interface.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/javiermolinar/berlinclock/internal/clock"
)

// Validation errors.
var (
	ErrInvalidSource = errors.New("source must be 'convert' or 'now'")
	ErrInvalidLimit  = errors.New("limit must be positive")
)

// Source is the command that produced a conversion.
type Source string

const (
	SourceConvert Source = "convert"
	SourceNow     Source = "now"
)

// Valid returns true if the source is a valid value.
func (s Source) Valid() bool {
	switch s {
	case SourceConvert, SourceNow:
		return true
	default:
		return false
	}
}

// Entry is a single recorded conversion.
type Entry struct {
	ID        int64
	Time      clock.Time
	Display   string // textual rendering at the time of conversion
	Source    Source
	CreatedAt time.Time
}

// NewEntry creates an entry for a conversion made at createdAt.
func NewEntry(t clock.Time, source Source, createdAt time.Time) (*Entry, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if !source.Valid() {
		return nil, ErrInvalidSource
	}
	return &Entry{
		Time:      t,
		Display:   clock.Encode(t).String(),
		Source:    source,
		CreatedAt: createdAt,
	}, nil
}

// Filter selects entries to list.
type Filter struct {
	Day   *time.Time // only entries created on this day, nil for all
	Limit int
}

// Repository defines the storage interface for conversion history.
type Repository interface {
	// Record stores an entry and sets its ID.
	Record(ctx context.Context, e *Entry) error

	// List returns entries matching the filter, newest first.
	List(ctx context.Context, f Filter) ([]*Entry, error)

	// Clear removes all entries and returns how many were deleted.
	Clear(ctx context.Context) (int64, error)

	// Close releases any resources held by the repository.
	Close() error
}
