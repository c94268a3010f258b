package clock

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat is returned when input is not a valid hh:mm:ss time.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// Time is a wall-clock time of day. 24:00:00 is accepted as end of day.
type Time struct {
	Hours   int
	Minutes int
	Seconds int
}

// Parse parses a strict "hh:mm:ss" string.
// Every field must be two digits. Hours may be 00-24, minutes and
// seconds 00-59, and hour 24 is only valid as 24:00:00.
func Parse(s string) (Time, error) {
	if len(s) != 8 || s[2] != ':' || s[5] != ':' {
		return Time{}, invalid(s)
	}
	h, okH := twoDigits(s[0:2])
	m, okM := twoDigits(s[3:5])
	sec, okS := twoDigits(s[6:8])
	if !okH || !okM || !okS {
		return Time{}, invalid(s)
	}

	t := Time{Hours: h, Minutes: m, Seconds: sec}
	if err := t.Validate(); err != nil {
		return Time{}, invalid(s)
	}
	return t, nil
}

// FromTime returns the time of day of t in its location.
func FromTime(t time.Time) Time {
	return Time{Hours: t.Hour(), Minutes: t.Minute(), Seconds: t.Second()}
}

// Validate checks the field ranges.
func (t Time) Validate() error {
	switch {
	case t.Hours < 0 || t.Hours > 24:
		return fmt.Errorf("%w: hours out of range: %d", ErrInvalidTimeFormat, t.Hours)
	case t.Minutes < 0 || t.Minutes > 59:
		return fmt.Errorf("%w: minutes out of range: %d", ErrInvalidTimeFormat, t.Minutes)
	case t.Seconds < 0 || t.Seconds > 59:
		return fmt.Errorf("%w: seconds out of range: %d", ErrInvalidTimeFormat, t.Seconds)
	case t.Hours == 24 && (t.Minutes != 0 || t.Seconds != 0):
		return fmt.Errorf("%w: hour 24 only allowed as 24:00:00", ErrInvalidTimeFormat)
	}
	return nil
}

// String returns the time in "hh:mm:ss" format.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}

func invalid(s string) error {
	return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
}

func twoDigits(s string) (int, bool) {
	if len(s) != 2 {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}
