package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the on-disk and input format of deadlines.
	DateLayout = "2006-01-02"

	// TimestampLayout is the on-disk format of created_at and completed_at.
	TimestampLayout = "2006-01-02 15:04:05"
)

// ErrInvalidDate is returned when a deadline is not a YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid date format (expected YYYY-MM-DD)")

// Date is a calendar day with no time component.
//
// A Date loaded from storage may hold text that is not a valid date. It is
// kept verbatim so that a later save writes it back unchanged. The zero
// Date holds nothing; 0001-01-01 is a real date.
type Date struct {
	t   time.Time
	set bool
	raw string
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t: t, set: true}, nil
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), set: true}
}

// looseDate keeps unparseable text instead of failing.
func looseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		return Date{raw: s}
	}
	return d
}

// Valid reports whether d holds a real calendar date.
func (d Date) Valid() bool {
	return d.set
}

// Before reports whether d is strictly earlier than other.
// Invalid dates are never before anything.
func (d Date) Before(other Date) bool {
	if !d.Valid() || !other.Valid() {
		return false
	}
	return d.t.Before(other.t)
}

// Time returns midnight UTC of the day, or the zero time when d is invalid.
func (d Date) Time() time.Time {
	if !d.Valid() {
		return time.Time{}
	}
	return d.t
}

func (d Date) String() string {
	if !d.set {
		return d.raw
	}
	return d.t.Format(DateLayout)
}

// Timestamp is a wall-clock instant stored with second precision in local
// time. Like Date, unparseable stored text is retained verbatim.
type Timestamp struct {
	t   time.Time
	set bool
	raw string
}

// NewTimestamp truncates t to the second and converts it to local time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t.Truncate(time.Second).Local(), set: true}
}

func looseTimestamp(s string) Timestamp {
	t, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err == nil {
		return Timestamp{t: t, set: true}
	}
	t, err = time.Parse(time.RFC3339, s)
	if err == nil {
		return NewTimestamp(t)
	}
	return Timestamp{raw: s}
}

// Valid reports whether ts holds a real instant.
func (ts Timestamp) Valid() bool {
	return ts.set
}

// Time returns the instant, or the zero time when ts is invalid.
func (ts Timestamp) Time() time.Time {
	if !ts.Valid() {
		return time.Time{}
	}
	return ts.t
}

func (ts Timestamp) String() string {
	if !ts.set {
		return ts.raw
	}
	return ts.t.Format(TimestampLayout)
}
