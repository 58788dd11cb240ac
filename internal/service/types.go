package service

import (
	"time"

	"tasktracker/internal/task"
)

// Changes holds the new values for an edit. An empty string means
// "keep the current value", so a field cannot be cleared through Edit.
type Changes struct {
	Title       string
	Description string
	Deadline    string // YYYY-MM-DD
	Priority    string
}

// IsEmpty reports whether no field would change.
func (c Changes) IsEmpty() bool {
	return c == Changes{}
}

// Status selects tasks by completion state.
type Status int

const (
	AnyStatus Status = iota
	Pending
	Completed
)

// Filter selects tasks for List. The zero Filter matches everything.
type Filter struct {
	Status   Status
	Overdue  bool
	Priority task.Priority // 0 matches any priority
	// Now is the reference time for Overdue; zero means time.Now().
	Now time.Time
}

// Match reports whether t passes the filter.
func (f Filter) Match(t *task.Task) bool {
	switch f.Status {
	case Pending:
		if t.Completed {
			return false
		}
	case Completed:
		if !t.Completed {
			return false
		}
	}
	if f.Priority != 0 && t.Priority != f.Priority {
		return false
	}
	if f.Overdue {
		now := f.Now
		if now.IsZero() {
			now = time.Now()
		}
		if !t.IsOverdueAt(now) {
			return false
		}
	}
	return true
}

// Stats summarizes a task collection.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int

	// Pending tasks by priority.
	PendingHigh   int
	PendingMedium int
	PendingLow    int
}

// Count adds t to the summary. now decides whether t is overdue.
func (s *Stats) Count(t *task.Task, now time.Time) {
	s.Total++
	if t.IsOverdueAt(now) {
		s.Overdue++
	}
	if t.Completed {
		s.Completed++
		return
	}
	s.Pending++
	switch t.Priority {
	case task.High:
		s.PendingHigh++
	case task.Low:
		s.PendingLow++
	default:
		s.PendingMedium++
	}
}

// CompletionRate returns the completed share in percent, 0 for no tasks.
func (s Stats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) * 100 / float64(s.Total)
}

// RemoteList is a list in a remote task service.
type RemoteList struct {
	ID        string
	Title     string
	IsDefault bool
}
