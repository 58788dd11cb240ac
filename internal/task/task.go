// Package task defines the task entity and its storage record.
package task

import (
	"errors"
	"strings"
	"time"
)

// ErrEmptyTitle is returned when a task has no title.
var ErrEmptyTitle = errors.New("title cannot be empty")

// Task is one unit of trackable work.
type Task struct {
	// ID is assigned by the store on first save. Zero means unassigned.
	ID          int
	Title       string
	Description string
	// Deadline is nil when the task has no deadline.
	Deadline  *Date
	Priority  Priority
	Completed bool
	CreatedAt Timestamp
	// CompletedAt is nil until the task is completed.
	CompletedAt *Timestamp
}

// New creates a pending task stamped with the current time.
// An invalid priority is replaced by DefaultPriority.
func New(title, description string, deadline *Date, priority Priority) *Task {
	if !priority.Valid() {
		priority = DefaultPriority
	}
	return &Task{
		Title:       title,
		Description: description,
		Deadline:    deadline,
		Priority:    priority,
		CreatedAt:   NewTimestamp(time.Now()),
	}
}

// Validate checks the fields a caller must supply.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// MarkComplete marks the task completed now.
// See MarkCompleteAt.
func (t *Task) MarkComplete() bool {
	return t.MarkCompleteAt(time.Now())
}

// MarkCompleteAt marks the task completed at the given time and reports
// whether anything changed. A task that is already completed keeps its
// original completion time.
func (t *Task) MarkCompleteAt(at time.Time) bool {
	if t.Completed {
		return false
	}
	ts := NewTimestamp(at)
	t.Completed = true
	t.CompletedAt = &ts
	return true
}

// IsOverdue reports whether the task is overdue today.
func (t *Task) IsOverdue() bool {
	return t.IsOverdueAt(time.Now())
}

// IsOverdueAt reports whether the task is incomplete and its deadline is a
// calendar day strictly before the day of now. Tasks without a valid
// deadline are never overdue.
func (t *Task) IsOverdueAt(now time.Time) bool {
	if t.Completed || t.Deadline == nil {
		return false
	}
	return t.Deadline.Before(DateOf(now))
}
