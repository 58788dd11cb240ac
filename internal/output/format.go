// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"tasktracker/internal/service"
	"tasktracker/internal/task"
)

// OverdueMarker is appended to the line of an overdue task.
const OverdueMarker = "OVERDUE"

// FormatTask formats one task line.
// Format: "{ID:>4}  [x] {TITLE}  ({PRIORITY}[, due {DATE}])[  OVERDUE]\n"
func FormatTask(w io.Writer, t *task.Task, now time.Time) {
	mark := "[ ]"
	if t.Completed {
		mark = "[x]"
	}

	meta := t.Priority.String()
	if t.Deadline != nil {
		meta += ", due " + t.Deadline.String()
	}

	line := fmt.Sprintf("%4d  %s %s  (%s)", t.ID, mark, normalizeTitle(t.Title), meta)
	if t.IsOverdueAt(now) {
		line += "  " + OverdueMarker
	}
	fmt.Fprintln(w, line)
}

// FormatTaskDetail prints every field of a task, one per line.
func FormatTaskDetail(w io.Writer, t *task.Task, now time.Time) {
	deadline := "none"
	if t.Deadline != nil {
		deadline = t.Deadline.String()
	}

	status := "pending"
	switch {
	case t.Completed:
		status = "completed"
	case t.IsOverdueAt(now):
		status = "overdue"
	}

	field(w, "id", fmt.Sprint(t.ID))
	field(w, "title", normalizeTitle(t.Title))
	if t.Description != "" {
		field(w, "description", t.Description)
	}
	field(w, "priority", t.Priority.String())
	field(w, "deadline", deadline)
	field(w, "status", status)
	field(w, "created", t.CreatedAt.String())
	if t.CompletedAt != nil {
		field(w, "completed", t.CompletedAt.String())
	}
}

// FormatStats prints a collection summary. The completion rate is left out
// for an empty collection and the priority breakdown when nothing is pending.
func FormatStats(w io.Writer, st service.Stats) {
	const width = 17
	statField := func(key string, value any) {
		fmt.Fprintf(w, "%-*s %v\n", width, key+":", value)
	}

	statField("total", st.Total)
	statField("completed", st.Completed)
	statField("pending", st.Pending)
	if st.Total > 0 {
		statField("completion rate", fmt.Sprintf("%.1f%%", st.CompletionRate()))
	}
	statField("overdue", st.Overdue)
	if st.Pending > 0 {
		statField("pending high", st.PendingHigh)
		statField("pending medium", st.PendingMedium)
		statField("pending low", st.PendingLow)
	}
}

func field(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%-12s %s\n", key+":", value)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
