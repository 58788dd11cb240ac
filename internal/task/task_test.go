package task_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"tasktracker/internal/task"
)

func mustDate(t *testing.T, s string) *task.Date {
	t.Helper()
	d, err := task.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return &d
}

func TestNew_Defaults(t *testing.T) {
	before := time.Now().Truncate(time.Second)
	tk := task.New("Buy milk", "", nil, 0)

	if tk.ID != 0 {
		t.Errorf("expected unassigned ID, got %d", tk.ID)
	}
	if tk.Priority != task.Medium {
		t.Errorf("expected Medium priority, got %v", tk.Priority)
	}
	if tk.Completed {
		t.Error("expected new task to be pending")
	}
	if tk.CompletedAt != nil {
		t.Error("expected CompletedAt to be nil")
	}
	if tk.Deadline != nil {
		t.Error("expected no deadline")
	}
	if got := tk.CreatedAt.Time(); got.Before(before) {
		t.Errorf("CreatedAt %v is before %v", got, before)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		title string
		want  error
	}{
		{"Buy milk", nil},
		{"", task.ErrEmptyTitle},
		{"   ", task.ErrEmptyTitle},
	}
	for _, tt := range tests {
		err := task.New(tt.title, "", nil, task.Low).Validate()
		if !errors.Is(err, tt.want) {
			t.Errorf("Validate(%q) = %v, want %v", tt.title, err, tt.want)
		}
	}
}

func TestMarkComplete_KeepsFirstTimestamp(t *testing.T) {
	tk := task.New("Write report", "", nil, task.High)

	first := time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)
	if !tk.MarkCompleteAt(first) {
		t.Fatal("expected first completion to change the task")
	}
	if !tk.Completed || tk.CompletedAt == nil {
		t.Fatal("expected task to be completed with a timestamp")
	}

	if tk.MarkCompleteAt(first.Add(48 * time.Hour)) {
		t.Error("expected second completion to be a no-op")
	}
	if !tk.CompletedAt.Time().Equal(first) {
		t.Errorf("completed_at changed: got %v, want %v", tk.CompletedAt.Time(), first)
	}
}

func TestIsOverdueAt(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		deadline  string
		completed bool
		want      bool
	}{
		{"no deadline", "", false, false},
		{"past deadline", "2026-10-17", false, true},
		{"deadline today", "2026-10-18", false, false},
		{"future deadline", "2026-10-19", false, false},
		{"past deadline completed", "2020-01-01", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := task.New("x", "", nil, task.Medium)
			if tt.deadline != "" {
				tk.Deadline = mustDate(t, tt.deadline)
			}
			if tt.completed {
				tk.MarkCompleteAt(now)
			}
			if got := tk.IsOverdueAt(now); got != tt.want {
				t.Errorf("IsOverdueAt = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsOverdueAt_UnparseableDeadline(t *testing.T) {
	bad := "next tuesday"
	tk := task.Deserialize(task.Record{Title: "x", Deadline: &bad})

	if tk.IsOverdueAt(time.Date(2030, 1, 1, 0, 0, 0, 0, time.Local)) {
		t.Error("unparseable deadline must not be overdue")
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	tk := task.New("Buy milk", "two litres", mustDate(t, "2026-11-02"), task.High)
	tk.ID = 42
	tk.MarkCompleteAt(time.Date(2026, 10, 18, 8, 15, 30, 0, time.Local))

	rec := tk.Serialize()
	got := task.Deserialize(rec)

	if got.ID != tk.ID || got.Title != tk.Title || got.Description != tk.Description {
		t.Errorf("identity fields differ: got %+v, want %+v", got, tk)
	}
	if got.Priority != tk.Priority || got.Completed != tk.Completed {
		t.Errorf("state fields differ: got %+v, want %+v", got, tk)
	}
	if got.Deadline == nil || got.Deadline.String() != "2026-11-02" {
		t.Errorf("deadline differs: got %v", got.Deadline)
	}
	if !got.CreatedAt.Time().Equal(tk.CreatedAt.Time()) {
		t.Errorf("created_at differs: got %v, want %v", got.CreatedAt, tk.CreatedAt)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Time().Equal(tk.CompletedAt.Time()) {
		t.Errorf("completed_at differs: got %v, want %v", got.CompletedAt, tk.CompletedAt)
	}
	if again := got.Serialize(); !reflect.DeepEqual(again, rec) {
		t.Errorf("second serialization differs:\n got %+v\nwant %+v", again, rec)
	}
}

func TestSerialize_AbsentFieldsAreNull(t *testing.T) {
	rec := task.New("x", "", nil, task.Low).Serialize()

	if rec.ID != nil {
		t.Errorf("expected nil id, got %d", *rec.ID)
	}
	if rec.Deadline != nil {
		t.Errorf("expected nil deadline, got %q", *rec.Deadline)
	}
	if rec.CompletedAt != nil {
		t.Errorf("expected nil completed_at, got %q", *rec.CompletedAt)
	}
	if rec.CreatedAt == nil {
		t.Error("expected created_at to be set")
	}
	if rec.Priority != "Low" {
		t.Errorf("expected priority Low, got %q", rec.Priority)
	}
}

func TestDeserialize_Defaults(t *testing.T) {
	tk := task.Deserialize(task.Record{})

	if tk.Title != "" || tk.Description != "" {
		t.Errorf("expected empty text fields, got %+v", tk)
	}
	if tk.Priority != task.Medium {
		t.Errorf("expected Medium, got %v", tk.Priority)
	}
	if tk.Completed || tk.CompletedAt != nil || tk.Deadline != nil {
		t.Errorf("expected pending task without dates, got %+v", tk)
	}
}

func TestDeserialize_KeepsMalformedText(t *testing.T) {
	deadline := "31/12/2026"
	created := "yesterday"
	tk := task.Deserialize(task.Record{Title: "x", Deadline: &deadline, CreatedAt: &created, Priority: "urgent"})

	if tk.Priority != task.Medium {
		t.Errorf("unknown priority should load as Medium, got %v", tk.Priority)
	}
	rec := tk.Serialize()
	if rec.Deadline == nil || *rec.Deadline != deadline {
		t.Errorf("deadline not preserved: %v", rec.Deadline)
	}
	if rec.CreatedAt == nil || *rec.CreatedAt != created {
		t.Errorf("created_at not preserved: %v", rec.CreatedAt)
	}
}

func TestDeserialize_YearOneDeadline(t *testing.T) {
	deadline := "0001-01-01"
	tk := task.Deserialize(task.Record{Title: "x", Deadline: &deadline})

	if !tk.Deadline.Valid() {
		t.Fatal("0001-01-01 is a valid date")
	}
	rec := tk.Serialize()
	if rec.Deadline == nil || *rec.Deadline != deadline {
		t.Errorf("deadline = %v, want %q", rec.Deadline, deadline)
	}
	if !tk.IsOverdueAt(time.Date(2026, 10, 18, 0, 0, 0, 0, time.Local)) {
		t.Error("a pending task due in year 1 is overdue")
	}

	var zero task.Date
	if zero.Valid() || zero.String() != "" {
		t.Errorf("zero Date: Valid=%v String=%q", zero.Valid(), zero.String())
	}
}
