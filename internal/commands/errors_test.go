package commands

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"tasktracker/internal/exitcode"
	"tasktracker/internal/store"
)

func TestParseTaskID(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr string
	}{
		{[]string{"5"}, 5, ""},
		{[]string{"12"}, 12, ""},
		{nil, 0, "task id required"},
		{[]string{""}, 0, "task id required"},
		{[]string{"abc"}, 0, "invalid task id: abc"},
		{[]string{"0"}, 0, "invalid task id: 0"},
		{[]string{"1", "2"}, 0, "unexpected argument: 2"},
	}
	for _, tt := range tests {
		got, err := ParseTaskID(tt.args)
		if tt.wantErr != "" {
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("ParseTaskID(%q) error = %v, want %q", tt.args, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTaskID(%q) unexpected error: %v", tt.args, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTaskID(%q) = %d, want %d", tt.args, got, tt.want)
		}
	}
}

func TestReportError(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{fmt.Errorf("%w: 4", store.ErrNotFound), exitcode.UserError, "error: task not found: 4\n"},
		{store.ErrEmptyTitle, exitcode.UserError, "error: title cannot be empty\n"},
		{ErrTaskIDRequired, exitcode.UserError, "error: task id required\n"},
		{errors.New("write tasks file: disk full"), exitcode.BackendError, "error: storage error: write tasks file: disk full\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if code := reportError(&buf, tt.err); code != tt.wantCode {
			t.Errorf("reportError(%v) = %d, want %d", tt.err, code, tt.wantCode)
		}
		if buf.String() != tt.wantMsg {
			t.Errorf("reportError(%v) printed %q, want %q", tt.err, buf.String(), tt.wantMsg)
		}
	}
}

func TestParseDeadline(t *testing.T) {
	var buf bytes.Buffer
	if d := parseDeadline("2026-12-24", "skipping deadline", &buf); d == nil || d.String() != "2026-12-24" {
		t.Errorf("expected valid date, got %v", d)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected warning %q", buf.String())
	}

	if d := parseDeadline("24.12.2026", "skipping deadline", &buf); d != nil {
		t.Errorf("expected nil for invalid date, got %v", d)
	}
	want := "warning: invalid date \"24.12.2026\" (expected YYYY-MM-DD), skipping deadline\n"
	if buf.String() != want {
		t.Errorf("warning = %q, want %q", buf.String(), want)
	}
}
