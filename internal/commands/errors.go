package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"tasktracker/internal/exitcode"
	"tasktracker/internal/store"
	"tasktracker/internal/task"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the single task id argument of done, edit, rm and show.
func ParseTaskID(args []string) (int, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return 0, ErrTaskIDRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}
	return store.ParseID(args[0])
}

// reportError prints err and maps it to an exit code. Named store failures
// are user errors; everything else comes from the filesystem.
func reportError(errOut io.Writer, err error) int {
	if store.IsUserError(err) || errors.Is(err, ErrTaskIDRequired) {
		return userError(errOut, err)
	}
	fmt.Fprintf(errOut, "error: storage error: %v\n", err)
	return exitcode.BackendError
}

// userError prints err as a user error.
func userError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}

// parseDeadline validates a --due value. An invalid date is never fatal:
// a warning naming the fallback is printed and nil is returned.
func parseDeadline(s, fallback string, errOut io.Writer) *task.Date {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d, err := task.ParseDate(s)
	if err != nil {
		fmt.Fprintf(errOut, "warning: invalid date %q (expected YYYY-MM-DD), %s\n", s, fallback)
		return nil
	}
	return &d
}

// clock is embedded by commands whose output depends on the current day.
type clock struct {
	now func() time.Time
}

// SetClock replaces time.Now (for testing).
func (c *clock) SetClock(now func() time.Time) {
	c.now = now
}

func (c *clock) Now() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}
