package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasktracker/internal/config"
	"tasktracker/internal/exitcode"
	"tasktracker/internal/service"
	"tasktracker/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	due         string
	priority    string
}

// SetOptions sets the flag values (for testing).
func (c *AddCmd) SetOptions(description, due, priority string) {
	c.description = description
	c.due = due
	c.priority = priority
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "tasktracker add [--desc <text>] [--due <YYYY-MM-DD>] [--priority <low|medium|high>] <title...>"
}
func (c *AddCmd) NeedsStore() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// Join args to form title
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	deadline := parseDeadline(c.due, "skipping deadline", errOut)

	priority := cfg.DefaultPriority
	if c.priority != "" {
		priority = task.NormalizePriority(c.priority)
	}

	t, err := svc.Add(task.New(title, strings.TrimSpace(c.description), deadline, priority))
	if err != nil {
		return reportError(errOut, err)
	}
	cfg.Log().Debug("task added", "id", t.ID, "priority", t.Priority)

	if !cfg.Quiet {
		fmt.Fprintf(out, "added %d\n", t.ID)
	}
	return exitcode.Success
}
