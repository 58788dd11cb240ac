package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktracker/internal/config"
	"tasktracker/internal/exitcode"
	"tasktracker/internal/output"
	"tasktracker/internal/service"
	"tasktracker/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. It is also what runs when
// tasktracker is called without arguments.
type ListCmd struct {
	clock
	pending  bool
	done     bool
	overdue  bool
	priority string
}

// SetFilter sets the filter flags (for testing).
func (c *ListCmd) SetFilter(pending, done, overdue bool, priority string) {
	c.pending = pending
	c.done = done
	c.overdue = overdue
	c.priority = priority
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "tasktracker list [--pending | --done] [--overdue] [--priority <p>]"
}
func (c *ListCmd) NeedsStore() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.pending, "pending", false, "")
	fs.BoolVar(&c.done, "done", false, "")
	fs.BoolVar(&c.overdue, "overdue", false, "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.pending && c.done {
		fmt.Fprintln(errOut, "error: cannot use both --pending and --done")
		return exitcode.UserError
	}

	now := c.Now()
	filter := service.Filter{Overdue: c.overdue, Now: now}
	switch {
	case c.pending:
		filter.Status = service.Pending
	case c.done:
		filter.Status = service.Completed
	}
	if c.priority != "" {
		p, err := task.ParsePriority(c.priority)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		filter.Priority = p
	}

	tasks := svc.List(filter)
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for _, t := range tasks {
		output.FormatTask(out, t, now)
	}
	return exitcode.Success
}
