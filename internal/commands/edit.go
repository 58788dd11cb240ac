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
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Flags left out (or given an empty
// value) keep the current value; edit cannot clear a field.
type EditCmd struct {
	title       string
	description string
	due         string
	priority    string
}

// SetChanges sets the flag values (for testing).
func (c *EditCmd) SetChanges(title, description, due, priority string) {
	c.title = title
	c.description = description
	c.due = due
	c.priority = priority
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change fields of a task" }
func (c *EditCmd) Usage() string {
	return "tasktracker edit [--title <t>] [--desc <d>] [--due <YYYY-MM-DD>] [--priority <p>] <id>"
}
func (c *EditCmd) NeedsStore() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.title, "t", "", "")
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		return userError(errOut, err)
	}

	// Report unknown ids before warning about the date
	if _, err := svc.Get(id); err != nil {
		return reportError(errOut, err)
	}

	ch := service.Changes{
		Title:       strings.TrimSpace(c.title),
		Description: strings.TrimSpace(c.description),
		Priority:    strings.TrimSpace(c.priority),
	}
	if d := parseDeadline(c.due, "keeping current deadline", errOut); d != nil {
		ch.Deadline = d.String()
	}
	if ch.IsEmpty() {
		cfg.Log().Debug("edit without changes", "id", id)
	}

	if _, err := svc.Edit(id, ch); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
