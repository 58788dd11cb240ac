package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktracker/internal/config"
	"tasktracker/internal/exitcode"
	"tasktracker/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasktracker help [command]" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(out, helpText)
		return exitcode.Success
	}

	cmd, ok := DefaultRegistry.Find(args[0])
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
		return exitcode.UserError
	}
	fmt.Fprintf(out, "%s\n\nUsage:\n  %s\n", cmd.Synopsis(), cmd.Usage())
	return exitcode.Success
}

const helpText = `Usage:
  tasktracker                                     List all tasks
  tasktracker add [--desc <text>] [--due <YYYY-MM-DD>] [--priority <p>] <title...>
  tasktracker list [--pending | --done] [--overdue] [--priority <p>]
  tasktracker show <id>
  tasktracker edit [--title <t>] [--desc <d>] [--due <YYYY-MM-DD>] [--priority <p>] <id>
  tasktracker done <id>
  tasktracker rm [--yes] <id>
  tasktracker stats
  tasktracker export [--format json|yaml]
  tasktracker push [--list <list-name>] [--all]
  tasktracker login
  tasktracker logout
  tasktracker help [command]
  tasktracker version

Aliases: create = add, ls = list, complete = done, delete = rm

Priorities: low, medium (default), high

Common flags (accepted by every command):
  --config <dir>   Override config directory
  --file <path>    Use another tasks file
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
