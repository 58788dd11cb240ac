package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasktracker/internal/backend/googletasks"
	"tasktracker/internal/config"
	"tasktracker/internal/exitcode"
	"tasktracker/internal/service"
)

// RemoteFactory opens the remote a push writes to.
type RemoteFactory func(ctx context.Context, cfg *config.Config) (service.Remote, error)

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command. It copies local tasks into a Google
// Tasks list; the local file is never changed.
type PushCmd struct {
	list   string
	all    bool
	remote RemoteFactory
}

// SetRemoteFactory replaces the Google Tasks client (for testing).
func (c *PushCmd) SetRemoteFactory(f RemoteFactory) {
	c.remote = f
}

// SetOptions sets the flag values (for testing).
func (c *PushCmd) SetOptions(list string, all bool) {
	c.list = list
	c.all = all
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy tasks to Google Tasks" }
func (c *PushCmd) Usage() string     { return "tasktracker push [--list <list-name>] [--all]" }
func (c *PushCmd) NeedsStore() bool  { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.list, "list", "", "")
	fs.StringVar(&c.list, "l", "", "")
	fs.BoolVar(&c.all, "all", false, "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if !cfg.HasOAuthClient() || !cfg.HasToken() {
		fmt.Fprintln(errOut, "error: not logged in (run: tasktracker login)")
		return exitcode.AuthError
	}

	filter := service.Filter{Status: service.Pending}
	if c.all {
		filter.Status = service.AnyStatus
	}
	tasks := svc.List(filter)
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "nothing to push")
		}
		return exitcode.Success
	}

	factory := c.remote
	if factory == nil {
		factory = newGoogleRemote
	}
	remote, err := factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	listName := strings.TrimSpace(c.list)
	if listName == "" {
		listName = strings.TrimSpace(cfg.GoogleList)
	}

	var list service.RemoteList
	if listName == "" {
		list, err = remote.DefaultList(ctx)
	} else {
		list, err = remote.ResolveList(ctx, listName)
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	pushed := 0
	for _, t := range tasks {
		if err := remote.CreateTask(ctx, list.ID, t); err != nil {
			fmt.Fprintf(errOut, "error: push task %d: %v\n", t.ID, err)
			if pushed > 0 && !cfg.Quiet {
				fmt.Fprintf(out, "pushed %d of %d tasks\n", pushed, len(tasks))
			}
			return exitcode.BackendError
		}
		pushed++
		cfg.Log().Debug("pushed task", "id", t.ID, "list", list.Title)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "pushed %d tasks to %s\n", pushed, list.Title)
	}
	return exitcode.Success
}

func newGoogleRemote(ctx context.Context, cfg *config.Config) (service.Remote, error) {
	return googletasks.New(ctx, cfg)
}
