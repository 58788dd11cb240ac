package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"tasktracker/internal/config"
	"tasktracker/internal/exitcode"
	"tasktracker/internal/service"
	"tasktracker/internal/task"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command. It writes every task record to
// stdout, in file order.
type ExportCmd struct {
	format string
}

// SetFormat sets the --format flag (for testing).
func (c *ExportCmd) SetFormat(format string) {
	c.format = format
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Write all tasks as JSON or YAML" }
func (c *ExportCmd) Usage() string     { return "tasktracker export [--format json|yaml]" }
func (c *ExportCmd) NeedsStore() bool  { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", formatJSON, "")
	fs.StringVar(&c.format, "f", formatJSON, "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	tasks := svc.List(service.Filter{})
	records := make([]task.Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, t.Serialize())
	}

	var err error
	switch strings.ToLower(strings.TrimSpace(c.format)) {
	case "", formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "    ")
		err = enc.Encode(records)
	case formatYAML, "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		err = enc.Encode(records)
		if err == nil {
			err = enc.Close()
		}
	default:
		fmt.Fprintf(errOut, "error: unknown format %q (expected json or yaml)\n", c.format)
		return exitcode.UserError
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: export failed: %v\n", err)
		return exitcode.BackendError
	}

	cfg.Log().Debug("exported tasks", "count", len(records), "format", c.format)
	return exitcode.Success
}
