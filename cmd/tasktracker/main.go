// Package main is the entry point for the tasktracker CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tasktracker/internal/cli"
	"tasktracker/internal/commands"
)

func main() {
	// Cancelled on interrupt so login and push stop waiting
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.OpenStore)
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
