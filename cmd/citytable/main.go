package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/citytable/internal/cli"
	"github.com/rshade/citytable/pkg/version"
)

// exitInterrupted is the conventional status for a SIGINT-terminated process.
const exitInterrupted = 130

func run(ctx context.Context, args []string) error {
	root := cli.NewRootCmd(version.String())
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// exitCode maps a command error to a process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return 1
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	os.Exit(exitCode(err))
}
