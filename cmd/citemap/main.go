package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citemap/internal/cli"
	citerrors "github.com/matzehuels/citemap/pkg/errors"
)

// Exit codes. Invalid input, graphs, options and formats share exitUsage so
// scripts can tell a bad invocation from a failed run.
const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitCanceled = 130 // shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx, os.Args[1:])
	code := exitCode(err)
	if code != exitOK && code != exitCanceled {
		report(os.Stderr, err)
	}
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	// main reports errors itself, with the code stripped.
	root.SilenceErrors = true

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// --verbose is applied before the config file is read so that it wins
	// over the file's log level.
	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if loadConfig != nil {
			return loadConfig(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitCanceled
	case citerrors.IsInvalid(err):
		return exitUsage
	default:
		return exitFailure
	}
}

func report(w io.Writer, err error) {
	fmt.Fprintf(w, "citemap: %s\n", citerrors.UserMessage(err))
}
