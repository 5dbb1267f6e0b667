// Command devdir clones every repository of a GitHub account into a local
// development directory.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NicabarNimble/go-devdir/internal/errors"
)

// osExit allows for mocking in tests
var osExit = os.Exit

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devdir",
		Short: "Provision a development directory from a GitHub account",
		Long: `A CLI tool for provisioning a fresh development machine.
It lists the repositories of a GitHub account, filters out excluded names and
clones the rest into a single destination directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newBuildCmd(),
		newConfigCmd(),
	)

	return cmd
}

// exitCode maps the outcome of a command to a process exit status. A
// cancelled run is a normal stop.
func exitCode(err error) int {
	if err == nil || errors.IsCancelled(err) {
		return 0
	}
	return 1
}

func reportError(w io.Writer, err error) {
	if err == nil || errors.IsCancelled(err) {
		return
	}
	if stage := errors.Stage(err); stage != "" {
		fmt.Fprintf(w, "Error (%s stage): %v\n", stage, err)
	} else {
		fmt.Fprintf(w, "Error: %v\n", err)
	}

	var queryErr *errors.CatalogQueryError
	if stderrors.As(err, &queryErr) && queryErr.IsUnauthorized() {
		fmt.Fprintln(w, "Hint: the token was rejected. Check --token, GIT_TOKEN_GITHUB or ~/.git-credentials.")
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	reportError(os.Stderr, err)
	stop()
	osExit(exitCode(err))
}
