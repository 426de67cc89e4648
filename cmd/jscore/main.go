package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	jserrors "jscore/internal/errors"
	"jscore/internal/output"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit status.
func execute(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer state.close()

	bindContext(rootCmd, ctx)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	jerr := jserrors.Classify(err)
	state.logger.Debug("Command failed", "code", string(jerr.Code), "error", err.Error())
	reportError(stderr, jerr, state.format)
	return jerr.ExitCode()
}

// bindContext gives every command in the tree ctx. cobra only hands the root
// context down to subcommands that have none yet, so a second run in the same
// process would otherwise see the first run's cancelled context.
func bindContext(cmd *cobra.Command, ctx context.Context) {
	cmd.SetContext(ctx)
	for _, sub := range cmd.Commands() {
		bindContext(sub, ctx)
	}
}

// reportError prints err on stderr, as JSON when machine output was requested.
func reportError(w io.Writer, err *jserrors.JscoreError, format output.Format) {
	if format == output.FormatJSON {
		if encErr := output.Encode(w, map[string]interface{}{"error": err}, format); encErr == nil {
			return
		}
	}

	fmt.Fprintf(w, "Error: %s\n", err.Error())
	for _, fix := range err.SuggestedFixes {
		if fix.Command != "" {
			fmt.Fprintf(w, "  try: %s  (%s)\n", fix.Command, fix.Description)
		} else {
			fmt.Fprintf(w, "  %s\n", fix.Description)
		}
	}
}
