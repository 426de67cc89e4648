package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	jserrors "jscore/internal/errors"
	"jscore/internal/fixtures"
)

var checkParallelFlag int

var checkCmd = &cobra.Command{
	Use:   "check <suite>",
	Short: "Run a fixture suite of expected scores",
	Long: `Score every case of a fixture suite and compare with the expected values.

Suites are TOML (.toml) or YAML (.yaml, .yml) files:

  name = "core"
  language = "javascript"

  [[cases]]
  name = "ternary"
  source = "a ? b : c;"
  want = 3

Exits with status 1 when any case fails.`,
	Args: argsRange(1, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context(), args[0], checkParallelFlag, cmd.OutOrStdout())
	},
}

func init() {
	checkCmd.Flags().IntVarP(&checkParallelFlag, "parallel", "p", 0, "Cases scored concurrently (default: GOMAXPROCS)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(ctx context.Context, path string, parallel int, w io.Writer) error {
	suite, err := fixtures.Load(path)
	if err != nil {
		return jserrors.New(jserrors.InputUnreadable, "cannot load suite", err)
	}

	scorer, release := newScorer()
	defer release()

	report, err := fixtures.Run(ctx, scorer, suite, fixtures.RunOptions{
		Parallelism: parallel,
		Logger:      state.logger,
	})
	if err != nil {
		return err
	}

	if err := encode(w, report); err != nil {
		return err
	}
	if !report.OK() {
		return jserrors.New(jserrors.FixtureMismatch,
			fmt.Sprintf("%d of %d cases failed", report.Failed, len(report.Results)), nil).
			WithDetails(map[string]interface{}{"suite": report.Suite})
	}
	return nil
}
