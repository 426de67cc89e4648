package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"jscore/internal/complexity"
	"jscore/internal/estree"
)

var (
	explainLangFlag  string
	explainTraceFlag bool
)

var explainCmd = &cobra.Command{
	Use:   "explain [file|-]",
	Short: "Show which constructs a score comes from",
	Long: `Score a source like "jscore score" and break the total down by node type.

With --trace, every node that adds points is printed to stderr in visit
order together with the running total.

Examples:
  jscore explain src/app.js
  jscore explain --format=yaml src/app.ts
  jscore explain --trace src/app.js`,
	Args: argsRange(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var trace io.Writer
		if explainTraceFlag {
			trace = cmd.ErrOrStderr()
		}
		return runExplain(cmd.Context(), pathArg(args), explainLangFlag, cmd.OutOrStdout(), trace)
	},
}

func init() {
	explainCmd.Flags().StringVarP(&explainLangFlag, "lang", "l", "", "Source language: javascript, typescript, tsx")
	explainCmd.Flags().BoolVar(&explainTraceFlag, "trace", false, "Print every node that adds points")
	rootCmd.AddCommand(explainCmd)
}

func runExplain(ctx context.Context, path, lang string, w, trace io.Writer) error {
	src, resolved, err := loadSource(path, lang)
	if err != nil {
		return err
	}

	opts := []complexity.Option{complexity.WithLogger(state.logger)}
	if trace != nil {
		total := 0
		opts = append(opts, complexity.WithHook(func(n *estree.Node, points int) {
			if points == 0 {
				return
			}
			total += points
			fmt.Fprintf(trace, "%-28s +%d  = %d\n", n.Type, points, total)
		}))
	}

	report, err := complexity.NewScorer(opts...).Explain(ctx, src.Bytes, resolved)
	if err != nil {
		return err
	}
	return encode(w, report)
}
