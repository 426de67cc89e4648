package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	jserrors "jscore/internal/errors"
	"jscore/internal/input"
	"jscore/internal/jsparse"
)

var scoreLangFlag string

var scoreCmd = &cobra.Command{
	Use:   "score [file|-]",
	Short: "Print the readability score of a source file",
	Long: `Parse a JavaScript or TypeScript source and print its readability score.

The language is taken from --lang, then the file extension, then the
configured default. Files ending in .gz or .zst are decompressed first.
With no file, or "-", the source is read from stdin.

Examples:
  jscore score src/app.js
  jscore score --lang=ts < handler.ts
  jscore score --format=json bundle.js.gz`,
	Args: argsRange(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScore(cmd.Context(), pathArg(args), scoreLangFlag, cmd.OutOrStdout())
	},
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreLangFlag, "lang", "l", "", "Source language: javascript, typescript, tsx")
	rootCmd.AddCommand(scoreCmd)
}

// ScoreResult is the output of `jscore score`.
type ScoreResult struct {
	Path     string           `json:"path" yaml:"path" toml:"path"`
	Language jsparse.Language `json:"language" yaml:"language" toml:"language"`
	Score    int              `json:"score" yaml:"score" toml:"score"`
}

// RenderHuman prints the bare score so it can be used in scripts.
func (r ScoreResult) RenderHuman(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Score)
	return err
}

func runScore(ctx context.Context, path, lang string, w io.Writer) error {
	start := time.Now()

	src, resolved, err := loadSource(path, lang)
	if err != nil {
		return err
	}

	scorer, release := newScorer()
	defer release()

	score, err := scorer.ScoreSource(ctx, src.Bytes, resolved)
	if err != nil {
		return err
	}

	state.logger.Info("Scored file",
		"path", src.Path,
		"language", string(resolved),
		"score", score,
		"duration", time.Since(start),
	)
	return encode(w, ScoreResult{Path: src.Path, Language: resolved, Score: score})
}

// loadSource reads path within the configured size limit and resolves the
// language to parse it with.
func loadSource(path, lang string) (*input.Source, jsparse.Language, error) {
	src, err := input.Load(path, state.cfg.Input.MaxFileSizeBytes)
	if err != nil {
		if errors.Is(err, input.ErrTooLarge) {
			return nil, "", err
		}
		return nil, "", jserrors.New(jserrors.InputUnreadable, "cannot read "+path, err)
	}

	resolved, err := src.ResolveLanguage(lang, state.cfg.Language)
	if err != nil {
		return nil, "", err
	}
	return src, resolved, nil
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return input.Stdin
	}
	return args[0]
}
