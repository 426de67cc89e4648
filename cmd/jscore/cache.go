package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"jscore/internal/complexity"
	jserrors "jscore/internal/errors"
	"jscore/internal/storage"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the score cache",
	Long: `Manage the SQLite score cache enabled by --cache or cache.path.

Cached scores are keyed by source content, language and weight table
version, so an edited file is always scored again.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many scores are cached",
	Args:  argsRange(0, 0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(func(cache *storage.ScoreCache) error {
			stats, err := cache.Stats(cmd.Context())
			if err != nil {
				return jserrors.New(jserrors.InternalError, "cannot read cache", err)
			}
			return encode(cmd.OutOrStdout(), CacheStatsView(*stats))
		})
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached score",
	Args:  argsRange(0, 0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(func(cache *storage.ScoreCache) error {
			n, err := cache.Clear(cmd.Context())
			if err != nil {
				return jserrors.New(jserrors.InternalError, "cannot clear cache", err)
			}
			state.logger.Info("Cleared score cache", "entries", n)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached scores\n", n)
			return nil
		})
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

// CacheStatsView is the output of `jscore cache stats`.
type CacheStatsView storage.CacheStats

// RenderHuman prints the cache location and its entry counts.
func (v CacheStatsView) RenderHuman(w io.Writer) error {
	fmt.Fprintf(w, "Cache: %s\n", v.Path)
	fmt.Fprintf(w, "Entries: %d\n", v.Entries)

	langs := make([]string, 0, len(v.ByLang))
	for lang := range v.ByLang {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		fmt.Fprintf(w, "  %-12s %d\n", lang, v.ByLang[lang])
	}
	return nil
}

func withCache(fn func(*storage.ScoreCache) error) error {
	if state.cachePath == "" {
		return jserrors.New(jserrors.InvalidArgument, "no score cache configured (use --cache or cache.path)", nil)
	}
	db, err := storage.Open(state.cachePath, state.logger)
	if err != nil {
		return jserrors.New(jserrors.InternalError, "cannot open cache", err)
	}
	defer db.Close()
	return fn(storage.NewScoreCache(db))
}

// newScorer returns the scorer for this run, answering from the score cache
// when one is configured. A cache that cannot be opened is logged and skipped.
// The returned func releases the cache.
func newScorer() (storage.SourceScorer, func()) {
	scorer := complexity.NewScorer(complexity.WithLogger(state.logger))
	if state.cachePath == "" {
		return scorer, func() {}
	}

	db, err := storage.Open(state.cachePath, state.logger)
	if err != nil {
		state.logger.Warn("Score cache disabled", "path", state.cachePath, "error", err.Error())
		return scorer, func() {}
	}
	cached := storage.NewCachedScorer(scorer, storage.NewScoreCache(db), state.logger)
	return cached, func() { _ = db.Close() }
}
