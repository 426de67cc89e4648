package complexity

import (
	"context"
	"log/slog"
	"time"

	"jscore/internal/estree"
	"jscore/internal/jsparse"
	"jscore/internal/slogutil"
)

// SourceParser produces an ESTree Program from source text.
type SourceParser interface {
	Parse(ctx context.Context, source []byte, lang jsparse.Language) (*estree.Node, error)
}

// Hook observes every visited node with its contribution. It has no effect
// on the score.
type Hook func(n *estree.Node, points int)

// Scorer computes readability scores for source text.
// A Scorer holds no per-call state and may be used concurrently.
type Scorer struct {
	parser SourceParser
	logger *slog.Logger
	hook   Hook
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithParser replaces the default tree-sitter parser.
func WithParser(p SourceParser) Option {
	return func(s *Scorer) { s.parser = p }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scorer) { s.logger = l }
}

// WithHook installs a visit hook called for every node of every scored tree.
func WithHook(h Hook) Option {
	return func(s *Scorer) { s.hook = h }
}

// NewScorer creates a new Scorer.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		parser: jsparse.NewParser(),
		logger: slogutil.NewDiscardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns the score of an already-parsed tree.
func Score(root *estree.Node) int {
	return fold(root, nil, 0, nil)
}

// ScoreSource parses source and scores it. Parse failures are returned
// exactly as the parser reported them.
func (s *Scorer) ScoreSource(ctx context.Context, source []byte, lang jsparse.Language) (int, error) {
	start := time.Now()

	root, err := s.parser.Parse(ctx, source, lang)
	if err != nil {
		return 0, err
	}

	score := fold(root, nil, 0, s.visitHook(ctx))

	s.logger.Debug("Scored source",
		"language", string(lang),
		"bytes", len(source),
		"score", score,
		"duration", time.Since(start),
	)
	return score, nil
}

// fold adds the contribution of n and all of its descendants to total.
func fold(n, parent *estree.Node, total int, hook Hook) int {
	if n == nil {
		return total
	}

	points := weigh(n, parent)
	if hook != nil {
		hook(n, points)
	}
	total += points

	for _, child := range n.Children {
		total = fold(child, n, total, hook)
	}
	return total
}

// visitHook combines the configured hook with debug logging of scored nodes.
// It returns nil when there is nothing to call.
func (s *Scorer) visitHook(ctx context.Context) Hook {
	hooks := make([]Hook, 0, 2)
	if s.hook != nil {
		hooks = append(hooks, s.hook)
	}
	if s.logger.Enabled(ctx, slog.LevelDebug) {
		logger := s.logger
		hooks = append(hooks, func(n *estree.Node, points int) {
			if points > 0 {
				logger.Debug("Node scored", "type", string(n.Type), "points", points)
			}
		})
	}

	switch len(hooks) {
	case 0:
		return nil
	case 1:
		return hooks[0]
	}
	return func(n *estree.Node, points int) {
		for _, h := range hooks {
			h(n, points)
		}
	}
}
