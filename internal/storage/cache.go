package storage

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/crypto/blake2b"

	"jscore/internal/complexity"
	"jscore/internal/jsparse"
)

// CacheStats summarizes the contents of the score cache.
type CacheStats struct {
	Path    string         `json:"path" yaml:"path" toml:"path"`
	Entries int            `json:"entries" yaml:"entries" toml:"entries"`
	ByLang  map[string]int `json:"byLanguage" yaml:"byLanguage" toml:"byLanguage"`
}

// ScoreCache stores scores keyed by source content.
type ScoreCache struct {
	db *DB
}

// NewScoreCache creates a score cache on db
func NewScoreCache(db *DB) *ScoreCache {
	return &ScoreCache{db: db}
}

// Key returns the cache key of source parsed as lang. The key covers the
// weight table and lowering versions, so a changed table or tree shape never
// reuses old scores.
func Key(source []byte, lang jsparse.Language) string {
	return versionedKey(schemaVersion(complexity.WeightsVersion, jsparse.LoweringVersion), source, lang)
}

func schemaVersion(weights, lowering int) string {
	return "w" + strconv.Itoa(weights) + ".l" + strconv.Itoa(lowering)
}

func versionedKey(version string, source []byte, lang jsparse.Language) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(version))
	h.Write([]byte{0})
	h.Write([]byte(lang))
	h.Write([]byte{0})
	h.Write(source)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached score for key. The bool is false on a miss.
func (c *ScoreCache) Get(ctx context.Context, key string) (int, bool, error) {
	var score int
	err := c.db.conn.QueryRowContext(ctx,
		"SELECT score FROM score_cache WHERE key = ?", key).Scan(&score)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("score cache lookup failed: %w", err)
	}
	return score, true, nil
}

// Put stores score under key
func (c *ScoreCache) Put(ctx context.Context, key string, lang jsparse.Language, score int) error {
	_, err := c.db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO score_cache (key, language, score, created_at)
		VALUES (?, ?, ?, ?)
	`, key, string(lang), score, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to store score: %w", err)
	}
	return nil
}

// Stats counts cached entries per language.
func (c *ScoreCache) Stats(ctx context.Context) (*CacheStats, error) {
	rows, err := c.db.conn.QueryContext(ctx,
		"SELECT language, COUNT(*) FROM score_cache GROUP BY language ORDER BY language")
	if err != nil {
		return nil, fmt.Errorf("failed to read cache stats: %w", err)
	}
	defer rows.Close()

	stats := &CacheStats{Path: c.db.Path(), ByLang: make(map[string]int)}
	for rows.Next() {
		var lang string
		var n int
		if err := rows.Scan(&lang, &n); err != nil {
			return nil, err
		}
		stats.ByLang[lang] = n
		stats.Entries += n
	}
	return stats, rows.Err()
}

// Clear removes every cached score and returns how many were removed.
func (c *ScoreCache) Clear(ctx context.Context) (int64, error) {
	res, err := c.db.conn.ExecContext(ctx, "DELETE FROM score_cache")
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	return res.RowsAffected()
}

// SourceScorer is the scoring surface wrapped by CachedScorer.
type SourceScorer interface {
	ScoreSource(ctx context.Context, source []byte, lang jsparse.Language) (int, error)
}

// CachedScorer answers from the cache and falls back to the wrapped scorer.
// Failed scorings are not cached. Cache errors are logged and otherwise
// ignored; they never change the score.
type CachedScorer struct {
	scorer SourceScorer
	cache  *ScoreCache
	logger *slog.Logger
}

// NewCachedScorer wraps scorer with cache
func NewCachedScorer(scorer SourceScorer, cache *ScoreCache, logger *slog.Logger) *CachedScorer {
	return &CachedScorer{scorer: scorer, cache: cache, logger: logger}
}

// ScoreSource implements SourceScorer.
func (s *CachedScorer) ScoreSource(ctx context.Context, source []byte, lang jsparse.Language) (int, error) {
	key := Key(source, lang)

	score, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Score cache unavailable", "error", err.Error())
	} else if ok {
		s.logger.Debug("Score cache hit", "key", key[:12], "score", score)
		return score, nil
	}

	score, err = s.scorer.ScoreSource(ctx, source, lang)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Put(ctx, key, lang, score); err != nil {
		s.logger.Warn("Score cache unavailable", "error", err.Error())
	}
	return score, nil
}
