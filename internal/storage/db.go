// Package storage persists computed scores in a SQLite cache so unchanged
// sources are not parsed again.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// dbSchemaVersion is the current version of the cache schema.
const dbSchemaVersion = 1

// DB represents a database connection to the score cache
type DB struct {
	conn   *sql.DB
	logger *slog.Logger
	dbPath string
}

// Open opens or creates the SQLite database at path, creating parent
// directories and the schema as needed.
func Open(path string, logger *slog.Logger) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	db := &DB{conn: conn, logger: logger, dbPath: path}
	if err := db.initializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Debug("Opened score cache", "path", path)
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.dbPath
}

// WithTx executes fn within a transaction. The transaction is rolled back
// when fn returns an error and committed otherwise.
func (db *DB) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Error("Failed to rollback transaction",
				"error", err.Error(),
				"rollback_error", rbErr.Error(),
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// initializeSchema creates the tables on a new database and resets the cache
// when an existing one was written with a different schema version.
func (db *DB) initializeSchema() error {
	return db.WithTx(context.Background(), func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER NOT NULL
			)
		`); err != nil {
			return err
		}

		var version int
		err := tx.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
		switch {
		case err == sql.ErrNoRows:
		case err != nil:
			return err
		case version == dbSchemaVersion:
			return nil
		default:
			db.logger.Info("Resetting score cache", "from_version", version, "to_version", dbSchemaVersion)
			if _, err := tx.Exec("DROP TABLE IF EXISTS score_cache"); err != nil {
				return err
			}
		}

		if _, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS score_cache (
				key TEXT PRIMARY KEY,
				language TEXT NOT NULL,
				score INTEGER NOT NULL,
				created_at TEXT NOT NULL
			)
		`); err != nil {
			return err
		}
		if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
			return err
		}
		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", dbSchemaVersion)
		return err
	})
}
