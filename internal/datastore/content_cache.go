// Package datastore provides the version-content cache and the diff-history
// store backing the semantic diff engine.
package datastore

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/lexflow/semdiff/internal/common/errorwrapper"
	"github.com/lexflow/semdiff/internal/config"
)

// ContentCache stores fetched version bodies in SQLite with a fixed TTL.
//
// Entries are write-once per key: the first successful fetch populates the
// row and later writes are ignored. A miss (absent or expired row) triggers
// a refetch, never an error.
type ContentCache struct {
	db     *sql.DB
	ttl    time.Duration
	logger zerolog.Logger
}

// NewContentCache opens (and if needed creates) the cache database.
func NewContentCache(cfg config.CacheConfig, logger zerolog.Logger) (*ContentCache, error) {
	if cfg.SQLitePath == "" {
		return nil, errorwrapper.NewValidationError("sqlite_path", cfg.SQLitePath, "cache database path cannot be empty")
	}

	dbDir := filepath.Dir(cfg.SQLitePath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create cache database directory")
	}

	db, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to open cache database")
	}

	ttlMinutes := cfg.TTLMinutes
	if ttlMinutes <= 0 {
		ttlMinutes = config.DefaultCacheTTLMinutes
	}

	cache := &ContentCache{
		db:     db,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
		logger: logger.With().Str("component", "ContentCache").Logger(),
	}

	if err := cache.initSchema(); err != nil {
		_ = db.Close()
		return nil, errorwrapper.WrapError(err, "failed to initialize cache schema")
	}

	return cache, nil
}

// Close closes the underlying database.
func (c *ContentCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// initSchema creates the version_content table if it doesn't already exist.
func (c *ContentCache) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS version_content (
		document_id TEXT NOT NULL,
		version_id TEXT NOT NULL,
		content TEXT NOT NULL,
		fetched_at INTEGER NOT NULL,
		PRIMARY KEY (document_id, version_id)
	);
	`
	_, err := c.db.Exec(query)
	return err
}

// Get returns the cached content for a version, or found=false on a miss.
// Expired entries count as misses.
func (c *ContentCache) Get(ctx context.Context, versionID, documentID string) (content string, found bool, err error) {
	var fetchedAt int64
	row := c.db.QueryRowContext(ctx,
		`SELECT content, fetched_at FROM version_content WHERE document_id = ? AND version_id = ?`,
		documentID, versionID)

	if err := row.Scan(&content, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, errorwrapper.WrapError(err, "failed to query content cache")
	}

	if time.Since(time.UnixMilli(fetchedAt)) > c.ttl {
		c.logger.Debug().
			Str("document_id", documentID).
			Str("version_id", versionID).
			Msg("Cache entry expired")
		return "", false, nil
	}

	return content, true, nil
}

// Put stores the content for a version. Existing rows are left untouched so
// the first successful fetch wins.
func (c *ContentCache) Put(ctx context.Context, versionID, documentID, content string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO version_content (document_id, version_id, content, fetched_at) VALUES (?, ?, ?, ?)`,
		documentID, versionID, content, time.Now().UnixMilli())
	if err != nil {
		return errorwrapper.WrapError(err, "failed to write content cache entry")
	}
	return nil
}
