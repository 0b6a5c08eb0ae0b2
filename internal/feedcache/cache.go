package feedcache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; a mismatched cache is simply stale and safe to delete.
const schemaVersion = 1

// ErrSchemaMismatch indicates the cache database was written by a
// different schema version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Cache is a SQLite-backed store of raw feed bodies keyed by URL.
type Cache struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the cache database at path, creating
// parent directories as needed.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	cache := &Cache{db: db, path: path}
	if err := cache.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cache, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached body for url when one exists and was fetched
// within ttl of now. A ttl of zero disables the freshness check.
func (c *Cache) Get(ctx context.Context, url string, ttl time.Duration) ([]byte, bool, error) {
	var (
		body      []byte
		fetchedAt string
	)
	row := c.db.QueryRowContext(ctx, `SELECT body, fetched_at FROM feed_bodies WHERE url = ?`, url)
	if err := row.Scan(&body, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read cached feed: %w", err)
	}

	if ttl > 0 {
		fetched, err := time.Parse(time.RFC3339Nano, fetchedAt)
		if err != nil {
			return nil, false, fmt.Errorf("parse fetched_at: %w", err)
		}
		if time.Since(fetched) > ttl {
			return nil, false, nil
		}
	}
	return body, true, nil
}

// Put stores body for url, replacing any earlier copy.
func (c *Cache) Put(ctx context.Context, url string, body []byte) error {
	_, err := c.db.ExecContext(
		ctx,
		`INSERT INTO feed_bodies (url, body, fetched_at) VALUES (?, ?, ?)
         ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		url,
		body,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store feed body: %w", err)
	}
	return nil
}

// Clear removes every cached body.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM feed_bodies`)
	if err != nil {
		return 0, fmt.Errorf("clear feed cache: %w", err)
	}
	return res.RowsAffected()
}

func (c *Cache) initSchema(ctx context.Context) error {
	var tableExists int
	err := c.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return c.createSchema(ctx)
	}

	var version int
	err = c.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: cache has version %d, expected %d (delete %s)",
			ErrSchemaMismatch, version, schemaVersion, c.path)
	}
	return nil
}

func (c *Cache) createSchema(ctx context.Context) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}
