package langcache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"streamsift/internal/logging"
)

//go:embed schema.sql
var schemaSQL string

// timestampLayout is fixed-width so cached_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// schemaVersion is the current schema version. Bump this when the schema changes.
const schemaVersion = 1

var (
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
	// ErrNotFound reports a Remove for an identity that is not cached.
	ErrNotFound = errors.New("identity not cached")
)

// Entry is one cached resolution.
type Entry struct {
	Identity string
	Language string // ISO 639-1
	Source   string // radarr, sonarr, tmdb, or manual
	IMDbID   string
	Title    string
	CachedAt time.Time
}

// Cache stores resolved languages in SQLite. A nil *Cache is a valid,
// permanently empty cache.
type Cache struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open initializes or connects to the cache database at path.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Cache, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("cache path required")
	}
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
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	cache := &Cache{
		db:     db,
		path:   path,
		logger: logging.NewComponentLogger(logger, "langcache"),
	}
	if err := cache.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cache, nil
}

// Path returns the database location.
func (c *Cache) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
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
	if err := c.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s)",
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

// Lookup returns the cached entry for identity.
func (c *Cache) Lookup(ctx context.Context, identity string) (Entry, bool, error) {
	identity = strings.TrimSpace(identity)
	if c == nil || identity == "" {
		return Entry{}, false, nil
	}
	row := c.db.QueryRowContext(ctx,
		`SELECT identity, language, source, imdb_id, title, cached_at FROM languages WHERE identity = ?`,
		identity,
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("lookup %q: %w", identity, err)
	}
	return entry, true, nil
}

// Store adds or replaces an entry.
func (c *Cache) Store(ctx context.Context, entry Entry) error {
	entry.Identity = strings.TrimSpace(entry.Identity)
	entry.Language = strings.ToLower(strings.TrimSpace(entry.Language))
	if entry.Identity == "" {
		return errors.New("identity cannot be empty")
	}
	if entry.Language == "" {
		return errors.New("language cannot be empty")
	}
	if c == nil {
		return nil
	}
	if entry.CachedAt.IsZero() {
		entry.CachedAt = time.Now()
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO languages (identity, language, source, imdb_id, title, cached_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(identity) DO UPDATE SET
            language = excluded.language,
            source = excluded.source,
            imdb_id = excluded.imdb_id,
            title = excluded.title,
            cached_at = excluded.cached_at`,
		entry.Identity,
		entry.Language,
		entry.Source,
		entry.IMDbID,
		entry.Title,
		entry.CachedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("store %q: %w", entry.Identity, err)
	}

	c.logger.Debug("cached native language",
		logging.String("identity", entry.Identity),
		logging.String("language", entry.Language),
		logging.String("source", entry.Source))
	return nil
}

// Remove deletes the entry for identity.
func (c *Cache) Remove(ctx context.Context, identity string) error {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return errors.New("identity cannot be empty")
	}
	if c == nil {
		return nil
	}
	res, err := c.db.ExecContext(ctx, `DELETE FROM languages WHERE identity = ?`, identity)
	if err != nil {
		return fmt.Errorf("remove %q: %w", identity, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, identity)
	}
	c.logger.Debug("removed cached language", logging.String("identity", identity))
	return nil
}

// List returns all entries, newest first.
func (c *Cache) List(ctx context.Context) ([]Entry, error) {
	if c == nil {
		return nil, nil
	}
	rows, err := c.db.QueryContext(ctx,
		`SELECT identity, language, source, imdb_id, title, cached_at FROM languages ORDER BY cached_at DESC, identity`,
	)
	if err != nil {
		return nil, fmt.Errorf("list cache: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Clear removes every entry and returns how many were deleted.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	if c == nil {
		return 0, nil
	}
	res, err := c.db.ExecContext(ctx, `DELETE FROM languages`)
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	removed, _ := res.RowsAffected()
	c.logger.Debug("cleared language cache", logging.Int64("removed", removed))
	return removed, nil
}

// Count returns the number of cached entries.
func (c *Cache) Count(ctx context.Context) (int, error) {
	if c == nil {
		return 0, nil
	}
	var count int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM languages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count cache: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		entry    Entry
		cachedAt string
	)
	if err := row.Scan(&entry.Identity, &entry.Language, &entry.Source, &entry.IMDbID, &entry.Title, &cachedAt); err != nil {
		return Entry{}, err
	}
	if ts, err := time.Parse(timestampLayout, cachedAt); err == nil {
		entry.CachedAt = ts
	}
	return entry, nil
}
