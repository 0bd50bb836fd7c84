// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists clipped pages in SQLite and indexes their
// Markdown with FTS5.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/html2md/pkg/types"
)

// ErrNotFound is returned when no clip is stored for a URL.
var ErrNotFound = errors.New("clip not found")

const defaultMaxResults = 20

// timeLayout is fixed-width so clipped_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the clip index database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the clip index at path, creating parent
// directories and the schema as needed. maxResults bounds Search when the
// query gives no limit; zero means 20.
func Open(path string, maxResults int) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	s := &Store{db: db, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS clips (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			title TEXT,
			path TEXT,
			status TEXT NOT NULL,
			clipped_at TEXT NOT NULL,
			markdown TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clips_clipped_at ON clips(clipped_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='clips_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE clips_fts USING fts5(title, markdown, content=clips, content_rowid=rowid)`,
		`CREATE TRIGGER clips_ai AFTER INSERT ON clips BEGIN
			INSERT INTO clips_fts(rowid, title, markdown) VALUES (new.rowid, new.title, new.markdown);
		END`,
		`CREATE TRIGGER clips_ad AFTER DELETE ON clips BEGIN
			INSERT INTO clips_fts(clips_fts, rowid, title, markdown) VALUES('delete', old.rowid, old.title, old.markdown);
		END`,
		`CREATE TRIGGER clips_au AFTER UPDATE ON clips BEGIN
			INSERT INTO clips_fts(clips_fts, rowid, title, markdown) VALUES('delete', old.rowid, old.title, old.markdown);
			INSERT INTO clips_fts(rowid, title, markdown) VALUES (new.rowid, new.title, new.markdown);
		END`,
	}
	for _, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	return nil
}

// Has reports whether a clip for url has been stored successfully.
func (s *Store) Has(ctx context.Context, url string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM clips WHERE url = ? AND status = ?`, url, string(types.ClipDone),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("looking up %s: %w", url, err)
	}
	return n > 0, nil
}

// Put inserts or replaces the clip for c.URL.
func (s *Store) Put(ctx context.Context, c types.Clip) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO clips (url, name, title, path, status, clipped_at, markdown)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			name = excluded.name,
			title = excluded.title,
			path = excluded.path,
			status = excluded.status,
			clipped_at = excluded.clipped_at,
			markdown = excluded.markdown`,
		c.URL, c.Name, c.Title, c.Path, string(c.Status),
		c.ClippedAt.UTC().Format(timeLayout), c.Markdown,
	)
	if err != nil {
		return fmt.Errorf("storing clip %s: %w", c.URL, err)
	}
	return nil
}

// Get returns the stored clip for url, Markdown included.
func (s *Store) Get(ctx context.Context, url string) (*types.Clip, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT url, name, title, path, status, clipped_at, markdown FROM clips WHERE url = ?`, url)
	c, err := scanClip(row.Scan, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", url, err)
	}
	return c, nil
}

// Delete removes the clip for url. Deleting a missing clip is not an error.
func (s *Store) Delete(ctx context.Context, url string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM clips WHERE url = ?`, url); err != nil {
		return fmt.Errorf("deleting %s: %w", url, err)
	}
	return nil
}

func scanClip(scan func(dest ...any) error, withMarkdown bool, extra ...any) (*types.Clip, error) {
	var (
		c         types.Clip
		title     sql.NullString
		path      sql.NullString
		status    string
		clippedAt string
		markdown  string
	)
	dest := []any{&c.URL, &c.Name, &title, &path, &status, &clippedAt}
	if withMarkdown {
		dest = append(dest, &markdown)
	}
	dest = append(dest, extra...)
	if err := scan(dest...); err != nil {
		return nil, err
	}
	c.Title = title.String
	c.Path = path.String
	c.Status = types.ClipStatus(status)
	c.Markdown = markdown
	if t, err := time.Parse(time.RFC3339Nano, clippedAt); err == nil {
		c.ClippedAt = t
	}
	return &c, nil
}
