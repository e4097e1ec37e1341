package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const DefaultSQLitePath = "data/cleva.db"

// Store records completed dataset fetches so operators can see which
// versions are present in the cache and when they arrived.
type Store struct {
	db *sql.DB
}

// Fetch is one completed download-and-extract of a dataset version.
type Fetch struct {
	ID        int64
	Version   string
	URL       string
	Dir       string
	Files     int
	FetchedAt time.Time
}

func NewStore(dbPath string) (*Store, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, errors.New("manifest: empty db path")
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("manifest: create db dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open db: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("manifest: ping db: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("manifest: nil db")
	}

	stmts := []string{
		`PRAGMA foreign_keys = ON`,
		`PRAGMA journal_mode = WAL`,
		`CREATE TABLE IF NOT EXISTS fetches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			version TEXT NOT NULL,
			url TEXT NOT NULL,
			dir TEXT NOT NULL,
			files INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetches_version ON fetches(version)`,
		`CREATE INDEX IF NOT EXISTS idx_fetches_fetched_at ON fetches(fetched_at)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("manifest: init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Record(ctx context.Context, f *Fetch) error {
	if s == nil || s.db == nil {
		return errors.New("manifest: nil store")
	}
	if ctx == nil {
		return errors.New("manifest: nil context")
	}
	if f == nil {
		return errors.New("manifest: nil fetch")
	}

	version := strings.TrimSpace(f.Version)
	if version == "" {
		return errors.New("manifest: missing version")
	}

	fetchedAt := f.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO fetches (version, url, dir, files, fetched_at)
		VALUES (?, ?, ?, ?, ?)
	`, version, strings.TrimSpace(f.URL), strings.TrimSpace(f.Dir), f.Files, fetchedAt.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("manifest: insert fetch: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		f.ID = id
	}
	f.Version = version
	f.FetchedAt = fetchedAt
	return nil
}

// List returns all recorded fetches, most recent first.
func (s *Store) List(ctx context.Context) ([]Fetch, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("manifest: nil store")
	}
	if ctx == nil {
		return nil, errors.New("manifest: nil context")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, version, url, dir, files, fetched_at
		FROM fetches
		ORDER BY fetched_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("manifest: query fetches: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// Latest returns the most recent fetch of a version, or nil if the
// version was never fetched.
func (s *Store) Latest(ctx context.Context, version string) (*Fetch, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("manifest: nil store")
	}
	if ctx == nil {
		return nil, errors.New("manifest: nil context")
	}
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, errors.New("manifest: empty version")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, version, url, dir, files, fetched_at
		FROM fetches
		WHERE version = ?
		ORDER BY fetched_at DESC, id DESC
		LIMIT 1
	`, version)
	if err != nil {
		return nil, fmt.Errorf("manifest: query latest fetch: %w", err)
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func scanRows(rows *sql.Rows) ([]Fetch, error) {
	var out []Fetch
	for rows.Next() {
		var f Fetch
		var fetchedAtMS int64
		if err := rows.Scan(&f.ID, &f.Version, &f.URL, &f.Dir, &f.Files, &fetchedAtMS); err != nil {
			return nil, fmt.Errorf("manifest: scan fetch: %w", err)
		}
		f.FetchedAt = time.UnixMilli(fetchedAtMS).UTC()
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("manifest: scan rows: %w", err)
	}
	return out, nil
}
