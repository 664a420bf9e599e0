// Package store persists the allow and deny lists and the run log in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brogergvhs/mangawatch/internal/chapters"
	"github.com/brogergvhs/mangawatch/internal/store/migrations"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store path is required")
	}

	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Allowlist() *List { return &List{db: s.db, table: "allowlist"} }
func (s *Store) Denylist() *List  { return &List{db: s.db, table: "denylist"} }

// List is one persisted set of series keys.
type List struct {
	db    *sql.DB
	table string
}

func (l *List) Name() string { return strings.TrimSuffix(l.table, "list") }

func (l *List) Contains(ctx context.Context, key chapters.SeriesKey) (bool, error) {
	var n int
	err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+l.table+` WHERE url = ?`, string(key)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("lookup %s: %w", l.table, err)
	}
	return n > 0, nil
}

// Insert adds key; adding a key twice is a no-op.
func (l *List) Insert(ctx context.Context, key chapters.SeriesKey) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO `+l.table+` (url, added_at) VALUES (?, ?) ON CONFLICT(url) DO NOTHING`,
		string(key), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("insert into %s: %w", l.table, err)
	}
	return nil
}

func (l *List) Remove(ctx context.Context, key chapters.SeriesKey) (bool, error) {
	res, err := l.db.ExecContext(ctx, `DELETE FROM `+l.table+` WHERE url = ?`, string(key))
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", l.table, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (l *List) ListAll(ctx context.Context) ([]chapters.SeriesKey, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT url FROM `+l.table+` ORDER BY url`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", l.table, err)
	}
	defer func() { _ = rows.Close() }()

	var out []chapters.SeriesKey
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan %s: %w", l.table, err)
		}
		out = append(out, chapters.SeriesKey(url))
	}

	return out, rows.Err()
}
