package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brogergvhs/mangawatch/internal/util"

	_ "modernc.org/sqlite"
)

// Source yields the history URLs matching a SQL LIKE pattern.
type Source interface {
	URLs(ctx context.Context, pattern string) ([]string, error)
}

type debugLogger interface {
	Debugf(string, ...any)
}

const (
	firefoxQuery = `SELECT url FROM moz_places WHERE url LIKE ? ORDER BY url DESC`
	chromeQuery  = `SELECT url FROM urls WHERE url LIKE ? ORDER BY url DESC`
)

// Firefox reads places.sqlite. The browser keeps the file locked while it
// runs, so the database (and its -wal file) is copied into a scratch
// directory and queried there.
type Firefox struct {
	Path    string
	TempDir string
	Log     debugLogger
}

func (f Firefox) URLs(ctx context.Context, pattern string) ([]string, error) {
	return querySnapshot(ctx, f.Path, f.TempDir, firefoxQuery, pattern, f.Log)
}

// Chrome reads the "History" database of a Chromium profile.
type Chrome struct {
	Path    string
	TempDir string
	Log     debugLogger
}

func (c Chrome) URLs(ctx context.Context, pattern string) ([]string, error) {
	return querySnapshot(ctx, c.Path, c.TempDir, chromeQuery, pattern, c.Log)
}

// NewSource picks the history reader for browser ("firefox" or "chrome").
// An empty path triggers profile detection.
func NewSource(browser, path, tempDir string, log debugLogger) (Source, error) {
	browser = strings.ToLower(strings.TrimSpace(browser))

	switch browser {
	case "", "firefox":
		if path == "" {
			p, err := DetectFirefoxPlaces()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return Firefox{Path: path, TempDir: tempDir, Log: log}, nil

	case "chrome", "chromium":
		if path == "" {
			p, err := DetectChromeHistory()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return Chrome{Path: path, TempDir: tempDir, Log: log}, nil
	}

	return nil, fmt.Errorf("unsupported browser %q (want firefox or chrome)", browser)
}

func querySnapshot(ctx context.Context, path, tempDir, query, pattern string, log debugLogger) ([]string, error) {
	if path == "" {
		return nil, errors.New("history database path is empty")
	}

	dir := tempDir
	if dir == "" {
		d, err := os.MkdirTemp("", "mangawatch-history-*")
		if err != nil {
			return nil, fmt.Errorf("history snapshot: %w", err)
		}
		defer func() { _ = os.RemoveAll(d) }()
		dir = d
	}

	snapshot := filepath.Join(dir, filepath.Base(path))
	n, err := util.CopyFile(path, snapshot)
	if err != nil {
		return nil, fmt.Errorf("history snapshot: %w", err)
	}
	if log != nil {
		log.Debugf("Copied %s to %s (%s)\n", path, snapshot, util.Human(n))
	}

	if _, err := os.Stat(path + "-wal"); err == nil {
		if _, err := util.CopyFile(path+"-wal", snapshot+"-wal"); err != nil {
			return nil, fmt.Errorf("history snapshot wal: %w", err)
		}
	}

	db, err := sql.Open("sqlite", snapshot)
	if err != nil {
		return nil, fmt.Errorf("open history snapshot: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		out = append(out, url)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history rows: %w", err)
	}

	if log != nil {
		log.Debugf("History: %d URLs match %q\n", len(out), pattern)
	}

	return out, nil
}
