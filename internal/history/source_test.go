package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

const defaultPattern = "https://mangahub.io/chapter/%/chapter-%"

func writeHistoryDB(t *testing.T, path, schema, insert string, urls []string) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	for _, u := range urls {
		if _, err := db.Exec(insert, u); err != nil {
			t.Fatalf("insert %q: %v", u, err)
		}
	}
}

func TestFirefoxURLs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "places.sqlite")
	writeHistoryDB(t, path,
		`CREATE TABLE moz_places (id INTEGER PRIMARY KEY, url LONGVARCHAR)`,
		`INSERT INTO moz_places (url) VALUES (?)`,
		[]string{
			"https://mangahub.io/chapter/a/chapter-1",
			"https://mangahub.io/chapter/a/chapter-2",
			"https://mangahub.io/manga/a",
			"https://example.com/chapter/a/chapter-1",
			"https://mangahub.io/chapter/b/chapter-10?reloadKey=1",
		})

	scratch := filepath.Join(dir, "scratch")
	if err := os.MkdirAll(scratch, 0755); err != nil {
		t.Fatal(err)
	}

	src := Firefox{Path: path, TempDir: scratch}
	urls, err := src.URLs(context.Background(), defaultPattern)
	if err != nil {
		t.Fatalf("URLs: %v", err)
	}

	want := []string{
		"https://mangahub.io/chapter/b/chapter-10?reloadKey=1",
		"https://mangahub.io/chapter/a/chapter-2",
		"https://mangahub.io/chapter/a/chapter-1",
	}
	if len(urls) != len(want) {
		t.Fatalf("urls = %v, want %v", urls, want)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Fatalf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}

	if _, err := os.Stat(filepath.Join(scratch, "places.sqlite")); err != nil {
		t.Fatalf("snapshot not written to scratch dir: %v", err)
	}
}

func TestChromeURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "History")
	writeHistoryDB(t, path,
		`CREATE TABLE urls (id INTEGER PRIMARY KEY, url LONGVARCHAR, title LONGVARCHAR)`,
		`INSERT INTO urls (url) VALUES (?)`,
		[]string{"https://mangahub.io/chapter/c/chapter-4"})

	urls, err := Chrome{Path: path}.URLs(context.Background(), defaultPattern)
	if err != nil {
		t.Fatalf("URLs: %v", err)
	}
	if len(urls) != 1 || urls[0] != "https://mangahub.io/chapter/c/chapter-4" {
		t.Fatalf("urls = %v", urls)
	}
}

func TestURLsMissingDatabase(t *testing.T) {
	src := Firefox{Path: filepath.Join(t.TempDir(), "nope.sqlite")}
	if _, err := src.URLs(context.Background(), defaultPattern); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestNewSource(t *testing.T) {
	src, err := NewSource("Chrome", "/tmp/History", "", nil)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	if c, ok := src.(Chrome); !ok || c.Path != "/tmp/History" {
		t.Fatalf("source = %#v", src)
	}

	if _, err := NewSource("lynx", "/tmp/x", "", nil); err == nil {
		t.Fatal("expected error for unsupported browser")
	}
}

func TestFindFirst(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{"abc.default/places.sqlite", "xyz.default-release/places.sqlite"} {
		full := filepath.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := findFirst([]string{"", root}, []string{"*.default-release/places.sqlite", "*.default*/places.sqlite"})
	if err != nil {
		t.Fatalf("findFirst: %v", err)
	}
	if got != filepath.Join(root, "xyz.default-release", "places.sqlite") {
		t.Fatalf("got %q", got)
	}

	if _, err := findFirst([]string{t.TempDir()}, []string{"*/places.sqlite"}); err != ErrNoProfile {
		t.Fatalf("err = %v, want ErrNoProfile", err)
	}
}
