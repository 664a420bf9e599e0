package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("LOCALAPPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	return dir
}

func TestLoadMergedWithoutProfile(t *testing.T) {
	dir := isolate(t)

	cfg, used, err := LoadMerged(Options{FetchWorkers: 8, NoPrompt: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(used, "default config in memory") {
		t.Fatalf("used = %q", used)
	}
	if cfg.FetchWorkers != 8 || !cfg.NoPrompt {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Browser != "firefox" || cfg.URLPattern != DefaultURLPattern {
		t.Fatalf("defaults missing: %+v", cfg)
	}

	want := filepath.Join(dir, "data", appName, appName+".db")
	if cfg.StorePath != want {
		t.Fatalf("StorePath = %q, want %q", cfg.StorePath, want)
	}
}

func TestLoadMergedReadsActiveProfile(t *testing.T) {
	isolate(t)

	path, err := InitDefaultConfig()
	if err != nil {
		t.Fatal(err)
	}

	yml := "browser: chrome\nfetch_workers: 2\ntimeout: 45s\nrequests_per_second: 0.5\n"
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, used, err := LoadMerged(Options{Browser: "firefox", Debug: true})
	if err != nil {
		t.Fatal(err)
	}
	if used != path {
		t.Fatalf("used = %q, want %q", used, path)
	}
	if cfg.Browser != "firefox" {
		t.Fatalf("CLI browser not preferred: %q", cfg.Browser)
	}
	if cfg.FetchWorkers != 2 || cfg.Timeout != 45*time.Second || cfg.RequestsPerSecond != 0.5 {
		t.Fatalf("file values lost: %+v", cfg)
	}
	if cfg.ChapterSelector != DefaultSelector || cfg.FetchAttempts != 1 {
		t.Fatalf("missing keys should keep defaults: %+v", cfg)
	}
	if !cfg.Debug {
		t.Fatal("debug override not applied")
	}
}

func TestLoadMergedIgnoreConfig(t *testing.T) {
	isolate(t)

	path, err := InitDefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("browser: chrome\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, used, err := LoadMerged(Options{IgnoreConfig: true})
	if err != nil {
		t.Fatal(err)
	}
	if used != "(ignored config)" || cfg.Browser != "firefox" {
		t.Fatalf("got %q, %+v", used, cfg)
	}
}

func TestLoadMergedBadYAML(t *testing.T) {
	isolate(t)

	path, err := InitDefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("fetch_workers: [\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := LoadMerged(Options{}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	isolate(t)

	c := &Config{FetchWorkers: -3}
	normalizeDefaults(c)

	if c.FetchWorkers != 1 || c.FetchAttempts != 1 || c.Timeout != 30*time.Second {
		t.Fatalf("normalized = %+v", c)
	}
	if c.Browser == "" || c.StorePath == "" || c.ChapterSelector == "" {
		t.Fatalf("empty fields left: %+v", c)
	}
}

func TestSaveYAMLRoundTripsDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "c.yaml")

	in := DefaultConfig()
	in.Timeout = 90 * time.Second
	if err := SaveYAML(in, path); err != nil {
		t.Fatal(err)
	}

	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "timeout: 1m30s") {
		t.Fatalf("yaml = %s", b)
	}

	out, err := loadYAML(path)
	if err != nil {
		t.Fatal(err)
	}
	if out.Timeout != in.Timeout {
		t.Fatalf("timeout = %v", out.Timeout)
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	c := DefaultConfig()
	c.Cookie = "secret=1"
	c.Print(&buf)

	out := buf.String()
	if !strings.Contains(out, " -browser: firefox") || !strings.Contains(out, "(auto-detect)") {
		t.Fatalf("output = %s", out)
	}
	if strings.Contains(out, "secret") {
		t.Fatal("cookie value printed")
	}
}

func TestProfiles(t *testing.T) {
	isolate(t)

	if _, err := ActiveConfigPath(); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("ActiveConfigPath err = %v", err)
	}

	if _, err := InitDefaultConfig(); err != nil {
		t.Fatal(err)
	}
	if _, err := InitDefaultConfig(); !errors.Is(err, os.ErrExist) {
		t.Fatalf("second init err = %v", err)
	}

	if _, err := CreateConfig("work"); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateConfig("work"); err == nil {
		t.Fatal("duplicate create should fail")
	}
	if err := SwitchConfig("work"); err != nil {
		t.Fatal(err)
	}
	if err := SwitchConfig("missing"); err == nil {
		t.Fatal("switch to missing profile should fail")
	}

	if err := RenameConfig("work", "home"); err != nil {
		t.Fatal(err)
	}
	if label, _ := CurrentLabel(); label != "home" {
		t.Fatalf("active label = %q after rename", label)
	}

	list, err := ListConfigs()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Label != "Default" || !list[1].Active {
		t.Fatalf("list = %+v", list)
	}

	if _, err := RemoveConfig("Default"); err == nil {
		t.Fatal("Default must not be removable")
	}
	switched, err := RemoveConfig("home")
	if err != nil || !switched {
		t.Fatalf("RemoveConfig = %v, %v", switched, err)
	}
	if label, _ := CurrentLabel(); label != "Default" {
		t.Fatalf("active label = %q after remove", label)
	}
}
