package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultURLPattern = "https://mangahub.io/chapter/%/chapter-%"
	DefaultSelector   = "div.tab-content > div > ul > li > span > a"
)

type Config struct {
	Browser    string `yaml:"browser"`
	HistoryDB  string `yaml:"history_db"`
	URLPattern string `yaml:"url_pattern"`
	StorePath  string `yaml:"store_path"`

	ChapterSelector   string        `yaml:"chapter_selector"`
	FetchWorkers      int           `yaml:"fetch_workers"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	FetchAttempts     int           `yaml:"fetch_attempts"`
	Timeout           time.Duration `yaml:"timeout"`

	Cookie           string `yaml:"cookie"`
	CookieFile       string `yaml:"cookie_file"`
	UserAgent        string `yaml:"user_agent"`
	CloudflareBypass bool   `yaml:"cloudflare_bypass"`

	NoPrompt bool `yaml:"no_prompt"`
	Debug    bool `yaml:"debug"`
}

// Options are CLI overrides; zero values leave the config untouched.
type Options struct {
	IgnoreConfig bool
	Debug        bool

	Browser           string
	HistoryDB         string
	URLPattern        string
	StorePath         string
	ChapterSelector   string
	FetchWorkers      int
	RequestsPerSecond float64
	FetchAttempts     int
	Timeout           time.Duration
	Cookie            string
	CookieFile        string
	UserAgent         string
	CloudflareBypass  bool
	NoPrompt          bool
}

func DefaultConfig() *Config {
	return &Config{
		Browser:           "firefox",
		URLPattern:        DefaultURLPattern,
		ChapterSelector:   DefaultSelector,
		FetchWorkers:      4,
		RequestsPerSecond: 2,
		FetchAttempts:     1,
		Timeout:           30 * time.Second,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Keys missing from the file keep their defaults.
	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged resolves the effective config: defaults, then the active
// profile, then CLI options. The second value describes where it came from.
func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `mangawatch config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.Browser != "" {
		c.Browser = o.Browser
	}
	if o.HistoryDB != "" {
		c.HistoryDB = o.HistoryDB
	}
	if o.URLPattern != "" {
		c.URLPattern = o.URLPattern
	}
	if o.StorePath != "" {
		c.StorePath = o.StorePath
	}
	if o.ChapterSelector != "" {
		c.ChapterSelector = o.ChapterSelector
	}
	if o.FetchWorkers != 0 {
		c.FetchWorkers = o.FetchWorkers
	}
	if o.RequestsPerSecond != 0 {
		c.RequestsPerSecond = o.RequestsPerSecond
	}
	if o.FetchAttempts != 0 {
		c.FetchAttempts = o.FetchAttempts
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
	if o.NoPrompt {
		c.NoPrompt = true
	}
}

func normalizeDefaults(c *Config) {
	if c.Browser == "" {
		c.Browser = "firefox"
	}
	if c.URLPattern == "" {
		c.URLPattern = DefaultURLPattern
	}
	if c.ChapterSelector == "" {
		c.ChapterSelector = DefaultSelector
	}
	if c.StorePath == "" {
		c.StorePath = DefaultStorePath()
	}
	if c.FetchWorkers < 1 {
		c.FetchWorkers = 1
	}
	if c.FetchAttempts < 1 {
		c.FetchAttempts = 1
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}

func (c *Config) Print(w io.Writer) {
	fmt.Fprintf(w, " -browser: %s\n", c.Browser)
	if c.HistoryDB != "" {
		fmt.Fprintf(w, " -history_db: %s\n", c.HistoryDB)
	} else {
		fmt.Fprintf(w, " -history_db: (auto-detect)\n")
	}
	fmt.Fprintf(w, " -url_pattern: %s\n", c.URLPattern)
	if c.StorePath != "" {
		fmt.Fprintf(w, " -store_path: %s\n", c.StorePath)
	}
	fmt.Fprintf(w, " -chapter_selector: %s\n", c.ChapterSelector)
	fmt.Fprintf(w, " -fetch_workers: %d\n", c.FetchWorkers)
	fmt.Fprintf(w, " -requests_per_second: %g\n", c.RequestsPerSecond)
	fmt.Fprintf(w, " -fetch_attempts: %d\n", c.FetchAttempts)
	fmt.Fprintf(w, " -timeout: %s\n", c.Timeout)
	if c.CookieFile != "" {
		fmt.Fprintf(w, " -cookie_file: %s\n", c.CookieFile)
	}
	if c.UserAgent != "" {
		fmt.Fprintf(w, " -user_agent: %s\n", c.UserAgent)
	}
	if c.CloudflareBypass {
		fmt.Fprintf(w, " -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	if c.NoPrompt {
		fmt.Fprintf(w, " -no_prompt: %t\n", c.NoPrompt)
	}
	if c.Debug {
		fmt.Fprintf(w, " -debug: %t\n", c.Debug)
	}
}
