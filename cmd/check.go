package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/brogergvhs/mangawatch/internal/config"
	"github.com/brogergvhs/mangawatch/internal/history"
	"github.com/brogergvhs/mangawatch/internal/providers/mangahub"
	"github.com/brogergvhs/mangawatch/internal/store"
	"github.com/brogergvhs/mangawatch/internal/tracking"
	"github.com/brogergvhs/mangawatch/internal/ui"
	"github.com/brogergvhs/mangawatch/internal/updates"
	"github.com/brogergvhs/mangawatch/internal/util"

	"github.com/spf13/cobra"
)

var (
	// history
	flagBrowser    string
	flagHistoryDB  string
	flagURLPattern string
	flagStore      string

	// fetching
	flagSelector         string
	flagWorkers          int
	flagRPS              float64
	flagAttempts         int
	flagTimeout          time.Duration
	flagCloudflareBypass bool

	// headers/auth
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string

	// runtime
	flagNoPrompt bool
	flagDryRun   bool
)

func init() {
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Look for new chapters of the series you follow. Uses the defaults from the selected config, overwritten by CLI flags",
		RunE:  runCheck,
	}
	bindCheckFlags(checkCmd)

	rootCmd.AddCommand(checkCmd)
}

func bindCheckFlags(c *cobra.Command) {
	f := c.Flags()

	// history
	f.StringVar(&flagBrowser, "browser", "", "browser whose history is read (firefox or chrome)")
	f.StringVar(&flagHistoryDB, "history-db", "", "path to places.sqlite / History (auto-detected when empty)")
	f.StringVar(&flagURLPattern, "url-pattern", "", "SQL LIKE pattern selecting chapter URLs")
	f.StringVar(&flagStore, "store", "", "path to the allow/deny database")

	// fetching
	f.StringVar(&flagSelector, "selector", "", "CSS selector of the newest chapter link")
	f.IntVar(&flagWorkers, "workers", 0, "parallel series page fetches")
	f.Float64Var(&flagRPS, "rps", 0, "maximum requests per second (0 disables the limit)")
	f.IntVar(&flagAttempts, "attempts", 0, "attempts per series page")
	f.DurationVar(&flagTimeout, "timeout", 0, "HTTP timeout per request")
	f.BoolVar(&flagCloudflareBypass, "cloudflare-bypass", false, "route requests through the Cloudflare bypass transport")

	// headers/auth
	f.StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	f.StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	f.StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")

	// runtime
	f.BoolVar(&flagNoPrompt, "no-prompt", false, "do not ask about new series")
	f.BoolVar(&flagDryRun, "dry-run", false, "list the followed series and their last read chapter, fetch nothing")
}

func checkOptions() config.Options {
	return config.Options{
		IgnoreConfig:      flagIgnoreConfig,
		Debug:             flagDebug,
		Browser:           flagBrowser,
		HistoryDB:         flagHistoryDB,
		URLPattern:        flagURLPattern,
		StorePath:         flagStore,
		ChapterSelector:   flagSelector,
		FetchWorkers:      flagWorkers,
		RequestsPerSecond: flagRPS,
		FetchAttempts:     flagAttempts,
		Timeout:           flagTimeout,
		Cookie:            flagCookie,
		CookieFile:        flagCookieFile,
		UserAgent:         flagUserAgent,
		CloudflareBypass:  flagCloudflareBypass,
		NoPrompt:          flagNoPrompt,
	}
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, usedPath, err := config.LoadMerged(checkOptions())
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	logSvc.Debugf("Config file: %s\n", usedPath)
	if cfg.Debug {
		cfg.Print(os.Stderr)
	}

	ctx := cmd.Context()

	st, err := store.Open(ctx, cfg.StorePath)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	scratch, err := os.MkdirTemp("", "mangawatch-*")
	if err != nil {
		return fmt.Errorf("cannot create scratch folder: %w", err)
	}
	stopInterrupt := util.SetupInterruptHandler(scratch)
	defer stopInterrupt()
	defer util.RemovePaths(scratch)

	src, err := history.NewSource(cfg.Browser, cfg.HistoryDB, scratch, logSvc)
	if err != nil {
		return err
	}

	urls, err := src.URLs(ctx, cfg.URLPattern)
	if err != nil {
		return err
	}

	tracked := history.Reconcile(urls, func(raw string, err error) {
		logSvc.Debugf("Skipping %s: %v\n", raw, err)
	})

	filter := tracking.Filter{Allow: st.Allowlist(), Deny: st.Denylist()}
	tracked, err = filter.ApplyDeny(ctx, tracked)
	if err != nil {
		return err
	}

	if flagDryRun {
		fmt.Printf("Dry-run: %d series in history.\n\n", len(tracked))
		return ui.WriteTracked(os.Stdout, tracked)
	}

	run, err := st.StartRun(ctx, time.Now())
	if err != nil {
		return err
	}

	discovered, err := filter.Discover(ctx, tracked)
	if err != nil {
		return err
	}
	run.Discovered = len(discovered)

	if len(discovered) > 0 && !cfg.NoPrompt {
		prompt := &ui.DecisionPrompt{}
		sum, err := tracking.ClassifyAll(ctx, filter, tracked, discovered, prompt.Ask)
		if err != nil {
			return err
		}
		logSvc.Debugf("Classified: %d followed, %d ignored\n", len(sum.Allowed), len(sum.Denied))
		if n := len(sum.Pending); n > 0 {
			logSvc.Infof("%d new series left unclassified, they will be asked about next time\n", n)
		}
	}

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:           cfg.Timeout,
		UserAgent:         util.PickUserAgent(cfg.UserAgent),
		Cookie:            cfg.Cookie,
		CookieFile:        cfg.CookieFile,
		RequestsPerSecond: cfg.RequestsPerSecond,
		CloudflareBypass:  cfg.CloudflareBypass,
		DebugLogger:       logSvc,
	})
	if err != nil {
		return err
	}

	scr := mangahub.NewScraper(client, mangahub.Options{
		Selector: cfg.ChapterSelector,
		Attempts: cfg.FetchAttempts,
		Log:      logSvc,
	})

	stats := &ui.Stats{}
	opts := updates.Options{Workers: cfg.FetchWorkers, OnFetched: stats.Observe}

	var progress *ui.FetchProgress
	if len(tracked) > 0 {
		progress = ui.NewFetchProgress(os.Stderr, len(tracked), stats)
		opts.OnFetched = progress.Observe
	}

	res := updates.Diff(ctx, tracked, scr, opts)
	if progress != nil {
		progress.Close()
	}

	if err := ui.WriteReport(os.Stdout, os.Stderr, res); err != nil {
		return err
	}
	if cfg.Debug {
		ui.WriteSummary(os.Stderr, res, stats)
	}

	run.Tracked = res.Checked
	run.Updates = len(res.Updates)
	run.Failures = len(res.Failures)
	run.FinishedAt = time.Now()

	return st.FinishRun(ctx, run)
}
