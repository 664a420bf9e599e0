package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/mangawatch/internal/chapters"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// FetchProgress renders one bar counting series whose latest chapter has
// been looked up.
type FetchProgress struct {
	p     *mpb.Progress
	bar   *mpb.Bar
	stats *Stats
	start time.Time

	final   atomic.Bool
	elapsed atomic.Int64
}

func NewFetchProgress(out io.Writer, total int, stats *Stats) *FetchProgress {
	if stats == nil {
		stats = &Stats{}
	}

	fp := &FetchProgress{
		p: mpb.New(
			mpb.WithWidth(40),
			mpb.WithOutput(out),
			mpb.WithRefreshRate(120*time.Millisecond),
		),
		stats: stats,
		start: time.Now(),
	}

	fp.bar = fp.p.New(
		int64(total),
		mpb.BarStyle().Rbound("]"),
		mpb.PrependDecorators(
			decor.Name("Checking  "),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("%d/%d series", decor.WCSyncWidth),
			decor.Any(func(_ decor.Statistics) string {
				if n := fp.stats.Failed.Load(); n > 0 {
					return fmt.Sprintf(" | %d failed", n)
				}
				return ""
			}),
			decor.Any(func(_ decor.Statistics) string {
				sec := int64(time.Since(fp.start).Seconds())
				if fp.final.Load() {
					sec = fp.elapsed.Load()
				}
				return fmt.Sprintf(" | %ds", sec)
			}),
		),
	)

	return fp
}

// Observe matches updates.Options.OnFetched.
func (fp *FetchProgress) Observe(series chapters.SeriesKey, err error) {
	fp.stats.Observe(series, err)
	fp.bar.Increment()
}

// Close completes the bar and waits for the last render.
func (fp *FetchProgress) Close() {
	if fp.final.Swap(true) {
		return
	}

	fp.elapsed.Store(int64(time.Since(fp.start).Seconds()))
	fp.bar.SetTotal(-1, true)
	fp.p.Wait()
}
