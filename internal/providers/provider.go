package providers

import (
	"context"
	"fmt"

	"github.com/brogergvhs/mangawatch/internal/chapters"
)

// Scraper looks up the newest chapter published on a series page.
type Scraper interface {
	LatestChapter(ctx context.Context, series chapters.SeriesKey) (chapters.Chapter, error)
}

// ScraperFunc adapts a plain function to Scraper.
type ScraperFunc func(ctx context.Context, series chapters.SeriesKey) (chapters.Chapter, error)

func (f ScraperFunc) LatestChapter(ctx context.Context, series chapters.SeriesKey) (chapters.Chapter, error) {
	return f(ctx, series)
}

// FetchError reports that the latest chapter of one series could not be
// determined: network failure, bad status or unexpected page markup.
type FetchError struct {
	Series chapters.SeriesKey
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Series, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
