package mangahub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/mangawatch/internal/chapters"
	"github.com/brogergvhs/mangawatch/internal/providers"
	"github.com/brogergvhs/mangawatch/internal/util"
)

// DefaultSelector points at the first (newest) entry of the chapter list.
const DefaultSelector = "div.tab-content > div > ul > li > span > a"

var ErrNoChapterLink = errors.New("no chapter link found on page")

type Options struct {
	Selector string
	Attempts int
	Backoff  time.Duration
	Log      interface{ Debugf(string, ...any) }
}

type Scraper struct {
	client   *http.Client
	selector string
	attempts int
	backoff  time.Duration
	log      interface{ Debugf(string, ...any) }
}

func NewScraper(c *http.Client, opts Options) *Scraper {
	s := &Scraper{
		client:   c,
		selector: strings.TrimSpace(opts.Selector),
		attempts: opts.Attempts,
		backoff:  opts.Backoff,
		log:      opts.Log,
	}
	if s.selector == "" {
		s.selector = DefaultSelector
	}
	if s.attempts < 1 {
		s.attempts = 1
	}
	if s.backoff <= 0 {
		s.backoff = 500 * time.Millisecond
	}

	return s
}

func (s *Scraper) debugf(format string, args ...any) {
	if s.log != nil {
		s.log.Debugf(format, args...)
	}
}

func (s *Scraper) fetchDOM(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := util.DoWithRetry(s.client, req, s.attempts, s.backoff)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// LatestChapter fetches the series page and returns its newest chapter.
// Every failure is a *providers.FetchError.
func (s *Scraper) LatestChapter(ctx context.Context, series chapters.SeriesKey) (chapters.Chapter, error) {
	page := string(series)

	doc, err := s.fetchDOM(ctx, page)
	if err != nil {
		return chapters.Chapter{}, &providers.FetchError{Series: series, Err: err}
	}

	if href, ok := doc.Find(s.selector).First().Attr("href"); ok && strings.TrimSpace(href) != "" {
		ch, err := chapters.Parse(resolveURL(page, strings.TrimSpace(href)))
		if err != nil {
			return chapters.Chapter{}, &providers.FetchError{Series: series, Err: err}
		}
		if ch.Series != series {
			s.debugf("Latest chapter of %s links to another series: %s\n", series, ch.URL())
		}

		return ch, nil
	}

	s.debugf("Selector %q matched nothing on %s, scanning chapter links\n", s.selector, page)

	ch, ok := latestLinked(doc, series)
	if !ok {
		return chapters.Chapter{}, &providers.FetchError{Series: series, Err: ErrNoChapterLink}
	}

	return ch, nil
}

// latestLinked returns the highest chapter of series linked anywhere on the page.
func latestLinked(doc *goquery.Document, series chapters.SeriesKey) (chapters.Chapter, bool) {
	var (
		best  chapters.Chapter
		found bool
	)

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if !strings.Contains(href, chapters.Separator) {
			return
		}

		ch, err := chapters.Parse(resolveURL(string(series), href))
		if err != nil || ch.Series != series {
			return
		}

		if !found || chapters.Compare(ch.Number, best.Number) > 0 {
			best = ch
			found = true
		}
	})

	return best, found
}

func resolveURL(baseURL, href string) string {
	if href == "" {
		return baseURL
	}

	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return u.String()
	}

	b, err := url.Parse(baseURL)
	if err != nil {
		return href
	}

	return b.ResolveReference(u).String()
}
