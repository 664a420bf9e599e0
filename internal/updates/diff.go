package updates

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/brogergvhs/mangawatch/internal/chapters"
	"github.com/brogergvhs/mangawatch/internal/providers"
	"golang.org/x/sync/errgroup"
)

// Report is a followed series with chapters newer than the last one read.
type Report struct {
	Series   chapters.SeriesKey
	LastRead chapters.Number
	Latest   chapters.Number
}

func (r Report) LastReadURL() string { return chapters.New(r.Series, r.LastRead).URL() }
func (r Report) LatestURL() string   { return chapters.New(r.Series, r.Latest).URL() }

// Failure is a series whose latest chapter could not be fetched.
type Failure struct {
	Series chapters.SeriesKey
	Err    error
}

type Result struct {
	Updates  []Report
	Failures []Failure
	Checked  int
}

type Options struct {
	// Workers bounds concurrent fetches; values below 1 mean one at a time.
	Workers int
	// OnFetched is called once per series after its fetch, with the fetch
	// error if any. It may be called from several goroutines.
	OnFetched func(series chapters.SeriesKey, err error)
}

// Diff fetches the latest chapter of every tracked series and reports the
// ones where it is strictly newer than the last read chapter. A failed
// fetch is recorded in Result.Failures and does not stop the others.
func Diff(ctx context.Context, tracked chapters.Tracked, scraper providers.Scraper, opts Options) Result {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	var (
		mu  sync.Mutex
		res = Result{Checked: len(tracked)}
	)

	g := new(errgroup.Group)
	g.SetLimit(workers)

	for _, key := range tracked.Keys() {
		key := key
		lastRead := tracked[key]

		g.Go(func() error {
			latest, err := fetch(ctx, scraper, key)

			if opts.OnFetched != nil {
				opts.OnFetched(key, err)
			}

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err != nil:
				res.Failures = append(res.Failures, Failure{Series: key, Err: err})
			case chapters.Compare(latest, lastRead) > 0:
				res.Updates = append(res.Updates, Report{Series: key, LastRead: lastRead, Latest: latest})
			}

			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(res.Updates, func(i, j int) bool { return res.Updates[i].Series < res.Updates[j].Series })
	sort.Slice(res.Failures, func(i, j int) bool { return res.Failures[i].Series < res.Failures[j].Series })

	return res
}

func fetch(ctx context.Context, scraper providers.Scraper, key chapters.SeriesKey) (chapters.Number, error) {
	if err := ctx.Err(); err != nil {
		return chapters.Number{}, &providers.FetchError{Series: key, Err: err}
	}

	ch, err := scraper.LatestChapter(ctx, key)
	if err != nil {
		var fe *providers.FetchError
		if !errors.As(err, &fe) {
			err = &providers.FetchError{Series: key, Err: err}
		}
		return chapters.Number{}, err
	}

	return ch.Number, nil
}
