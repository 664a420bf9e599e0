package tracking

import (
	"context"
	"errors"

	"github.com/brogergvhs/mangawatch/internal/chapters"
)

// ErrStopClassifying is returned by an Asker when the user has no more
// answers to give (end of input). Remaining series stay unclassified.
var ErrStopClassifying = errors.New("classification stopped")

// Asker obtains the user's decision for one newly discovered series.
type Asker func(key chapters.SeriesKey) (Decision, error)

type Summary struct {
	Allowed []chapters.SeriesKey
	Denied  []chapters.SeriesKey
	Pending []chapters.SeriesKey
}

// ClassifyAll asks once per key and routes each answer through f.Classify.
func ClassifyAll(ctx context.Context, f Filter, tracked chapters.Tracked, keys []chapters.SeriesKey, ask Asker) (Summary, error) {
	var sum Summary
	seen := make(map[chapters.SeriesKey]struct{}, len(keys))

	for i, key := range keys {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if err := ctx.Err(); err != nil {
			return sum, err
		}

		d, err := ask(key)
		if errors.Is(err, ErrStopClassifying) {
			sum.Pending = append(sum.Pending, uniqueFrom(keys[i:], seen, key)...)
			return sum, nil
		}
		if err != nil {
			return sum, err
		}

		if err := f.Classify(ctx, tracked, key, d); err != nil {
			return sum, err
		}

		if d == Allow {
			sum.Allowed = append(sum.Allowed, key)
		} else {
			sum.Denied = append(sum.Denied, key)
		}
	}

	return sum, nil
}

// uniqueFrom lists the keys of rest not yet asked about, starting with current.
func uniqueFrom(rest []chapters.SeriesKey, seen map[chapters.SeriesKey]struct{}, current chapters.SeriesKey) []chapters.SeriesKey {
	out := []chapters.SeriesKey{current}
	for _, k := range rest[1:] {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	return out
}
