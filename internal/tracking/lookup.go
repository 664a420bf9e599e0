package tracking

import (
	"sort"

	"github.com/brogergvhs/mangawatch/internal/chapters"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Lookup returns the keys matching query, best match first. An exact key
// is the only result; otherwise keys are ranked by case-insensitive fuzzy
// distance.
func Lookup(query string, keys []chapters.SeriesKey) []chapters.SeriesKey {
	targets := make([]string, len(keys))
	for i, k := range keys {
		if string(k) == query {
			return []chapters.SeriesKey{k}
		}
		targets[i] = string(k)
	}

	ranks := fuzzy.RankFindFold(query, targets)
	sort.Stable(ranks)

	out := make([]chapters.SeriesKey, len(ranks))
	for i, r := range ranks {
		out[i] = keys[r.OriginalIndex]
	}

	return out
}
