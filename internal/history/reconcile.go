package history

import "github.com/brogergvhs/mangawatch/internal/chapters"

// Reconcile folds chapter URLs into the highest chapter seen per series.
// Malformed URLs are skipped; skipped, if non-nil, is told about each one.
// On equal numbers the later URL wins.
func Reconcile(urls []string, skipped func(raw string, err error)) chapters.Tracked {
	out := make(chapters.Tracked)

	for _, raw := range urls {
		ch, err := chapters.Parse(raw)
		if err != nil {
			if skipped != nil {
				skipped(raw, err)
			}
			continue
		}

		if prev, ok := out[ch.Series]; ok && chapters.Compare(ch.Number, prev) < 0 {
			continue
		}
		out[ch.Series] = ch.Number
	}

	return out
}
