package chapters

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// Separator splits a chapter URL into its series key and chapter token.
	Separator = "chapter-"

	reloadMarker = "?reloadKey=1"
)

var ErrMalformedIdentifier = errors.New("malformed chapter identifier")

// SeriesKey is a chapter URL with the chapter token removed, e.g.
// "https://mangahub.io/chapter/one-piece/". It doubles as the series page URL.
type SeriesKey string

type Chapter struct {
	Series SeriesKey
	Number Number
}

func New(series SeriesKey, number Number) Chapter {
	return Chapter{Series: series, Number: number}
}

// Parse splits a chapter URL into its series key and chapter number.
// A cache-busting "?reloadKey=1" and everything after it is dropped first.
func Parse(raw string) (Chapter, error) {
	url := sanitize(raw)

	idx := strings.LastIndex(url, Separator)
	if idx < 0 {
		return Chapter{}, fmt.Errorf("%w: %q has no %q", ErrMalformedIdentifier, raw, Separator)
	}

	num, err := ParseNumber(url[idx+len(Separator):])
	if err != nil {
		return Chapter{}, fmt.Errorf("%w (in %q)", err, raw)
	}

	return Chapter{
		Series: SeriesKey(url[:idx]),
		Number: num,
	}, nil
}

func sanitize(url string) string {
	if i := strings.Index(url, reloadMarker); i >= 0 {
		return url[:i]
	}

	return url
}

func (c Chapter) URL() string {
	return string(c.Series) + Separator + c.Number.Raw()
}

func (c Chapter) String() string {
	return c.URL()
}

// Tracked maps every series to the highest chapter read so far.
type Tracked map[SeriesKey]Number

// Keys returns the series keys in lexical order.
func (t Tracked) Keys() []SeriesKey {
	out := make([]SeriesKey, 0, len(t))
	for k := range t {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

func (t Tracked) Clone() Tracked {
	out := make(Tracked, len(t))
	for k, v := range t {
		out[k] = v
	}

	return out
}

// Chapter rebuilds the full chapter for a tracked series.
func (t Tracked) Chapter(key SeriesKey) (Chapter, bool) {
	n, ok := t[key]
	if !ok {
		return Chapter{}, false
	}

	return New(key, n), true
}
