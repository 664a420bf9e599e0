package ui

import (
	"sync/atomic"

	"github.com/brogergvhs/mangawatch/internal/chapters"
)

// Stats counts fetch outcomes while a check runs.
type Stats struct {
	Fetched atomic.Int64
	Failed  atomic.Int64
}

// Observe matches updates.Options.OnFetched.
func (s *Stats) Observe(_ chapters.SeriesKey, err error) {
	s.Fetched.Add(1)
	if err != nil {
		s.Failed.Add(1)
	}
}
