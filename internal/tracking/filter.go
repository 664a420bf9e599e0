// Package tracking decides which series from the browser history are
// followed. Series the user denied are dropped before anything else, and
// series that are neither allowed nor denied are offered for classification.
package tracking

import (
	"context"
	"fmt"
	"sort"

	"github.com/brogergvhs/mangawatch/internal/chapters"
)

// ListStore is a persisted set of series keys.
type ListStore interface {
	Contains(ctx context.Context, key chapters.SeriesKey) (bool, error)
	Insert(ctx context.Context, key chapters.SeriesKey) error
	ListAll(ctx context.Context) ([]chapters.SeriesKey, error)
}

type Decision int

const (
	Allow Decision = iota + 1
	Deny
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// StoreError wraps a failure of the allow or deny list. The run cannot
// continue after one: filtering would silently be wrong.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("tracking store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

type Filter struct {
	Allow ListStore
	Deny  ListStore
}

// ApplyDeny returns a copy of tracked without the denied series.
func (f Filter) ApplyDeny(ctx context.Context, tracked chapters.Tracked) (chapters.Tracked, error) {
	denied, err := f.Deny.ListAll(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list denied", Err: err}
	}

	out := tracked.Clone()
	for _, key := range denied {
		delete(out, key)
	}

	return out, nil
}

// Discover returns the tracked series that are not allowed yet, sorted.
func (f Filter) Discover(ctx context.Context, tracked chapters.Tracked) ([]chapters.SeriesKey, error) {
	allowed, err := f.Allow.ListAll(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list allowed", Err: err}
	}

	known := make(map[chapters.SeriesKey]struct{}, len(allowed))
	for _, key := range allowed {
		known[key] = struct{}{}
	}

	var out []chapters.SeriesKey
	for key := range tracked {
		if _, ok := known[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out, nil
}

// Classify records the decision for key. A denied series is also removed
// from tracked so it is not checked in this run.
func (f Filter) Classify(ctx context.Context, tracked chapters.Tracked, key chapters.SeriesKey, d Decision) error {
	switch d {
	case Allow:
		if err := f.Allow.Insert(ctx, key); err != nil {
			return &StoreError{Op: "allow " + string(key), Err: err}
		}
	case Deny:
		if err := f.Deny.Insert(ctx, key); err != nil {
			return &StoreError{Op: "deny " + string(key), Err: err}
		}
		delete(tracked, key)
	default:
		return fmt.Errorf("unknown decision %v for %s", d, key)
	}

	return nil
}

// StatusOf reports how key is classified. Deny wins when a key is on both lists.
func (f Filter) StatusOf(ctx context.Context, key chapters.SeriesKey) (Decision, bool, error) {
	denied, err := f.Deny.Contains(ctx, key)
	if err != nil {
		return 0, false, &StoreError{Op: "lookup denied", Err: err}
	}
	if denied {
		return Deny, true, nil
	}

	allowed, err := f.Allow.Contains(ctx, key)
	if err != nil {
		return 0, false, &StoreError{Op: "lookup allowed", Err: err}
	}
	if allowed {
		return Allow, true, nil
	}

	return 0, false, nil
}
