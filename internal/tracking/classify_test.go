package tracking

import (
	"context"
	"errors"
	"testing"

	"github.com/brogergvhs/mangawatch/internal/chapters"
)

func scripted(answers map[chapters.SeriesKey]Decision, asked *[]chapters.SeriesKey) Asker {
	return func(key chapters.SeriesKey) (Decision, error) {
		*asked = append(*asked, key)
		d, ok := answers[key]
		if !ok {
			return 0, ErrStopClassifying
		}
		return d, nil
	}
}

func TestClassifyAll(t *testing.T) {
	allow, deny := newMemList(), newMemList()
	f := Filter{Allow: allow, Deny: deny}
	tr := tracked("a", "1", "b", "2", "c", "3")

	var asked []chapters.SeriesKey
	sum, err := ClassifyAll(context.Background(), f, tr,
		[]chapters.SeriesKey{"a", "b", "a", "c"},
		scripted(map[chapters.SeriesKey]Decision{"a": Allow, "b": Deny, "c": Allow}, &asked))
	if err != nil {
		t.Fatalf("ClassifyAll: %v", err)
	}

	if len(asked) != 3 {
		t.Fatalf("asked %v, want each key once", asked)
	}
	if len(sum.Allowed) != 2 || len(sum.Denied) != 1 || len(sum.Pending) != 0 {
		t.Fatalf("summary = %+v", sum)
	}
	if _, ok := tr["b"]; ok {
		t.Fatal("denied series still tracked")
	}
	if !allow.keys["a"] || !allow.keys["c"] || !deny.keys["b"] {
		t.Fatalf("allow=%v deny=%v", allow.keys, deny.keys)
	}
}

func TestClassifyAllStopsOnEndOfInput(t *testing.T) {
	f := Filter{Allow: newMemList(), Deny: newMemList()}
	tr := tracked("a", "1", "b", "2", "c", "3")

	var asked []chapters.SeriesKey
	sum, err := ClassifyAll(context.Background(), f, tr,
		[]chapters.SeriesKey{"a", "b", "c", "b"},
		scripted(map[chapters.SeriesKey]Decision{"a": Deny}, &asked))
	if err != nil {
		t.Fatalf("ClassifyAll: %v", err)
	}

	if len(asked) != 2 {
		t.Fatalf("asked %v, want [a b]", asked)
	}
	want := []chapters.SeriesKey{"b", "c"}
	if len(sum.Pending) != len(want) || sum.Pending[0] != want[0] || sum.Pending[1] != want[1] {
		t.Fatalf("pending = %v, want %v", sum.Pending, want)
	}
	if len(tr) != 2 {
		t.Fatalf("tracked = %v, want b and c left", tr)
	}
}

func TestClassifyAllPropagatesErrors(t *testing.T) {
	boom := errors.New("tty gone")
	f := Filter{Allow: newMemList(), Deny: newMemList()}

	_, err := ClassifyAll(context.Background(), f, tracked("a", "1"), []chapters.SeriesKey{"a"},
		func(chapters.SeriesKey) (Decision, error) { return 0, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}

	f.Allow = &memList{err: boom}
	_, err = ClassifyAll(context.Background(), f, tracked("a", "1"), []chapters.SeriesKey{"a"},
		func(chapters.SeriesKey) (Decision, error) { return Allow, nil })
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want StoreError", err)
	}
}

func TestClassifyAllHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := Filter{Allow: newMemList(), Deny: newMemList()}
	_, err := ClassifyAll(ctx, f, tracked("a", "1"), []chapters.SeriesKey{"a"},
		func(chapters.SeriesKey) (Decision, error) {
			t.Fatal("asked after cancellation")
			return 0, nil
		})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}
