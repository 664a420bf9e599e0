package tracking

import (
	"testing"

	"github.com/brogergvhs/mangawatch/internal/chapters"
)

func TestLookup(t *testing.T) {
	keys := []chapters.SeriesKey{
		"https://mangahub.io/chapter/one-piece/",
		"https://mangahub.io/chapter/one-punch-man/",
		"https://mangahub.io/chapter/berserk/",
	}

	got := Lookup("https://mangahub.io/chapter/berserk/", keys)
	if len(got) != 1 || got[0] != keys[2] {
		t.Fatalf("exact lookup = %v", got)
	}

	got = Lookup("BERSERK", keys)
	if len(got) != 1 || got[0] != keys[2] {
		t.Fatalf("fold lookup = %v", got)
	}

	got = Lookup("one", keys)
	if len(got) != 2 {
		t.Fatalf("lookup one = %v", got)
	}
	if got[0] != keys[0] {
		t.Fatalf("closest match = %s, want %s", got[0], keys[0])
	}

	if got := Lookup("naruto", keys); len(got) != 0 {
		t.Fatalf("unexpected matches %v", got)
	}
}
