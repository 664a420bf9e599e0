package chapters

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"5", "5", 0},
		{"12.5", "12.5", 0},
		{"5", "12", -1},
		{"99", "100", -1},
		{"100", "99", 1},
		{"12", "13", -1},
		{"5", "5.2", -1},
		{"5.2", "5", 1},
		{"5.2", "5.3", -1},
		{"5.10", "5.9", -1},
		{"07", "7", 1},
		{"7", "07", -1},
		{"5.2", "12", -1},
		{"9.9", "10", -1},
	}

	for _, tt := range tests {
		got := Compare(MustNumber(tt.a), MustNumber(tt.b))
		if got != tt.want {
			t.Fatalf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompareTotalOrder(t *testing.T) {
	tokens := []string{
		"0", "1", "2", "9", "10", "11", "99", "100", "007", "07", "7",
		"1.0", "1.1", "1.10", "1.2", "1.01", "12.5", "12.50", "100.1",
	}
	nums := make([]Number, len(tokens))
	for i, tok := range tokens {
		nums[i] = MustNumber(tok)
	}

	for _, a := range nums {
		for _, b := range nums {
			ab, ba := Compare(a, b), Compare(b, a)

			if (ab == 0) != (a.Raw() == b.Raw()) {
				t.Fatalf("Compare(%q, %q) = %d, inconsistent with equality", a, b, ab)
			}
			if (a == b) != a.Equal(b) {
				t.Fatalf("== and Equal disagree for %q, %q", a, b)
			}
			if ab != -ba {
				t.Fatalf("Compare not antisymmetric for %q, %q: %d vs %d", a, b, ab, ba)
			}

			for _, c := range nums {
				if ab < 0 && Compare(b, c) < 0 && Compare(a, c) >= 0 {
					t.Fatalf("Compare not transitive: %q < %q < %q", a, b, c)
				}
			}
		}
	}
}

func TestParseNumberRejects(t *testing.T) {
	for _, raw := range []string{"", ".", "1.", ".1", "1.2.3", "-1", "1a", " 1", "１"} {
		if _, err := ParseNumber(raw); err == nil {
			t.Fatalf("ParseNumber(%q) succeeded, want error", raw)
		}
	}
}

func TestNumberLess(t *testing.T) {
	if !MustNumber("5").Less(MustNumber("5.1")) {
		t.Fatal(`"5" should be less than "5.1"`)
	}
	if MustNumber("12").Less(MustNumber("5")) {
		t.Fatal(`"12" should not be less than "5"`)
	}
	if !(Number{}).IsZero() {
		t.Fatal("zero Number should report IsZero")
	}
}
