package chapters

import (
	"fmt"
	"strings"
)

// Number is a chapter position inside a series, kept as the token seen in
// the URL ("12", "12.5"). The integer and fraction parts are derived from
// raw once, so two Numbers are == exactly when their raw tokens are equal.
type Number struct {
	raw      string
	integer  string
	fraction string
	hasFrac  bool
}

// ParseNumber validates a chapter token: one or more ASCII digits,
// optionally followed by a dot and one or more ASCII digits.
func ParseNumber(raw string) (Number, error) {
	integer, fraction, hasFrac := strings.Cut(raw, ".")
	if !allDigits(integer) || (hasFrac && !allDigits(fraction)) {
		return Number{}, fmt.Errorf("%w: chapter token %q", ErrMalformedIdentifier, raw)
	}

	return Number{
		raw:      raw,
		integer:  integer,
		fraction: fraction,
		hasFrac:  hasFrac,
	}, nil
}

// MustNumber is ParseNumber for literals; it panics on a bad token.
func MustNumber(raw string) Number {
	n, err := ParseNumber(raw)
	if err != nil {
		panic(err)
	}

	return n
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

func (n Number) Raw() string    { return n.raw }
func (n Number) String() string { return n.raw }
func (n Number) IsZero() bool   { return n.raw == "" }

func (n Number) Equal(o Number) bool { return n.raw == o.raw }
func (n Number) Less(o Number) bool  { return Compare(n, o) < 0 }

// Compare orders chapter numbers and returns -1, 0 or +1.
//
// Integer parts are compared by length first and only then
// lexicographically, so "99" < "100" but "7" < "07". A number without a
// fraction sorts before the same number with one, and fractions compare
// as plain strings ("5.10" < "5.9").
func Compare(a, b Number) int {
	if a.raw == b.raw {
		return 0
	}

	switch {
	case len(a.integer) < len(b.integer):
		return -1
	case len(a.integer) > len(b.integer):
		return 1
	}

	if c := strings.Compare(a.integer, b.integer); c != 0 {
		return c
	}

	switch {
	case !a.hasFrac && b.hasFrac:
		return -1
	case a.hasFrac && !b.hasFrac:
		return 1
	}

	return strings.Compare(a.fraction, b.fraction)
}
