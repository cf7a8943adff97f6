package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the parsed form of a query value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
)

// Scalar is a query value parsed into a small tagged union so coercion
// rules are explicit instead of relying on implicit conversion: a value
// that parses as a number or boolean carries that form alongside the
// raw string.
type Scalar struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
}

// ParseScalar classifies a raw query value.
func ParseScalar(raw string) Scalar {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return Scalar{Kind: KindNumber, Str: raw, Num: n}
	}
	if b, err := strconv.ParseBool(strings.ToLower(raw)); err == nil {
		return Scalar{Kind: KindBool, Str: raw, Bool: b}
	}
	return Scalar{Kind: KindString, Str: raw}
}

// numeric converts a record field value to float64 when possible.
// JSON numbers arrive as float64; ints appear in hand-built fixtures.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// stringify renders a field value the way loose comparisons see it.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// containsFold reports case-insensitive substring containment.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
