package query

import (
	"strconv"
	"strings"

	"github.com/mockforge/mockforge/pkg/records"
)

// applyFilters narrows recs by every filter in turn (AND composition).
func applyFilters(recs []records.Record, filters []Filter) []records.Record {
	for _, f := range filters {
		kept := recs[:0:0]
		for _, rec := range recs {
			if matchFilter(rec, f) {
				kept = append(kept, rec)
			}
		}
		recs = kept
	}
	return recs
}

// matchFilter evaluates one filter against one record.
func matchFilter(rec records.Record, f Filter) bool {
	value, present := rec[f.Field]

	if f.Op != OpEq {
		return matchComparison(value, present, f)
	}

	// Plain key: equality-or-containment, by field value type.
	if !present || value == nil {
		return false
	}
	switch v := value.(type) {
	case string:
		return containsFold(v, f.Value.Str)
	case bool:
		return strings.EqualFold(f.Value.Str, strconv.FormatBool(v))
	case []any:
		for _, elem := range v {
			if s, ok := elem.(string); ok {
				if containsFold(s, f.Value.Str) {
					return true
				}
			} else if stringify(elem) == f.Value.Str {
				return true
			}
		}
		return false
	default:
		if n, ok := numeric(value); ok {
			if f.Value.Kind == KindNumber {
				return n == f.Value.Num
			}
			return stringify(value) == f.Value.Str
		}
		return stringify(value) == f.Value.Str
	}
}

// matchComparison handles the _gte/_lte/_gt/_lt/_ne suffix operators.
// Both sides coerce to numbers when possible, otherwise the comparison
// falls back to the string forms.
func matchComparison(value any, present bool, f Filter) bool {
	if f.Op == OpNe {
		if !present || value == nil {
			// A missing field is loosely unequal to any value.
			return true
		}
		if n, ok := numeric(value); ok && f.Value.Kind == KindNumber {
			return n != f.Value.Num
		}
		return stringify(value) != f.Value.Str
	}

	if !present || value == nil {
		return false
	}

	var cmp int
	if n, ok := numeric(value); ok && f.Value.Kind == KindNumber {
		switch {
		case n < f.Value.Num:
			cmp = -1
		case n > f.Value.Num:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(stringify(value), f.Value.Str)
	}

	switch f.Op {
	case OpGte:
		return cmp >= 0
	case OpLte:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpLt:
		return cmp < 0
	}
	return false
}

// applySearch keeps records where any string field, or the string form
// of any number field, contains term case-insensitively. Other field
// types are not searched.
func applySearch(recs []records.Record, term string) []records.Record {
	if term == "" {
		return recs
	}
	kept := recs[:0:0]
	for _, rec := range recs {
		if recordMatchesSearch(rec, term) {
			kept = append(kept, rec)
		}
	}
	return kept
}

func recordMatchesSearch(rec records.Record, term string) bool {
	for _, value := range rec {
		switch v := value.(type) {
		case string:
			if containsFold(v, term) {
				return true
			}
		case float64, float32, int, int32, int64:
			if containsFold(stringify(v), term) {
				return true
			}
		}
	}
	return false
}
