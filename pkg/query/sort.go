package query

import (
	"sort"
	"strings"

	"github.com/mockforge/mockforge/pkg/records"
)

// applySort orders recs by the sort keys, left to right. The sort is
// stable: records equal on every key keep their snapshot order. A
// record missing a value on the current key sorts after a record with
// one, regardless of direction.
func applySort(recs []records.Record, keys []SortKey) []records.Record {
	if len(keys) == 0 {
		return recs
	}

	out := make([]records.Record, len(recs))
	copy(out, recs)

	sort.SliceStable(out, func(i, j int) bool {
		for _, key := range keys {
			a, aOK := out[i][key.Field]
			b, bOK := out[j][key.Field]
			aOK = aOK && a != nil
			bOK = bOK && b != nil

			// Nulls last, independent of direction.
			if !aOK || !bOK {
				if aOK == bOK {
					continue // both missing, next key
				}
				return aOK
			}

			cmp := compareValues(a, b)
			if cmp == 0 {
				continue
			}
			if key.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})

	return out
}

// compareValues orders two field values: numerically when both sides
// are numbers, lexicographically on their string forms otherwise.
func compareValues(a, b any) int {
	an, aNum := numeric(a)
	bn, bNum := numeric(b)
	if aNum && bNum {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(stringify(a), stringify(b))
}
