// Package query implements the collection query pipeline: filter,
// search, sort, paginate, embed, expand — in that fixed order — over a
// record snapshot. The pipeline never mutates its input.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Defaults applied when _page/_limit are absent or unparseable.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// reserved query keys; everything else is a filter.
var reserved = map[string]bool{
	"_page":   true,
	"_limit":  true,
	"_sort":   true,
	"_order":  true,
	"_embed":  true,
	"_expand": true,
	"_search": true,
}

// Op is a filter comparison operator, derived from the key suffix.
type Op int

const (
	OpEq  Op = iota // plain key: equality-or-containment
	OpGte           // <field>_gte
	OpLte           // <field>_lte
	OpGt            // <field>_gt
	OpLt            // <field>_lt
	OpNe            // <field>_ne
)

// opSuffixes maps key suffixes to operators. Checked longest-first so
// "_gte" wins over "_gt".
var opSuffixes = []struct {
	suffix string
	op     Op
}{
	{"_gte", OpGte},
	{"_lte", OpLte},
	{"_gt", OpGt},
	{"_lt", OpLt},
	{"_ne", OpNe},
}

// Filter is one query filter: field, operator, and the raw value
// pre-parsed into a tagged scalar.
type Filter struct {
	Field string
	Op    Op
	Value Scalar
}

// SortKey is one entry of a multi-key sort.
type SortKey struct {
	Field string
	Desc  bool
}

// Directives is the parsed form of a collection query string.
type Directives struct {
	Filters []Filter
	Search  string
	Sort    []SortKey
	Page    int
	Limit   int
	Embed   []string
	Expand  []string
}

// Parse extracts directives from a query string. Unparseable paging or
// sort input degrades to defaults rather than erroring.
func Parse(values url.Values) Directives {
	d := Directives{Page: DefaultPage, Limit: DefaultLimit}

	if page, err := strconv.Atoi(values.Get("_page")); err == nil && page >= 1 {
		d.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("_limit")); err == nil && limit > 0 {
		d.Limit = limit
	}

	d.Search = values.Get("_search")
	d.Embed = splitList(values.Get("_embed"))
	d.Expand = splitList(values.Get("_expand"))

	fields := splitList(values.Get("_sort"))
	orders := splitList(values.Get("_order"))
	for i, field := range fields {
		key := SortKey{Field: field}
		if i < len(orders) && strings.EqualFold(orders[i], "desc") {
			key.Desc = true
		}
		d.Sort = append(d.Sort, key)
	}

	for key, vals := range values {
		if reserved[key] || len(vals) == 0 {
			continue
		}
		field, op := parseFilterKey(key)
		d.Filters = append(d.Filters, Filter{Field: field, Op: op, Value: ParseScalar(vals[0])})
	}

	return d
}

// parseFilterKey splits an operator suffix off a filter key.
func parseFilterKey(key string) (string, Op) {
	for _, s := range opSuffixes {
		if field, ok := strings.CutSuffix(key, s.suffix); ok && field != "" {
			return field, s.op
		}
	}
	return key, OpEq
}

// splitList splits a comma-separated directive value, dropping empties.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
