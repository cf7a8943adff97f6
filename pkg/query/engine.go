package query

import (
	"strings"

	"github.com/mockforge/mockforge/pkg/records"
)

// Source exposes other resource collections for embed/expand joins.
// *records.Store satisfies it.
type Source interface {
	Collection(name string) []records.Record
}

// Pagination is the metadata block of a collection response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Result is the collection query envelope.
type Result struct {
	Data       []records.Record `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// Apply runs the pipeline over a record snapshot in fixed order:
// filter, search, sort, paginate, embed, expand. resource is the name
// of the collection being queried (embed joins derive the foreign key
// from it); source provides related collections and may be nil when no
// embed/expand is requested.
func Apply(resource string, recs []records.Record, d Directives, source Source) Result {
	if d.Page < 1 {
		d.Page = DefaultPage
	}
	if d.Limit < 1 {
		d.Limit = DefaultLimit
	}

	recs = applyFilters(recs, d.Filters)
	recs = applySearch(recs, d.Search)
	recs = applySort(recs, d.Sort)

	page, meta := paginate(recs, d.Page, d.Limit)

	// Joins run over the page only, not the full filtered set.
	if source != nil {
		for _, name := range d.Embed {
			embed(page, resource, name, source)
		}
		for _, name := range d.Expand {
			expand(page, name, source)
		}
	}

	return Result{Data: page, Pagination: meta}
}

// paginate slices out the requested page. Out-of-range pages yield an
// empty page, not an error.
func paginate(recs []records.Record, page, limit int) ([]records.Record, Pagination) {
	total := len(recs)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	out := make([]records.Record, end-start)
	copy(out, recs[start:end])

	return out, Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// embed attaches, under the embedded resource's name, every record of
// that resource whose <singular-parent>Id field equals the page
// record's id. users embedding posts looks for posts.userId.
func embed(page []records.Record, resource, embedName string, source Source) {
	children := source.Collection(embedName)
	fk := singularize(resource) + "Id"

	for _, rec := range page {
		matched := make([]records.Record, 0)
		for _, child := range children {
			if fkEqual(child[fk], rec.ID()) {
				matched = append(matched, child)
			}
		}
		rec[embedName] = matched
	}
}

// expand attaches, under the singular expand-resource name, the single
// record of that resource whose id equals the page record's
// <singular-expand>Id field. posts expanding users looks up
// post.userId against users.id.
func expand(page []records.Record, expandName string, source Source) {
	parents := source.Collection(expandName)
	singular := singularize(expandName)
	fk := singular + "Id"

	for _, rec := range page {
		want, ok := rec[fk]
		if !ok || want == nil {
			continue
		}
		for _, parent := range parents {
			if fkEqual(want, parent.ID()) {
				rec[singular] = parent
				break
			}
		}
	}
}

// fkEqual loosely compares a foreign key field against a record id.
// Foreign keys may be stored as numbers; ids are strings.
func fkEqual(fk any, id string) bool {
	if fk == nil {
		return false
	}
	return stringify(fk) == id
}

// singularize drops a trailing "s". A documented limitation, not
// general English pluralization: "users" -> "user", "statuses" ->
// "statuse".
func singularize(name string) string {
	return strings.TrimSuffix(name, "s")
}
