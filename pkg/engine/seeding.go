package engine

import (
	"github.com/mockforge/mockforge/pkg/definition"
	"github.com/mockforge/mockforge/pkg/records"
)

// SeedResource replaces a resource's collection with count generated
// records. Relation fields draw ids from the already-seeded collection
// they point at, so parents must be seeded before children.
func (h *Handler) SeedResource(res *definition.Resource, count int) []records.Record {
	pools := map[string][]string{}
	for _, f := range res.Fields {
		if f.Type != definition.FieldRelation || f.Hint == "" {
			continue
		}
		ids := make([]string, 0)
		for _, rec := range h.store.Collection(f.Hint) {
			ids = append(ids, rec.ID())
		}
		pools[f.Hint] = ids
	}

	recs := h.gen.Generate(res.Fields, count, pools)
	h.store.ReplaceAll(res.Name, recs)
	h.log.Info("seeded resource", "resource", res.Name, "count", len(recs))
	return recs
}
