package engine

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockforge/mockforge/pkg/definition"
	"github.com/mockforge/mockforge/pkg/records"
)

func newTestAdmin(t *testing.T) (*Admin, *Handler, *definition.Registry, *records.Store) {
	t.Helper()
	reg := definition.NewRegistry()
	store := records.NewStore()
	h := NewHandler(reg, store, WithGenerator(sequentialGenerator{}))
	return NewAdmin(h), h, reg, store
}

// sequentialGenerator makes seeding deterministic for assertions.
type sequentialGenerator struct{}

func (sequentialGenerator) Generate(fields []definition.Field, count int, pools map[string][]string) []records.Record {
	out := make([]records.Record, count)
	for i := range out {
		rec := records.Record{"id": string(rune('a' + i)), "createdAt": "2026-01-01T00:00:00Z"}
		for _, f := range fields {
			if f.Type == definition.FieldRelation {
				if pool := pools[f.Hint]; len(pool) > 0 {
					rec[f.Name] = pool[0]
				}
				continue
			}
			rec[f.Name] = "v"
		}
		out[i] = rec
	}
	return out
}

func adminDo(a *Admin, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)
	return w
}

func TestAdminHealth(t *testing.T) {
	a, _, _, _ := newTestAdmin(t)
	w := adminDo(a, "GET", "/health", "")
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAdminAPILifecycle(t *testing.T) {
	a, _, _, _ := newTestAdmin(t)

	w := adminDo(a, "POST", "/apis", `{"method":"GET","path":"/ping","statusCode":200,"body":{"pong":true}}`)
	require.Equal(t, 201, w.Code)
	var created definition.CustomAPI
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = adminDo(a, "GET", "/apis", "")
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "/ping")

	w = adminDo(a, "GET", "/apis/"+created.ID, "")
	assert.Equal(t, 200, w.Code)

	w = adminDo(a, "DELETE", "/apis/"+created.ID, "")
	assert.Equal(t, 200, w.Code)

	w = adminDo(a, "GET", "/apis/"+created.ID, "")
	assert.Equal(t, 404, w.Code)
}

func TestAdminRejectsInvalidAPI(t *testing.T) {
	a, _, _, _ := newTestAdmin(t)
	w := adminDo(a, "POST", "/apis", `{"method":"YEET","path":"/x","statusCode":200}`)
	assert.Equal(t, 400, w.Code)
}

func TestAdminResourceLifecycleDropsRecords(t *testing.T) {
	a, _, _, store := newTestAdmin(t)

	w := adminDo(a, "POST", "/resources", `{"name":"users","fields":[{"name":"name","type":"string"}]}`)
	require.Equal(t, 201, w.Code)

	store.Append("users", records.Record{"name": "Ada"})
	require.Equal(t, 1, store.Count("users"))

	w = adminDo(a, "GET", "/resources/users/records", "")
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "Ada")

	w = adminDo(a, "DELETE", "/resources/users", "")
	require.Equal(t, 200, w.Code)
	assert.Zero(t, store.Count("users"))

	w = adminDo(a, "GET", "/resources/users", "")
	assert.Equal(t, 404, w.Code)
}

func TestAdminGenerate(t *testing.T) {
	a, _, _, store := newTestAdmin(t)
	require.Equal(t, 201, adminDo(a, "POST", "/resources", `{"name":"users","fields":[{"name":"name","type":"string"}]}`).Code)

	w := adminDo(a, "POST", "/resources/users/generate?count=3", "")
	require.Equal(t, 200, w.Code)
	var resp struct {
		Count int              `json:"count"`
		Data  []records.Record `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, 3, store.Count("users"))

	// Regenerating replaces rather than appends.
	adminDo(a, "POST", "/resources/users/generate?count=2", "")
	assert.Equal(t, 2, store.Count("users"))

	w = adminDo(a, "POST", "/resources/users/generate?count=zero", "")
	assert.Equal(t, 400, w.Code)

	w = adminDo(a, "POST", "/resources/ghosts/generate", "")
	assert.Equal(t, 404, w.Code)
}

func TestAdminGenerateFillsRelationPools(t *testing.T) {
	a, h, reg, store := newTestAdmin(t)
	require.NoError(t, reg.AddResource(&definition.Resource{
		Name:   "users",
		Fields: []definition.Field{{Name: "name", Type: definition.FieldString}},
	}))
	require.NoError(t, reg.AddResource(&definition.Resource{
		Name: "posts",
		Fields: []definition.Field{
			{Name: "title", Type: definition.FieldString},
			{Name: "userId", Type: definition.FieldRelation, Hint: "users"},
		},
	}))

	h.SeedResource(reg.ResourceByName("users"), 2)
	w := adminDo(a, "POST", "/resources/posts/generate?count=4", "")
	require.Equal(t, 200, w.Code)

	userIDs := map[string]bool{}
	for _, rec := range store.Collection("users") {
		userIDs[rec.ID()] = true
	}
	for _, rec := range store.Collection("posts") {
		assert.True(t, userIDs[rec["userId"].(string)], "userId points at a seeded user")
	}
}

func TestAdminRequestHistory(t *testing.T) {
	a, h, reg, _ := newTestAdmin(t)
	require.NoError(t, reg.AddResource(&definition.Resource{
		Name:   "users",
		Fields: []definition.Field{{Name: "name", Type: definition.FieldString}},
	}))

	dispatch(h, "GET", "/users", "")
	dispatch(h, "POST", "/users", `{"name":"Ada"}`)

	w := adminDo(a, "GET", "/requests?method=POST", "")
	require.Equal(t, 200, w.Code)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "POST", entries[0]["method"])

	require.Equal(t, 200, adminDo(a, "DELETE", "/requests", "").Code)
	assert.Zero(t, h.History().Count())
}
