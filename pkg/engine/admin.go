// Admin API: definition CRUD, record seeding, and request history,
// mounted beside the dynamic dispatch surface.

package engine

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mockforge/mockforge/pkg/definition"
	"github.com/mockforge/mockforge/pkg/requestlog"
)

// AdminPrefix is the default mount point for the admin API.
const AdminPrefix = "/__mockforge"

// DefaultSeedCount is used when a generate request names no count.
const DefaultSeedCount = 10

// Admin serves the management API for a Handler.
type Admin struct {
	h     *Handler
	start time.Time
}

// NewAdmin creates the admin API over a dispatch handler.
func NewAdmin(h *Handler) *Admin {
	return &Admin{h: h, start: time.Now()}
}

// Router builds the admin route tree.
func (a *Admin) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", a.health)

	r.Route("/apis", func(r chi.Router) {
		r.Get("/", a.listAPIs)
		r.Post("/", a.createAPI)
		r.Get("/{id}", a.getAPI)
		r.Delete("/{id}", a.deleteAPI)
	})

	r.Route("/resources", func(r chi.Router) {
		r.Get("/", a.listResources)
		r.Post("/", a.createResource)
		r.Get("/{name}", a.getResource)
		r.Delete("/{name}", a.deleteResource)
		r.Get("/{name}/records", a.listRecords)
		r.Post("/{name}/generate", a.generate)
	})

	r.Route("/requests", func(r chi.Router) {
		r.Get("/", a.listRequests)
		r.Delete("/", a.clearRequests)
	})

	return r
}

func (a *Admin) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(a.start).Round(time.Second).String(),
	})
}

func (a *Admin) listAPIs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.h.defs.CustomAPIs())
}

func (a *Admin) createAPI(w http.ResponseWriter, r *http.Request) {
	var api definition.CustomAPI
	if err := json.NewDecoder(r.Body).Decode(&api); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := a.h.defs.AddCustomAPI(&api); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, &api)
}

func (a *Admin) getAPI(w http.ResponseWriter, r *http.Request) {
	api := a.h.defs.CustomAPIByID(chi.URLParam(r, "id"))
	if api == nil {
		writeError(w, http.StatusNotFound, "custom api not found")
		return
	}
	writeJSON(w, http.StatusOK, api)
}

func (a *Admin) deleteAPI(w http.ResponseWriter, r *http.Request) {
	if !a.h.defs.DeleteCustomAPI(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "custom api not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *Admin) listResources(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.h.defs.Resources())
}

func (a *Admin) createResource(w http.ResponseWriter, r *http.Request) {
	var res definition.Resource
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := a.h.defs.AddResource(&res); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, &res)
}

func (a *Admin) getResource(w http.ResponseWriter, r *http.Request) {
	res := a.h.defs.ResourceByName(chi.URLParam(r, "name"))
	if res == nil {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// deleteResource removes the definition and drops its records.
func (a *Admin) deleteResource(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !a.h.defs.DeleteResource(name) {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}
	a.h.store.Drop(name)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *Admin) listRecords(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if a.h.defs.ResourceByName(name) == nil {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}
	writeJSON(w, http.StatusOK, a.h.store.Collection(name))
}

// generate replaces the resource's collection with fresh fake records.
func (a *Admin) generate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	res := a.h.defs.ResourceByName(name)
	if res == nil {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}

	count := DefaultSeedCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "count must be a positive integer")
			return
		}
		count = n
	}

	recs := a.h.SeedResource(res, count)
	writeJSON(w, http.StatusOK, map[string]any{"count": len(recs), "data": recs})
}

func (a *Admin) listRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := &requestlog.Filter{
		Method: q.Get("method"),
		Path:   q.Get("path"),
		Match:  requestlog.MatchKind(q.Get("match")),
	}
	if s := q.Get("status"); s != "" {
		filter.Status, _ = strconv.Atoi(s)
	}
	if s := q.Get("limit"); s != "" {
		filter.Limit, _ = strconv.Atoi(s)
	}
	if s := q.Get("offset"); s != "" {
		filter.Offset, _ = strconv.Atoi(s)
	}
	writeJSON(w, http.StatusOK, a.h.history.List(filter))
}

func (a *Admin) clearRequests(w http.ResponseWriter, _ *http.Request) {
	a.h.history.Clear()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
