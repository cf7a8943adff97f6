// Resource collection and item CRUD handlers.

package engine

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mockforge/mockforge/internal/routing"
	"github.com/mockforge/mockforge/pkg/query"
	"github.com/mockforge/mockforge/pkg/records"
)

// serveResource dispatches CRUD operations for a resolved resource.
func (h *Handler) serveResource(w http.ResponseWriter, r *http.Request, m *routing.ResourceMatch, body []byte) int {
	name := m.Resource.Name

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if m.ItemID != "" {
			return h.getItem(w, name, m.ItemID)
		}
		return h.listCollection(w, r, name)

	case http.MethodPost:
		if m.ItemID != "" {
			return writeError(w, http.StatusBadRequest, "POST targets the collection, not an item")
		}
		return h.createItem(w, name, body)

	case http.MethodPut, http.MethodPatch:
		if m.ItemID == "" {
			return writeError(w, http.StatusBadRequest, "item id required")
		}
		return h.updateItem(w, name, m.ItemID, body)

	case http.MethodDelete:
		if m.ItemID == "" {
			return writeError(w, http.StatusBadRequest, "item id required")
		}
		return h.deleteItem(w, name, m.ItemID)

	case http.MethodOptions:
		w.Header().Set("Allow", "GET, POST, PUT, PATCH, DELETE, OPTIONS, HEAD")
		w.WriteHeader(http.StatusNoContent)
		return http.StatusNoContent

	default:
		return writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// listCollection runs the query pipeline over a collection snapshot.
func (h *Handler) listCollection(w http.ResponseWriter, r *http.Request, name string) int {
	directives := query.Parse(r.URL.Query())
	snapshot := h.store.Collection(name)
	result := query.Apply(name, snapshot, directives, h.store)
	return writeJSON(w, http.StatusOK, result)
}

func (h *Handler) getItem(w http.ResponseWriter, name, id string) int {
	rec, ok := h.store.Find(name, id)
	if !ok {
		return writeItemNotFound(w, name, id)
	}
	return writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) createItem(w http.ResponseWriter, name string, body []byte) int {
	data := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &data); err != nil {
			return writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		}
	}
	created := h.store.Append(name, records.Record(data))
	return writeJSON(w, http.StatusCreated, created)
}

// updateItem shallow-merges the body into the stored record; PUT and
// PATCH behave identically.
func (h *Handler) updateItem(w http.ResponseWriter, name, id string, body []byte) int {
	patch := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &patch); err != nil {
			return writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		}
	}

	merged, err := h.store.UpdateItem(name, id, patch)
	if err != nil {
		var nf *records.NotFoundError
		if errors.As(err, &nf) {
			return writeItemNotFound(w, name, id)
		}
		h.log.Error("update item", "resource", name, "id", id, "error", err)
		return writeInternalError(w)
	}
	return writeJSON(w, http.StatusOK, merged)
}

func (h *Handler) deleteItem(w http.ResponseWriter, name, id string) int {
	if err := h.store.DeleteItem(name, id); err != nil {
		var nf *records.NotFoundError
		if errors.As(err, &nf) {
			return writeItemNotFound(w, name, id)
		}
		h.log.Error("delete item", "resource", name, "id", id, "error", err)
		return writeInternalError(w)
	}
	return writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
