// Response writing helpers shared by the dispatch handlers.

package engine

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mockforge/mockforge/internal/routing"
)

// errorResponse is the generic error payload shape.
type errorResponse struct {
	Error              string   `json:"error"`
	Hint               string   `json:"hint,omitempty"`
	AvailableResources []string `json:"availableResources,omitempty"`
	AvailableAPIs      []string `json:"availableApis,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
	return status
}

func writeError(w http.ResponseWriter, status int, msg string) int {
	return writeJSON(w, status, errorResponse{Error: msg})
}

// writeNotFound reports a resolution failure with the definitions that
// do exist, so a caller can spot a typo.
func writeNotFound(w http.ResponseWriter, nf *routing.NotFoundError) int {
	return writeJSON(w, http.StatusNotFound, errorResponse{
		Error:              fmt.Sprintf("no endpoint matches %s %s", nf.Method, nf.Path),
		Hint:               "check the available resources and custom APIs below",
		AvailableResources: nf.AvailableResources,
		AvailableAPIs:      nf.AvailableAPIs,
	})
}

func writeItemNotFound(w http.ResponseWriter, resource, id string) int {
	return writeJSON(w, http.StatusNotFound, errorResponse{
		Error: fmt.Sprintf("record %q not found in %q", id, resource),
	})
}

func writeInternalError(w http.ResponseWriter) int {
	return writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}
