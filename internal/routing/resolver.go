// Package routing decides which definition handles a request: custom
// APIs first, in declaration order, then resource collections.
package routing

import (
	"fmt"
	"strings"

	"github.com/mockforge/mockforge/pkg/definition"
)

// CustomAPIMatch is a request resolved to a custom API definition.
type CustomAPIMatch struct {
	API *definition.CustomAPI
	// Params holds :param template bindings, e.g. {"id": "42"}.
	Params map[string]string
}

// ResourceMatch is a request resolved to a resource collection,
// optionally addressing a single item.
type ResourceMatch struct {
	Resource *definition.Resource
	ItemID   string
}

// Match is the outcome of a successful resolution; exactly one field
// is set.
type Match struct {
	CustomAPI *CustomAPIMatch
	Resource  *ResourceMatch
}

// NotFoundError carries diagnostic hints: the resource names and
// custom API signatures that do exist.
type NotFoundError struct {
	Method             string
	Path               string
	AvailableResources []string
	AvailableAPIs      []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no definition matches %s %s", e.Method, e.Path)
}

// Resolver resolves (method, path) pairs against a definition
// repository. Precedence is explicit: every custom API is tried before
// any resource, and overlapping custom API templates resolve to the
// first declared match, not the most specific one.
type Resolver struct {
	defs definition.Repository
}

// NewResolver creates a Resolver over a definition repository.
func NewResolver(defs definition.Repository) *Resolver {
	return &Resolver{defs: defs}
}

// Resolve decides which definition handles the request. The returned
// error is always a *NotFoundError.
func (r *Resolver) Resolve(method, path string) (Match, error) {
	// Custom APIs: linear scan in declaration order, first match wins.
	for _, api := range r.defs.CustomAPIs() {
		if api.Method != method {
			continue
		}
		if params, ok := MatchTemplate(api.Path, path); ok {
			return Match{CustomAPI: &CustomAPIMatch{API: api, Params: params}}, nil
		}
	}

	// Resources: first segment is the collection name, optional second
	// segment is the item id. The literal "undefined" is treated as no
	// id (UI clients serialize missing ids that way).
	segs := splitPath(path)
	if len(segs) >= 1 && len(segs) <= 2 {
		if res := r.defs.ResourceByName(segs[0]); res != nil {
			match := &ResourceMatch{Resource: res}
			if len(segs) == 2 && segs[1] != "undefined" {
				match.ItemID = segs[1]
			}
			return Match{Resource: match}, nil
		}
	}

	return Match{}, r.notFound(method, path)
}

// notFound builds the diagnostic failure payload.
func (r *Resolver) notFound(method, path string) *NotFoundError {
	e := &NotFoundError{Method: method, Path: path}
	for _, res := range r.defs.Resources() {
		e.AvailableResources = append(e.AvailableResources, res.Name)
	}
	for _, api := range r.defs.CustomAPIs() {
		e.AvailableAPIs = append(e.AvailableAPIs, api.Signature())
	}
	return e
}

// MatchTemplate checks a request path against a path template.
// Templates match exactly, or segment-wise where a colon-prefixed
// segment binds any single path segment; templates never span
// segments. Returns the bound parameters on success.
func MatchTemplate(template, path string) (map[string]string, bool) {
	if template == path {
		return map[string]string{}, true
	}

	tsegs := splitPath(template)
	psegs := splitPath(path)
	if len(tsegs) != len(psegs) {
		return nil, false
	}

	params := make(map[string]string)
	for i, tseg := range tsegs {
		if strings.HasPrefix(tseg, ":") && len(tseg) > 1 {
			params[tseg[1:]] = psegs[i]
			continue
		}
		if tseg != psegs[i] {
			return nil, false
		}
	}
	return params, true
}

// splitPath breaks a path into segments, ignoring leading/trailing
// slashes. "/" yields no segments.
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
