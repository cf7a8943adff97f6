// Dependent API dispatch for conditional rules.

package engine

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mockforge/mockforge/pkg/conditional"
)

// maxDependentDepth bounds nested dependentApi chains. A chain deeper
// than this fails the condition rather than recursing further.
const maxDependentDepth = 5

// dependentCaller resolves dependentApi conditions by evaluating the
// referenced custom API in-process. The visited set and depth bound
// make cycles and runaway chains fail closed instead of looping.
type dependentCaller struct {
	h       *Handler
	visited map[string]bool
	depth   int
}

func newDependentCaller(h *Handler) *dependentCaller {
	return &dependentCaller{h: h, visited: map[string]bool{}}
}

// CallCustomAPI returns the decoded JSON response a request to the
// custom API would produce. The dependent API sees an empty request
// context; its webhook, if any, does not fire for internal calls.
func (c *dependentCaller) CallCustomAPI(id string) (any, error) {
	if c.visited[id] {
		return nil, fmt.Errorf("dependent api cycle at %q", id)
	}
	if c.depth >= maxDependentDepth {
		return nil, fmt.Errorf("dependent api chain exceeds depth %d", maxDependentDepth)
	}

	api := c.h.defs.CustomAPIByID(id)
	if api == nil {
		return nil, fmt.Errorf("custom api %q not registered", id)
	}

	body := api.Body
	if api.Conditional != nil {
		child := &dependentCaller{h: c.h, visited: c.visited, depth: c.depth + 1}
		c.visited[id] = true
		out := c.h.eval.Evaluate(api, api.Conditional, &conditional.RequestContext{
			Headers: http.Header{},
			Query:   url.Values{},
			Caller:  child,
		})
		body = out.Body
	}

	if len(body) == 0 || string(body) == "null" {
		return nil, fmt.Errorf("custom api %q has no response body", id)
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("decode response of custom api %q: %w", id, err)
	}
	return v, nil
}
