// Package engine dispatches requests against the registered
// definitions: custom APIs first, then resource collections, with the
// query pipeline, conditional evaluation, and webhook notification
// wired in.
package engine

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mockforge/mockforge/internal/routing"
	"github.com/mockforge/mockforge/pkg/conditional"
	"github.com/mockforge/mockforge/pkg/definition"
	"github.com/mockforge/mockforge/pkg/logging"
	"github.com/mockforge/mockforge/pkg/records"
	"github.com/mockforge/mockforge/pkg/requestlog"
	"github.com/mockforge/mockforge/pkg/seed"
	"github.com/mockforge/mockforge/pkg/webhook"
)

// MaxBodySize caps request bodies read by the dispatcher.
const MaxBodySize = 1 << 20 // 1MB

// Handler is the dynamic dispatch surface. Every method on every path
// goes through the same resolution logic.
type Handler struct {
	defs     definition.Repository
	store    *records.Store
	resolver *routing.Resolver
	eval     *conditional.Evaluator
	hooks    *webhook.Notifier
	history  *requestlog.Log
	gen      seed.Generator
	log      *slog.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithNotifier sets the webhook notifier.
func WithNotifier(n *webhook.Notifier) HandlerOption {
	return func(h *Handler) {
		if n != nil {
			h.hooks = n
		}
	}
}

// WithHistory sets the request history log.
func WithHistory(l *requestlog.Log) HandlerOption {
	return func(h *Handler) {
		h.history = l
	}
}

// WithGenerator sets the record generator used for seeding.
func WithGenerator(g seed.Generator) HandlerOption {
	return func(h *Handler) {
		if g != nil {
			h.gen = g
		}
	}
}

// NewHandler creates a dispatcher over a definition repository and a
// record store.
func NewHandler(defs definition.Repository, store *records.Store, opts ...HandlerOption) *Handler {
	h := &Handler{
		defs:     defs,
		store:    store,
		resolver: routing.NewResolver(defs),
		hooks:    webhook.New(),
		history:  requestlog.New(0),
		gen:      seed.NewFaker(),
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.eval = conditional.New(h.log)
	return h
}

// Notifier returns the webhook notifier, for draining on shutdown.
func (h *Handler) Notifier() *webhook.Notifier { return h.hooks }

// History returns the request history log.
func (h *Handler) History() *requestlog.Log { return h.history }

// ServeHTTP resolves and dispatches one request. Nothing escapes this
// boundary: resolution failures become 404 payloads with hints, panics
// become a generic 500.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	entry := &requestlog.Entry{Method: r.Method, Path: r.URL.Path}

	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error("dispatch panic", "method", r.Method, "path", r.URL.Path, "panic", rec)
			entry.Status = writeInternalError(w)
			entry.Error = "panic"
		}
		entry.Duration = time.Since(start).Milliseconds()
		h.history.Record(entry)
	}()

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize))
	if err != nil {
		h.log.Error("read request body", "error", err)
		body = nil
	}

	match, resolveErr := h.resolver.Resolve(r.Method, r.URL.Path)
	if resolveErr != nil {
		entry.Match = requestlog.MatchNone
		nf := resolveErr.(*routing.NotFoundError)
		entry.Status = writeNotFound(w, nf)
		return
	}

	switch {
	case match.CustomAPI != nil:
		entry.Match = requestlog.MatchCustomAPI
		entry.MatchedID = match.CustomAPI.API.ID
		entry.Status = h.serveCustomAPI(w, r, match.CustomAPI.API, body)
	case match.Resource != nil:
		entry.Match = requestlog.MatchResource
		entry.MatchedID = match.Resource.Resource.Name
		entry.Status = h.serveResource(w, r, match.Resource, body)
	}
}

// serveCustomAPI fires the webhook, evaluates any conditional rule,
// and writes the selected response.
func (h *Handler) serveCustomAPI(w http.ResponseWriter, r *http.Request, api *definition.CustomAPI, body []byte) int {
	if api.WebhookURL != "" {
		h.hooks.Notify(api.WebhookURL, webhook.Payload{
			Method: r.Method,
			Path:   r.URL.Path,
			Body:   parsedBody(body),
		})
	}

	status := api.StatusCode
	response := api.Body
	if api.Conditional != nil {
		req := &conditional.RequestContext{
			Headers: r.Header,
			Query:   r.URL.Query(),
			Body:    bodyObject(body),
			Caller:  newDependentCaller(h),
		}
		out := h.eval.Evaluate(api, api.Conditional, req)
		status = out.Status
		response = out.Body
	}

	if len(response) == 0 || string(response) == "null" {
		w.WriteHeader(status)
		return status
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(response); err != nil {
		h.log.Error("write custom api response", "error", err)
	}
	return status
}

// parsedBody decodes a JSON body for the webhook payload, falling back
// to the raw string when it is not JSON.
func parsedBody(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body)
	}
	return v
}

// bodyObject decodes a JSON object body for condition lookups; nil
// when absent or not an object.
func bodyObject(body []byte) map[string]any {
	if len(body) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return nil
	}
	return m
}
