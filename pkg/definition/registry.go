package definition

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository is the seam behind which definitions are stored. The
// engine only reads through it; management surfaces write through it.
type Repository interface {
	// AddCustomAPI validates and registers a custom API, assigning an
	// ID when absent. Declaration order is preserved.
	AddCustomAPI(api *CustomAPI) error

	// CustomAPIs returns all custom APIs in declaration order.
	CustomAPIs() []*CustomAPI

	// CustomAPIByID retrieves a custom API. Returns nil if not found.
	CustomAPIByID(id string) *CustomAPI

	// DeleteCustomAPI removes a custom API by ID.
	DeleteCustomAPI(id string) bool

	// AddResource validates and registers a resource definition.
	AddResource(res *Resource) error

	// Resources returns all resources in declaration order.
	Resources() []*Resource

	// ResourceByName retrieves a resource. Returns nil if not found.
	ResourceByName(name string) *Resource

	// DeleteResource removes a resource by name.
	DeleteResource(name string) bool
}

// Registry is a thread-safe in-memory Repository. Custom APIs keep
// declaration order because route resolution is first-match-wins.
type Registry struct {
	mu        sync.RWMutex
	apis      []*CustomAPI
	apisByID  map[string]*CustomAPI
	resources []*Resource
	byName    map[string]*Resource
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		apisByID: make(map[string]*CustomAPI),
		byName:   make(map[string]*Resource),
	}
}

// AddCustomAPI validates and registers a custom API.
func (r *Registry) AddCustomAPI(api *CustomAPI) error {
	if api == nil {
		return fmt.Errorf("custom api cannot be nil")
	}
	if err := api.Validate(); err != nil {
		return fmt.Errorf("invalid custom api: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if api.ID == "" {
		api.ID = uuid.NewString()
	}
	if _, exists := r.apisByID[api.ID]; exists {
		return fmt.Errorf("custom api %q already registered", api.ID)
	}
	if api.CreatedAt.IsZero() {
		api.CreatedAt = time.Now()
	}

	r.apis = append(r.apis, api)
	r.apisByID[api.ID] = api
	return nil
}

// CustomAPIs returns a snapshot of all custom APIs in declaration order.
func (r *Registry) CustomAPIs() []*CustomAPI {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*CustomAPI, len(r.apis))
	copy(out, r.apis)
	return out
}

// CustomAPIByID retrieves a custom API by ID. Returns nil if not found.
func (r *Registry) CustomAPIByID(id string) *CustomAPI {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.apisByID[id]
}

// DeleteCustomAPI removes a custom API by ID.
func (r *Registry) DeleteCustomAPI(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.apisByID[id]; !exists {
		return false
	}
	delete(r.apisByID, id)
	for i, api := range r.apis {
		if api.ID == id {
			r.apis = append(r.apis[:i], r.apis[i+1:]...)
			break
		}
	}
	return true
}

// AddResource validates and registers a resource definition.
func (r *Registry) AddResource(res *Resource) error {
	if res == nil {
		return fmt.Errorf("resource cannot be nil")
	}
	if err := res.Validate(); err != nil {
		return fmt.Errorf("invalid resource: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[res.Name]; exists {
		return fmt.Errorf("resource %q already registered", res.Name)
	}
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now()
	}

	r.resources = append(r.resources, res)
	r.byName[res.Name] = res
	return nil
}

// Resources returns a snapshot of all resources in declaration order.
func (r *Registry) Resources() []*Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Resource, len(r.resources))
	copy(out, r.resources)
	return out
}

// ResourceByName retrieves a resource by name. Returns nil if not found.
func (r *Registry) ResourceByName(name string) *Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// DeleteResource removes a resource by name.
func (r *Registry) DeleteResource(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; !exists {
		return false
	}
	delete(r.byName, name)
	for i, res := range r.resources {
		if res.Name == name {
			r.resources = append(r.resources[:i], r.resources[i+1:]...)
			break
		}
	}
	return true
}

// Ensure Registry implements Repository.
var _ Repository = (*Registry)(nil)
