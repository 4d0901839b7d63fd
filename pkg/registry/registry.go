// Package registry provides the live delegation registry handed to tools in
// production. Tests substitute the mock registry from pkg/harness instead.
package registry

import (
	"sync"

	"github.com/soundmesh/toolwright/pkg/ports"
)

// Registry maps delegation-target names to their handlers and holds the
// direct backend. It implements ports.Registry.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]ports.Handler
	backend  ports.Handler
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]ports.Handler)}
}

// Register adds a named handler.
// If a handler with the same name exists, it is overwritten.
func (r *Registry) Register(name string, h ports.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// SetBackend installs the direct-mode backend.
func (r *Registry) SetBackend(h ports.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend = h
}

// Handler returns the named handler, or nil when it is not registered.
func (r *Registry) Handler(name string) ports.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[name]
}

// Backend returns the direct-mode backend, or nil.
func (r *Registry) Backend() ports.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.backend
}

// Names returns the registered handler names. Order is unspecified.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}
