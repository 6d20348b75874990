// Package registry implements the host's registry of entity definitions.
package registry

import (
	"fmt"
	"sync"

	"github.com/lumenindex/mapping-sdk/domain/entities"
	"github.com/lumenindex/mapping-sdk/domain/ports"
)

// Registry is a thread-safe DefinitionRegistry.
type Registry struct {
	mu     sync.RWMutex
	defs   map[string]entities.EntityDef
	strict bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithStrictMode controls whether entity types without a registered
// definition are rejected at validation time. Default is strict.
func WithStrictMode(strict bool) Option {
	return func(r *Registry) {
		r.strict = strict
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) ports.DefinitionRegistry {
	r := &Registry{
		defs:   make(map[string]entities.EntityDef),
		strict: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a definition. Re-registering an existing type name is an
// error; definitions are immutable once loaded.
func (r *Registry) Register(name string, def entities.EntityDef) error {
	if name == "" {
		return fmt.Errorf("entity type name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[name]; exists {
		return fmt.Errorf("entity type already registered: %s", name)
	}
	r.defs[name] = def
	return nil
}

// Lookup returns the definition for an entity type name.
func (r *Registry) Lookup(name string) (entities.EntityDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[name]
	return def, ok
}

// Strict reports whether undefined entity types are rejected.
func (r *Registry) Strict() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.strict
}
