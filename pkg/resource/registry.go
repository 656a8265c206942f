package resource

import (
	"fmt"
	"slices"
	"sync"
)

// Factory builds a resource of type T from attributes.
type Factory[T Resource] func(Attributes) (T, error)

// Registry maps resource kind names to factories, so callers that only know
// a kind by name can build entities.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory[Resource]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory[Resource])}
}

// Register adds factory under kind, replacing any previous registration.
func Register[T Resource](r *Registry, kind string, factory Factory[T]) error {
	if kind == "" || factory == nil {
		return fmt.Errorf("%w: %q", ErrInvalidResourceType, kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = func(attrs Attributes) (Resource, error) {
		return factory(attrs)
	}
	return nil
}

// Factory returns the factory registered under kind.
func (r *Registry) Factory(kind string) (Factory[Resource], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidResourceType, kind)
	}
	return f, nil
}

// New builds a resource of the given kind from attrs.
func (r *Registry) New(kind string, attrs Attributes) (Resource, error) {
	f, err := r.Factory(kind)
	if err != nil {
		return nil, err
	}
	return f(attrs)
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}
