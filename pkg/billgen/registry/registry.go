// Package registry provides a small typed service registry.
package registry

import (
	"fmt"
	"sync"
)

// Constructor builds a service, possibly resolving its dependencies from
// the same registry.
type Constructor func(r *Registry) (interface{}, error)

// Registry holds named service constructors and their lazily-built
// singleton instances.
type Registry struct {
	mu        sync.Mutex
	ctors     map[string]Constructor
	instances map[string]interface{}
	building  map[string]bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		ctors:     make(map[string]Constructor),
		instances: make(map[string]interface{}),
		building:  make(map[string]bool),
	}
}

// Register binds a constructor to a name. Registering a name twice replaces
// the constructor and discards any built instance.
func (r *Registry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[name] = ctor
	delete(r.instances, name)
}

// Resolve returns the singleton instance for name, building it on first
// use. Dependency cycles are reported as errors.
func (r *Registry) Resolve(name string) (interface{}, error) {
	r.mu.Lock()
	if instance, ok := r.instances[name]; ok {
		r.mu.Unlock()
		return instance, nil
	}
	ctor, ok := r.ctors[name]
	if !ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("service %q not registered", name)
	}
	if r.building[name] {
		r.mu.Unlock()
		return nil, fmt.Errorf("dependency cycle on service %q", name)
	}
	r.building[name] = true
	r.mu.Unlock()

	instance, err := ctor(r)

	r.mu.Lock()
	delete(r.building, name)
	if err == nil {
		r.instances[name] = instance
	}
	r.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("building service %q: %w", name, err)
	}
	return instance, nil
}

// Get resolves name and asserts it to T.
func Get[T any](r *Registry, name string) (T, error) {
	var zero T
	instance, err := r.Resolve(name)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("service %q is %T, not %T", name, instance, zero)
	}
	return typed, nil
}
