package providers

import (
	"errors"
	"sort"
	"sync"
)

var (
	// ErrAdapterNotFound is returned when no adapter is registered for a prefix.
	ErrAdapterNotFound = errors.New("adapter not found")

	// ErrAdapterAlreadyRegistered is returned on duplicate registration.
	ErrAdapterAlreadyRegistered = errors.New("adapter already registered")
)

// Registry maps model identifier prefixes to provider adapters. It is
// populated during startup and read-only afterwards; the mutex exists so
// plugin-style registration stays safe if it ever races with early reads.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
	}
}

// Register adds an adapter under its profile prefix.
func (r *Registry) Register(adapter Adapter) error {
	if adapter == nil {
		return errors.New("adapter cannot be nil")
	}
	prefix := adapter.Profile().Prefix
	if prefix == "" {
		return errors.New("adapter prefix cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[prefix]; exists {
		return ErrAdapterAlreadyRegistered
	}
	r.adapters[prefix] = adapter
	return nil
}

// Get retrieves the adapter registered for a prefix.
func (r *Registry) Get(prefix string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, exists := r.adapters[prefix]
	if !exists {
		return nil, ErrAdapterNotFound
	}
	return adapter, nil
}

// Prefixes returns the registered prefixes in sorted order.
func (r *Registry) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefixes := make([]string, 0, len(r.adapters))
	for prefix := range r.adapters {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	return prefixes
}

// Len returns the number of registered adapters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.adapters)
}
