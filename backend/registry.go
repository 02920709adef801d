package backend

import (
	"fmt"
	"sort"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/renderkit/gpucore"
)

// BackendFactory creates a new backend instance.
type BackendFactory func() gpucore.Backend

// registry holds registered backends.
// Priority order for backend selection (first available wins):
// Native > Recording (Recording is the always-available fallback).
var registry = gpucontext.NewRegistry[gpucore.Backend](
	gpucontext.WithPriority(BackendNative, BackendRecording),
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory BackendFactory) {
	registry.Register(name, factory)
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registry.Unregister(name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	names := registry.Available()
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	return registry.Has(name)
}

// Get returns a backend instance by name.
func Get(name string) (gpucore.Backend, error) {
	if !registry.Has(name) {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	b := registry.Get(name)
	if b == nil {
		return nil, fmt.Errorf("%w: %q factory returned nil", ErrBackendNotAvailable, name)
	}
	return b, nil
}

// Default returns the best available backend based on priority.
// Returns nil if no backends are registered.
func Default() gpucore.Backend {
	return registry.Best()
}

// DefaultName returns the name of the backend Default would return.
func DefaultName() string {
	return registry.BestName()
}

// MustDefault returns the best available backend or panics if none is
// registered. The recording backend registers itself on import, so this only
// panics when every backend has been unregistered.
func MustDefault() gpucore.Backend {
	b := Default()
	if b == nil {
		panic("backend: no backends registered")
	}
	return b
}
