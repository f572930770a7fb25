// Package registry provides a global registry for best-score storage backends.
// Backends register themselves in init() functions, allowing the CLI and
// servers to pick one by name without hardcoded dependencies.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// ErrNotFound is returned by Backend.Get when no value is stored.
var ErrNotFound = errors.New("registry: value not found")

// Backend is a raw store for a single string value.
// Values are stored verbatim; callers are responsible for parsing them.
type Backend interface {
	// Get returns the stored value, or ErrNotFound if nothing is stored.
	Get(ctx context.Context) (string, error)

	// Put replaces the stored value.
	Put(ctx context.Context, value string) error

	// Delete removes the stored value. Deleting a missing value is not an error.
	Delete(ctx context.Context) error

	// Close releases the backend's connections.
	Close() error
}

// Factory opens a backend from configuration.
type Factory func(ctx context.Context, cfg config.StorageConfig) (Backend, error)

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a backend factory to the registry.
// Typically called from a backend's init() function.
// Panics if a backend with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: backend %q already registered", name))
	}
	factories[name] = f
}

// List returns the names of all registered backends, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]string, 0, len(factories))
	for name := range factories {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Open instantiates the backend named by cfg.Backend.
// Returns an error if the name is not registered.
func Open(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	mu.RLock()
	f, ok := factories[cfg.Backend]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown backend %q", cfg.Backend)
	}
	return f(ctx, cfg)
}

// Exists checks if a backend with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
