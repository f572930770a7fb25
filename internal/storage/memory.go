package storage

import (
	"context"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// MemoryBackend keeps the value in process memory.
type MemoryBackend struct {
	mu    sync.Mutex
	value string
	set   bool
}

func init() {
	registry.Register(config.BackendMemory, func(context.Context, config.StorageConfig) (registry.Backend, error) {
		return NewMemoryBackend(), nil
	})
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Get returns the stored value.
func (m *MemoryBackend) Get(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.set {
		return "", registry.ErrNotFound
	}
	return m.value, nil
}

// Put stores the value.
func (m *MemoryBackend) Put(_ context.Context, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.value = value
	m.set = true
	return nil
}

// Delete forgets the value.
func (m *MemoryBackend) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.value = ""
	m.set = false
	return nil
}

// Close is a no-op.
func (m *MemoryBackend) Close() error {
	return nil
}
