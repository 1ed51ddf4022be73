// Package memory provides an in-memory storage backend, used by tests and
// as a throwaway backend for demo runs.
package memory

import (
	"sync"

	"github.com/baatolabs/baatometrics-api/internal/storage"
)

// Backend stores values in a map. Safe for concurrent use.
type Backend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New creates an empty in-memory backend
func New() *Backend {
	return &Backend{values: make(map[string][]byte)}
}

func (b *Backend) Load(key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (b *Backend) Save(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.values[key] = append([]byte(nil), value...)
	return nil
}

func (b *Backend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.values, key)
	return nil
}

// Keys returns the stored keys, for test assertions
func (b *Backend) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	return keys
}
