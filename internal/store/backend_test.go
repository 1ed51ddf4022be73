package store

import (
	"errors"

	"github.com/baatolabs/baatometrics-api/internal/storage"
	"github.com/baatolabs/baatometrics-api/internal/storage/memory"
)

// failingBackend wraps the in-memory backend and fails saves on chosen keys,
// to exercise the rollback paths.
type failingBackend struct {
	*memory.Backend
	failSaves map[string]bool
}

func newFailingBackend() *failingBackend {
	return &failingBackend{
		Backend:   memory.New(),
		failSaves: make(map[string]bool),
	}
}

func (b *failingBackend) Save(key string, value []byte) error {
	if b.failSaves[key] {
		return errors.New("simulated save failure")
	}
	return b.Backend.Save(key, value)
}

var _ storage.Backend = (*failingBackend)(nil)
