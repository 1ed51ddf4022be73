// Package localdir persists each key as one JSON file in a data directory.
// It is the server-side analog of the browser's local storage: writes are
// synchronous, whole-value, and last-write-wins between processes.
package localdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/baatolabs/baatometrics-api/internal/logger"
	"github.com/baatolabs/baatometrics-api/internal/storage"
)

// Backend writes one file per key under a base directory
type Backend struct {
	dir string
	log *log.Logger
}

// New creates the data directory if needed and returns a backend over it
func New(dir string) (*Backend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Backend{
		dir: dir,
		log: logger.Storage("localdir"),
	}, nil
}

func (b *Backend) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		b.log.Error("failed to read key", "key", key, "error", err)
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return data, nil
}

// Save writes through a temp file and renames it into place, so a crashed
// write never leaves a half-written value behind.
func (b *Backend) Save(key string, value []byte) error {
	path := b.path(key)
	tmp, err := os.CreateTemp(b.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		b.log.Error("failed to create temp file", "key", key, "error", err)
		return fmt.Errorf("failed to create temp file for key %s: %w", key, err)
	}

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		b.log.Error("failed to write temp file", "key", key, "error", err)
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for key %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		b.log.Error("failed to rename temp file", "key", key, "error", err)
		return fmt.Errorf("failed to persist key %s: %w", key, err)
	}

	b.log.Debug("key saved", "key", key, "bytes", len(value))
	return nil
}

func (b *Backend) Delete(key string) error {
	if err := os.Remove(b.path(key)); err != nil && !os.IsNotExist(err) {
		b.log.Error("failed to delete key", "key", key, "error", err)
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// path maps a key to a file name, escaping separators so a key can never
// point outside the data directory.
func (b *Backend) path(key string) string {
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(b.dir, safe+".json")
}
