// Package factory builds the configured persistence backend.
package factory

import (
	"fmt"

	"github.com/baatolabs/baatometrics-api/internal/config"
	"github.com/baatolabs/baatometrics-api/internal/storage"
	"github.com/baatolabs/baatometrics-api/internal/storage/localdir"
	"github.com/baatolabs/baatometrics-api/internal/storage/memory"
	"github.com/baatolabs/baatometrics-api/internal/storage/miniostore"
	"github.com/baatolabs/baatometrics-api/internal/storage/postgres"
)

// Open creates the backend selected by the configuration
func Open(cfg *config.Config) (storage.Backend, error) {
	backendType, err := storage.ValidateBackendType(cfg.Storage.Backend)
	if err != nil {
		return nil, err
	}

	switch backendType {
	case storage.BackendTypeMemory:
		return memory.New(), nil
	case storage.BackendTypeLocalDir:
		return localdir.New(cfg.Storage.DataDir)
	case storage.BackendTypePostgres:
		return postgres.New(cfg)
	case storage.BackendTypeMinio:
		return miniostore.New(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", backendType)
	}
}
