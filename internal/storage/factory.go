package storage

import "fmt"

// BackendType represents the type of storage backend
type BackendType string

const (
	// BackendTypeMemory keeps everything in process memory
	BackendTypeMemory BackendType = "memory"
	// BackendTypeLocalDir writes one JSON file per key in a data directory
	BackendTypeLocalDir BackendType = "localdir"
	// BackendTypePostgres persists keys in a PostgreSQL key/value table
	BackendTypePostgres BackendType = "postgres"
	// BackendTypeMinio persists keys as objects in a MinIO/S3 bucket
	BackendTypeMinio BackendType = "minio"
)

// GetSupportedTypes returns a list of supported backend types
func GetSupportedTypes() []BackendType {
	return []BackendType{
		BackendTypeMemory,
		BackendTypeLocalDir,
		BackendTypePostgres,
		BackendTypeMinio,
	}
}

// ValidateBackendType validates if a backend type is supported
func ValidateBackendType(backendType string) (BackendType, error) {
	bt := BackendType(backendType)

	for _, supported := range GetSupportedTypes() {
		if bt == supported {
			return bt, nil
		}
	}

	return "", fmt.Errorf("unsupported storage backend: %s. Supported backends: %v", backendType, GetSupportedTypes())
}
