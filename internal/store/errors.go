package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals an operation referencing an id that does not exist
	ErrNotFound = errors.New("not found")

	// ErrReadOnly signals a mutating call while a shared snapshot is being
	// viewed. It is raised before any side effect occurs.
	ErrReadOnly = errors.New("store is read-only while viewing a shared snapshot")

	// ErrPermissionDenied signals a mutating call by a user whose role does
	// not allow editing
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDecode signals a malformed persisted payload. Stores recover from
	// it internally where the contract allows (corrupted collections fall
	// back to empty); it surfaces only for snapshot loads.
	ErrDecode = errors.New("decode failure")
)

// IngestFailure describes one file that could not be ingested
type IngestFailure struct {
	Index int
	Name  string
	Err   error
}

// PartialIngestError reports the files that failed during an ingest while
// the remaining files were stored successfully.
type PartialIngestError struct {
	Failures []IngestFailure
}

func (e *PartialIngestError) Error() string {
	names := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		names = append(names, fmt.Sprintf("%s: %v", f.Name, f.Err))
	}
	return fmt.Sprintf("%d file(s) failed to ingest: %s", len(e.Failures), strings.Join(names, "; "))
}
