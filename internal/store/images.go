package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/baatolabs/baatometrics-api/internal/domain/image"
	"github.com/baatolabs/baatometrics-api/internal/logger"
	"github.com/baatolabs/baatometrics-api/internal/storage"
)

// ImageStore owns the uploaded image blobs, addressed by generated ids and
// decoupled from the records that reference them. Every mutation saves the
// full list through the backend before returning.
type ImageStore struct {
	mu       sync.Mutex
	backend  storage.Backend
	images   []image.StoredImage
	readOnly bool
	log      *log.Logger
}

// NewImageStore loads the persisted image list from the backend. A missing
// key or a corrupted payload yields an empty list; corruption is logged,
// never propagated.
func NewImageStore(backend storage.Backend) *ImageStore {
	s := &ImageStore{
		backend: backend,
		log:     logger.Store("images"),
	}

	data, err := backend.Load(storage.KeyImages)
	if err != nil {
		if err != storage.ErrNotFound {
			s.log.Error("failed to load images, starting empty", "error", err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.images); err != nil {
		s.log.Error("corrupted image list, starting empty", "error", err)
		s.images = nil
	}
	return s
}

// NewSnapshotImageStore wraps the images embedded in a shared snapshot.
// The store is read-only and never touches the backend.
func NewSnapshotImageStore(images []image.StoredImage) *ImageStore {
	return &ImageStore{
		images:   append([]image.StoredImage(nil), images...),
		readOnly: true,
		log:      logger.Store("images"),
	}
}

// Ingest encodes and stores the given raw files. Stored entries are returned
// in input order. A file that fails to encode does not abort the rest: the
// failures come back as a *PartialIngestError alongside the successes.
func (s *ImageStore) Ingest(files []image.RawFile) ([]image.StoredImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return nil, ErrReadOnly
	}

	stored := make([]image.StoredImage, 0, len(files))
	var failures []IngestFailure
	for i, f := range files {
		img, err := image.FromRaw(f)
		if err != nil {
			s.log.Warn("file failed to ingest", "index", i, "name", f.Name, "error", err)
			failures = append(failures, IngestFailure{Index: i, Name: f.Name, Err: err})
			continue
		}
		stored = append(stored, *img)
	}

	if len(stored) > 0 {
		previous := s.images
		s.images = append(s.images, stored...)
		if err := s.persist(); err != nil {
			s.images = previous
			return nil, err
		}
		s.log.Info("images ingested", "count", len(stored), "failed", len(failures))
	}

	if len(failures) > 0 {
		return stored, &PartialIngestError{Failures: failures}
	}
	return stored, nil
}

// Resolve returns the stored images whose id appears in ids. Results come
// back in the store's own storage order, not the caller's requested order.
func (s *ImageStore) Resolve(ids []string) []image.StoredImage {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	matched := make([]image.StoredImage, 0, len(ids))
	for _, img := range s.images {
		if wanted[img.ID] {
			matched = append(matched, img)
		}
	}
	return matched
}

// Get returns one stored image by id
func (s *ImageStore) Get(id string) (image.StoredImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, img := range s.images {
		if img.ID == id {
			return img, nil
		}
	}
	return image.StoredImage{}, fmt.Errorf("image %s: %w", id, ErrNotFound)
}

// Remove deletes one entry by id. Records referencing the id are not
// touched; dangling references are the documented looseness of the model.
func (s *ImageStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return ErrReadOnly
	}

	idx := -1
	for i, img := range s.images {
		if img.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("image %s: %w", id, ErrNotFound)
	}

	previous := s.images
	s.images = append(append([]image.StoredImage(nil), s.images[:idx]...), s.images[idx+1:]...)
	if err := s.persist(); err != nil {
		s.images = previous
		return err
	}

	s.log.Info("image removed", "image_id", id)
	return nil
}

// All returns a copy of the stored image list in storage order
func (s *ImageStore) All() []image.StoredImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]image.StoredImage(nil), s.images...)
}

// removeByIDs drops the given ids without failing on absent ones. Used by
// the record store to compensate an aborted two-step add.
func (s *ImageStore) removeByIDs(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := s.images[:0:0]
	for _, img := range s.images {
		if !drop[img.ID] {
			kept = append(kept, img)
		}
	}

	previous := s.images
	s.images = kept
	if err := s.persist(); err != nil {
		s.images = previous
		return err
	}
	return nil
}

func (s *ImageStore) persist() error {
	data, err := json.Marshal(s.images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}
	if err := s.backend.Save(storage.KeyImages, data); err != nil {
		s.log.Error("failed to persist images", "error", err)
		return fmt.Errorf("failed to persist images: %w", err)
	}
	return nil
}
