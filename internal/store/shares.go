package store

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/charmbracelet/log"

	"github.com/baatolabs/baatometrics-api/internal/domain/image"
	"github.com/baatolabs/baatometrics-api/internal/domain/record"
	"github.com/baatolabs/baatometrics-api/internal/domain/share"
	"github.com/baatolabs/baatometrics-api/internal/logger"
	"github.com/baatolabs/baatometrics-api/internal/storage"
)

// ShareStore produces and consumes immutable snapshots. Each snapshot lives
// under its own per-id key; "sharing again" always mints a new id, so a
// stored snapshot is never updated.
type ShareStore struct {
	backend storage.Backend
	baseURL string
	log     *log.Logger
}

// NewShareStore creates a share store building links on baseURL
func NewShareStore(backend storage.Backend, baseURL string) *ShareStore {
	return &ShareStore{
		backend: backend,
		baseURL: baseURL,
		log:     logger.Store("shares"),
	}
}

// Create bundles deep copies of the given records and their resolved images
// into a snapshot, stores it under a fresh short id and returns the id plus
// a URL carrying the id as the shared query parameter.
func (s *ShareStore) Create(records []record.MappingRecord, images []image.StoredImage, authorName string) (string, string, error) {
	snapshot := share.New(records, images, authorName)

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	id := share.NewID()
	if err := s.backend.Save(storage.ShareKey(id), data); err != nil {
		s.log.Error("failed to persist snapshot", "share_id", id, "error", err)
		return "", "", fmt.Errorf("failed to persist snapshot: %w", err)
	}

	s.log.Info("snapshot created", "share_id", id, "records", len(records), "images", len(images), "shared_by", authorName)
	return id, s.URL(id), nil
}

// Load looks a snapshot up by id and re-hydrates it. An unknown id comes
// back as ErrNotFound; a payload that no longer parses comes back as
// ErrDecode. Neither ever reaches the caller as a panic.
func (s *ShareStore) Load(id string) ([]record.MappingRecord, []image.StoredImage, error) {
	data, err := s.backend.Load(storage.ShareKey(id))
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, nil, fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
		}
		s.log.Error("failed to load snapshot", "share_id", id, "error", err)
		return nil, nil, fmt.Errorf("failed to load snapshot %s: %w", id, err)
	}

	var snapshot share.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.log.Error("malformed snapshot payload", "share_id", id, "error", err)
		return nil, nil, fmt.Errorf("snapshot %s: %w", id, ErrDecode)
	}

	records, err := snapshot.RecordList()
	if err != nil {
		s.log.Error("malformed snapshot records", "share_id", id, "error", err)
		return nil, nil, fmt.Errorf("snapshot %s: %w", id, ErrDecode)
	}

	return records, snapshot.Images, nil
}

// URL builds the shareable link for a snapshot id
func (s *ShareStore) URL(id string) string {
	return s.baseURL + "/?shared=" + url.QueryEscape(id)
}
