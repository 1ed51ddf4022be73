package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/baatolabs/baatometrics-api/internal/domain/image"
	"github.com/baatolabs/baatometrics-api/internal/domain/record"
	"github.com/baatolabs/baatometrics-api/internal/logger"
	"github.com/baatolabs/baatometrics-api/internal/storage"
)

// RecordStore owns the list of weekly mapping records. Every mutation saves
// the full list through the backend before returning; a failed save rolls
// the in-memory list back, so callers never observe a half-applied change.
type RecordStore struct {
	mu        sync.Mutex
	backend   storage.Backend
	records   []record.MappingRecord
	readOnly  bool
	images    *ImageStore
	canMutate func() bool
	log       *log.Logger
}

// NewRecordStore loads the persisted record list from the backend. A missing
// key or a corrupted payload yields an empty list; corruption is logged,
// never propagated. canMutate is consulted before every mutating operation;
// nil means mutations are always allowed.
func NewRecordStore(backend storage.Backend, images *ImageStore, canMutate func() bool) *RecordStore {
	s := &RecordStore{
		backend:   backend,
		images:    images,
		canMutate: canMutate,
		log:       logger.Store("records"),
	}

	data, err := backend.Load(storage.KeyRecords)
	if err != nil {
		if err != storage.ErrNotFound {
			s.log.Error("failed to load records, starting empty", "error", err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		s.log.Error("corrupted record list, starting empty", "error", err)
		s.records = nil
	}
	return s
}

// NewSnapshotRecordStore wraps the records of a shared snapshot. The store
// is read-only: every mutating call fails with ErrReadOnly and the backend
// is never consulted.
func NewSnapshotRecordStore(records []record.MappingRecord) *RecordStore {
	return &RecordStore{
		records:  append([]record.MappingRecord(nil), records...),
		readOnly: true,
		log:      logger.Store("records"),
	}
}

// ReadOnly reports whether the store was opened on a shared snapshot
func (s *RecordStore) ReadOnly() bool {
	return s.readOnly
}

// Add creates a record from the draft and persists it. Raw image payloads
// are ingested into the image store first; if the record itself then fails
// to persist, the just-ingested images are removed again so the two-step
// write cannot leave orphans behind.
func (s *RecordStore) Add(draft record.Draft, rawImages []image.RawFile) (*record.MappingRecord, error) {
	if err := s.checkMutable(); err != nil {
		return nil, err
	}

	var ingestedIDs []string
	if len(rawImages) > 0 {
		stored, err := s.images.Ingest(rawImages)
		if err != nil {
			if partial, ok := err.(*PartialIngestError); ok {
				// A record must not reference files that failed to store.
				ids := imageIDs(stored)
				if cleanupErr := s.images.removeByIDs(ids); cleanupErr != nil {
					s.log.Error("failed to clean up after partial ingest", "error", cleanupErr)
				}
				return nil, partial
			}
			return nil, err
		}
		ingestedIDs = imageIDs(stored)
	}

	draft.ImageIDs = append(append([]string(nil), draft.ImageIDs...), ingestedIDs...)
	rec := record.NewMappingRecord(draft)
	if err := rec.Validate(); err != nil {
		s.compensateIngest(ingestedIDs)
		return nil, err
	}

	s.mu.Lock()
	previous := s.records
	s.records = append(s.records, *rec)
	if err := s.persistLocked(); err != nil {
		s.records = previous
		s.mu.Unlock()
		s.compensateIngest(ingestedIDs)
		return nil, err
	}
	s.mu.Unlock()

	s.log.Info("record added", "record_id", rec.ID, "week", rec.Week, "images", len(rec.ImageIDs))
	return rec, nil
}

// Update merges the set fields of the patch into the record matching id
func (s *RecordStore) Update(id string, patch record.Patch) (*record.MappingRecord, error) {
	if err := s.checkMutable(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, fmt.Errorf("record %s: %w", id, ErrNotFound)
	}

	updated := s.records[idx].Clone()
	patch.Apply(&updated)
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	previous := s.records
	s.records = append([]record.MappingRecord(nil), s.records...)
	s.records[idx] = updated
	if err := s.persistLocked(); err != nil {
		s.records = previous
		return nil, err
	}

	s.log.Info("record updated", "record_id", id)
	return &updated, nil
}

// Delete removes the record matching id. Its images stay in the image
// store; deletion never cascades.
func (s *RecordStore) Delete(id string) error {
	if err := s.checkMutable(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("record %s: %w", id, ErrNotFound)
	}

	previous := s.records
	s.records = append(append([]record.MappingRecord(nil), s.records[:idx]...), s.records[idx+1:]...)
	if err := s.persistLocked(); err != nil {
		s.records = previous
		return err
	}

	s.log.Info("record deleted", "record_id", id)
	return nil
}

// Get returns one record by id
func (s *RecordStore) Get(id string) (*record.MappingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, fmt.Errorf("record %s: %w", id, ErrNotFound)
	}
	rec := s.records[idx].Clone()
	return &rec, nil
}

// All returns a copy of the record list in storage order
func (s *RecordStore) All() []record.MappingRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]record.MappingRecord, 0, len(s.records))
	for i := range s.records {
		out = append(out, s.records[i].Clone())
	}
	return out
}

// TotalDistance sums the length of all completed records
func (s *RecordStore) TotalDistance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, r := range s.records {
		if r.Status == record.StatusCompleted {
			total += r.Length
		}
	}
	return total
}

// CompletedWeekCount counts the completed records
func (s *RecordStore) CompletedWeekCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, r := range s.records {
		if r.Status == record.StatusCompleted {
			count++
		}
	}
	return count
}

// WeeklySeries projects the completed records, sorted ascending by week,
// into chart points labelled "W<week>".
func (s *RecordStore) WeeklySeries() []record.WeeklyPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := make([]record.MappingRecord, 0, len(s.records))
	for _, r := range s.records {
		if r.Status == record.StatusCompleted {
			completed = append(completed, r)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].Week < completed[j].Week
	})

	series := make([]record.WeeklyPoint, 0, len(completed))
	for _, r := range completed {
		series = append(series, record.WeeklyPoint{
			Week: fmt.Sprintf("W%d", r.Week),
			Km:   r.Length,
		})
	}
	return series
}

func (s *RecordStore) checkMutable() error {
	if s.readOnly {
		return ErrReadOnly
	}
	if s.canMutate != nil && !s.canMutate() {
		return ErrPermissionDenied
	}
	return nil
}

func (s *RecordStore) indexLocked(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *RecordStore) compensateIngest(ids []string) {
	if len(ids) == 0 {
		return
	}
	if err := s.images.removeByIDs(ids); err != nil {
		s.log.Error("failed to clean up ingested images after aborted add", "error", err, "count", len(ids))
	}
}

func (s *RecordStore) persistLocked() error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	if err := s.backend.Save(storage.KeyRecords, data); err != nil {
		s.log.Error("failed to persist records", "error", err)
		return fmt.Errorf("failed to persist records: %w", err)
	}
	return nil
}

func imageIDs(images []image.StoredImage) []string {
	ids := make([]string, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.ID)
	}
	return ids
}
