package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/baatolabs/baatometrics-api/internal/domain/report"
	"github.com/baatolabs/baatometrics-api/internal/logger"
	"github.com/baatolabs/baatometrics-api/internal/storage"
)

// ReportStore owns the list of generated report descriptors
type ReportStore struct {
	mu      sync.Mutex
	backend storage.Backend
	reports []report.Descriptor
	log     *log.Logger
}

// NewReportStore loads persisted report descriptors from the backend
func NewReportStore(backend storage.Backend) *ReportStore {
	s := &ReportStore{
		backend: backend,
		log:     logger.Store("reports"),
	}

	data, err := backend.Load(storage.KeyReports)
	if err != nil {
		if err != storage.ErrNotFound {
			s.log.Error("failed to load reports, starting empty", "error", err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.reports); err != nil {
		s.log.Error("corrupted report list, starting empty", "error", err)
		s.reports = nil
	}
	return s
}

// Add appends a new report descriptor
func (s *ReportStore) Add(title, reportType string, payload json.RawMessage) (*report.Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	desc := report.New(title, reportType, payload)
	previous := s.reports
	s.reports = append(s.reports, *desc)
	if err := s.persistLocked(); err != nil {
		s.reports = previous
		return nil, err
	}

	s.log.Info("report generated", "report_id", desc.ID, "type", reportType)
	return desc, nil
}

// All returns a copy of the report list in creation order
func (s *ReportStore) All() []report.Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]report.Descriptor(nil), s.reports...)
}

func (s *ReportStore) persistLocked() error {
	data, err := json.Marshal(s.reports)
	if err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}
	if err := s.backend.Save(storage.KeyReports, data); err != nil {
		s.log.Error("failed to persist reports", "error", err)
		return fmt.Errorf("failed to persist reports: %w", err)
	}
	return nil
}
