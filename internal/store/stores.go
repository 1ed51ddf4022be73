// Package store implements the application's data core: record, image,
// share, session, notification and report stores over an injected
// persistence backend.
package store

import (
	"fmt"

	"github.com/baatolabs/baatometrics-api/internal/logger"
	"github.com/baatolabs/baatometrics-api/internal/storage"
)

// Stores bundles the application's data stores, wired over one backend
type Stores struct {
	Records       *RecordStore
	Images        *ImageStore
	Shares        *ShareStore
	Session       *SessionStore
	Notifications *NotificationStore
	Reports       *ReportStore

	// ShareRef is the snapshot id the stores were opened on, empty in
	// normal mode.
	ShareRef string
}

// Open wires the stores over the backend. When shareRef names a snapshot,
// the record and image stores are built read-only from the snapshot's
// contents and the persisted collections are not read at all; otherwise
// everything loads from the backend.
func Open(backend storage.Backend, baseURL, shareRef string) (*Stores, error) {
	shares := NewShareStore(backend, baseURL)
	session := NewSessionStore(backend)

	s := &Stores{
		Shares:        shares,
		Session:       session,
		Notifications: NewNotificationStore(backend),
		Reports:       NewReportStore(backend),
		ShareRef:      shareRef,
	}

	if shareRef != "" {
		records, images, err := shares.Load(shareRef)
		if err != nil {
			return nil, fmt.Errorf("failed to open shared snapshot: %w", err)
		}
		s.Records = NewSnapshotRecordStore(records)
		s.Images = NewSnapshotImageStore(images)
		logger.Store("app").Info("opened in read-only mode", "share_id", shareRef, "records", len(records), "images", len(images))
		return s, nil
	}

	s.Images = NewImageStore(backend)
	s.Records = NewRecordStore(backend, s.Images, session.CanMutate)
	return s, nil
}
