package share

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/baatolabs/baatometrics-api/internal/domain/image"
	"github.com/baatolabs/baatometrics-api/internal/domain/record"
)

// Version identifies the snapshot payload format
const Version = "1.0"

// Snapshot is an immutable point-in-time export of a chosen set of records
// plus the images they reference. Once stored under its id it is never
// updated; sharing again produces a new snapshot with a new id.
type Snapshot struct {
	Records  []PortableRecord    `json:"mappingRecords"`
	Images   []image.StoredImage `json:"images"`
	SharedAt string              `json:"sharedAt"`
	SharedBy string              `json:"sharedBy"`
	Version  string              `json:"version"`
}

// PortableRecord mirrors record.MappingRecord with timestamps flattened to
// strings so a snapshot decodes the same way on any host.
type PortableRecord struct {
	ID        string        `json:"id"`
	Week      int           `json:"week"`
	Location  string        `json:"location"`
	Length    float64       `json:"length"`
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	ImageIDs  []string      `json:"imageIds"`
	Status    record.Status `json:"status"`
	CreatedAt string        `json:"createdAt"`
}

// New builds a snapshot from deep copies of the given records and images,
// stamped with the sharing time and the author's display name.
func New(records []record.MappingRecord, images []image.StoredImage, authorName string) *Snapshot {
	portable := make([]PortableRecord, 0, len(records))
	for _, r := range records {
		portable = append(portable, PortableRecord{
			ID:        r.ID,
			Week:      r.Week,
			Location:  r.Location,
			Length:    r.Length,
			StartDate: r.StartDate,
			EndDate:   r.EndDate,
			ImageIDs:  append([]string(nil), r.ImageIDs...),
			Status:    r.Status,
			CreatedAt: r.CreatedAt.Format(time.RFC3339Nano),
		})
	}

	return &Snapshot{
		Records:  portable,
		Images:   append([]image.StoredImage(nil), images...),
		SharedAt: time.Now().Format(time.RFC3339),
		SharedBy: authorName,
		Version:  Version,
	}
}

// RecordList re-hydrates the snapshot's records, parsing timestamps back
// into time values. A timestamp that fails to parse is reported rather
// than dropped silently.
func (s *Snapshot) RecordList() ([]record.MappingRecord, error) {
	records := make([]record.MappingRecord, 0, len(s.Records))
	for _, p := range s.Records {
		createdAt, err := time.Parse(time.RFC3339Nano, p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid createdAt for record %s: %w", p.ID, err)
		}
		records = append(records, record.MappingRecord{
			ID:        p.ID,
			Week:      p.Week,
			Location:  p.Location,
			Length:    p.Length,
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
			ImageIDs:  append([]string(nil), p.ImageIDs...),
			Status:    p.Status,
			CreatedAt: createdAt,
		})
	}
	return records, nil
}

// NewID generates a short opaque share id
func NewID() string {
	const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, 9)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return string(b)
}
