package record

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// MappingRecord represents one logged week of mapping work
type MappingRecord struct {
	ID        string    `json:"id"`
	Week      int       `json:"week"`
	Location  string    `json:"location"`
	Length    float64   `json:"length"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	ImageIDs  []string  `json:"imageIds"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Draft carries the caller-supplied fields of a record before the store
// assigns an id and creation time. RawImages, when present, are ingested
// into the image store ahead of the record itself.
type Draft struct {
	Week      int
	Location  string
	Length    float64
	StartDate string
	EndDate   string
	ImageIDs  []string
	Status    Status
}

// NewMappingRecord creates a record from a draft with a fresh id
func NewMappingRecord(d Draft) *MappingRecord {
	return &MappingRecord{
		ID:        NewID(),
		Week:      d.Week,
		Location:  d.Location,
		Length:    d.Length,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		ImageIDs:  append([]string(nil), d.ImageIDs...),
		Status:    d.Status,
		CreatedAt: time.Now(),
	}
}

// NewID generates a time-based record id. A short random suffix keeps ids
// unique when several records are created within the same millisecond.
func NewID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + strconv.FormatInt(rand.Int63n(36*36*36*36), 36)
}

// Validate checks if the record data is valid
func (r *MappingRecord) Validate() error {
	if r.Length < 0 {
		return fmt.Errorf("length must be non-negative")
	}
	if !r.Status.Valid() {
		return fmt.Errorf("invalid status: %q", string(r.Status))
	}
	return nil
}

// Clone returns a deep copy of the record
func (r *MappingRecord) Clone() MappingRecord {
	c := *r
	c.ImageIDs = append([]string(nil), r.ImageIDs...)
	return c
}

// Patch describes a partial update. Nil fields are left untouched;
// id and createdAt are never updatable.
type Patch struct {
	Week      *int      `json:"week,omitempty"`
	Location  *string   `json:"location,omitempty"`
	Length    *float64  `json:"length,omitempty"`
	StartDate *string   `json:"startDate,omitempty"`
	EndDate   *string   `json:"endDate,omitempty"`
	ImageIDs  *[]string `json:"imageIds,omitempty"`
	Status    *Status   `json:"status,omitempty"`
}

// Apply merges the set fields of the patch into the record
func (p Patch) Apply(r *MappingRecord) {
	if p.Week != nil {
		r.Week = *p.Week
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.Length != nil {
		r.Length = *p.Length
	}
	if p.StartDate != nil {
		r.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		r.EndDate = *p.EndDate
	}
	if p.ImageIDs != nil {
		r.ImageIDs = append([]string(nil), (*p.ImageIDs)...)
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
}

// Status represents the lifecycle state of a mapping record
type Status string

const (
	StatusLocked    Status = "locked"
	StatusCurrent   Status = "current"
	StatusCompleted Status = "completed"
)

// Valid reports whether the status is one of the known states
func (s Status) Valid() bool {
	switch s {
	case StatusLocked, StatusCurrent, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// StatusFromString converts a string to a Status
func StatusFromString(v string) (Status, bool) {
	s := Status(v)
	return s, s.Valid()
}

// WeeklyPoint is one entry of the weekly distance series
type WeeklyPoint struct {
	Week string  `json:"week"`
	Km   float64 `json:"km"`
}
