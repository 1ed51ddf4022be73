package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Descriptor describes one generated report: what it is and when it was
// produced, plus an opaque payload the reporting UI interprets.
type Descriptor struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Type      string          `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// New creates a report descriptor with a fresh id
func New(title, reportType string, payload json.RawMessage) *Descriptor {
	return &Descriptor{
		ID:        uuid.New().String(),
		Title:     title,
		Type:      reportType,
		CreatedAt: time.Now(),
		Payload:   payload,
	}
}
