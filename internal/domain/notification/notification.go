package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind is the severity of a notification
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// ActionType tags what produced a notification
type ActionType string

const (
	ActionWeekCompleted   ActionType = "week_completed"
	ActionDataUploaded    ActionType = "data_uploaded"
	ActionReportGenerated ActionType = "report_generated"
	ActionTeamUpdate      ActionType = "team_update"
	ActionSystem          ActionType = "system"
)

// Notification is one user-facing alert
type Notification struct {
	ID         string          `json:"id"`
	Kind       Kind            `json:"type"`
	Title      string          `json:"title"`
	Message    string          `json:"message"`
	CreatedAt  time.Time       `json:"createdAt"`
	Unread     bool            `json:"unread"`
	ActionType ActionType      `json:"actionType,omitempty"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
}

// New creates an unread notification stamped with the current time
func New(kind Kind, title, message string, action ActionType) *Notification {
	return &Notification{
		ID:         uuid.New().String(),
		Kind:       kind,
		Title:      title,
		Message:    message,
		CreatedAt:  time.Now(),
		Unread:     true,
		ActionType: action,
	}
}
