package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/baatolabs/baatometrics-api/internal/domain/notification"
	"github.com/baatolabs/baatometrics-api/internal/logger"
	"github.com/baatolabs/baatometrics-api/internal/storage"
)

// NotificationStore owns the list of user-facing alerts, newest first
type NotificationStore struct {
	mu            sync.Mutex
	backend       storage.Backend
	notifications []notification.Notification
	log           *log.Logger
}

// NewNotificationStore loads persisted notifications. A first run with no
// stored list is seeded with the welcome entry.
func NewNotificationStore(backend storage.Backend) *NotificationStore {
	s := &NotificationStore{
		backend: backend,
		log:     logger.Store("notifications"),
	}

	data, err := backend.Load(storage.KeyNotifications)
	if err != nil {
		if err == storage.ErrNotFound {
			welcome := notification.New(notification.KindInfo,
				"Welcome to BaatoMetrics",
				"Start mapping your first week to see progress tracking",
				notification.ActionSystem)
			s.notifications = []notification.Notification{*welcome}
		} else {
			s.log.Error("failed to load notifications, starting empty", "error", err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.notifications); err != nil {
		s.log.Error("corrupted notification list, starting empty", "error", err)
		s.notifications = nil
	}
	return s
}

// Add prepends a new unread notification
func (s *NotificationStore) Add(kind notification.Kind, title, message string, action notification.ActionType) (*notification.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := notification.New(kind, title, message, action)
	previous := s.notifications
	s.notifications = append([]notification.Notification{*n}, s.notifications...)
	if err := s.persistLocked(); err != nil {
		s.notifications = previous
		return nil, err
	}
	return n, nil
}

// MarkRead clears the unread flag of one notification
func (s *NotificationStore) MarkRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}

	previous := s.notifications
	s.notifications = append([]notification.Notification(nil), s.notifications...)
	s.notifications[idx].Unread = false
	if err := s.persistLocked(); err != nil {
		s.notifications = previous
		return err
	}
	return nil
}

// MarkAllRead clears the unread flag of every notification
func (s *NotificationStore) MarkAllRead() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.notifications
	s.notifications = append([]notification.Notification(nil), s.notifications...)
	for i := range s.notifications {
		s.notifications[i].Unread = false
	}
	if err := s.persistLocked(); err != nil {
		s.notifications = previous
		return err
	}
	return nil
}

// Remove deletes one notification by id
func (s *NotificationStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}

	previous := s.notifications
	s.notifications = append(append([]notification.Notification(nil), s.notifications[:idx]...), s.notifications[idx+1:]...)
	if err := s.persistLocked(); err != nil {
		s.notifications = previous
		return err
	}
	return nil
}

// Clear removes every notification
func (s *NotificationStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.notifications
	s.notifications = nil
	if err := s.persistLocked(); err != nil {
		s.notifications = previous
		return err
	}
	return nil
}

// All returns a copy of the notification list, newest first
func (s *NotificationStore) All() []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notification.Notification(nil), s.notifications...)
}

// UnreadCount counts the unread notifications
func (s *NotificationStore) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.notifications {
		if n.Unread {
			count++
		}
	}
	return count
}

func (s *NotificationStore) persistLocked() error {
	data, err := json.Marshal(s.notifications)
	if err != nil {
		return fmt.Errorf("failed to encode notifications: %w", err)
	}
	if err := s.backend.Save(storage.KeyNotifications, data); err != nil {
		s.log.Error("failed to persist notifications", "error", err)
		return fmt.Errorf("failed to persist notifications: %w", err)
	}
	return nil
}
