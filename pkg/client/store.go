package client

import (
	"context"
	"sort"
	"sync"

	"panel/internal/models"
)

// NotificationStore is the single owner of the client-side notification
// list. Screens read through GetAll and apply server responses through
// ApplyPatch/Remove instead of sharing a mutable slice, so read-after-write
// consistency within one client session is explicit.
type NotificationStore struct {
	mu            sync.Mutex
	client        *Client
	notifications []models.Notification
	subscribers   []func()
}

func NewNotificationStore(client *Client) *NotificationStore {
	return &NotificationStore{client: client}
}

// Refresh replaces the list with a fresh query result.
func (s *NotificationStore) Refresh(ctx context.Context) error {
	notifications, err := s.client.Notifications(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.notifications = notifications
	s.mu.Unlock()
	s.broadcast()
	return nil
}

// GetAll returns a copy of the current list, newest first.
func (s *NotificationStore) GetAll() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification{}, s.notifications...)
}

// ApplyPatch merges a single updated notification into the list, keeping
// newest-first order. Unknown ids are inserted.
func (s *NotificationStore) ApplyPatch(notification models.Notification) {
	s.mu.Lock()
	replaced := false
	for i := range s.notifications {
		if s.notifications[i].ID == notification.ID {
			s.notifications[i] = notification
			replaced = true
			break
		}
	}
	if !replaced {
		s.notifications = append(s.notifications, notification)
		sort.Slice(s.notifications, func(i, j int) bool {
			return s.notifications[i].CreatedAt.After(s.notifications[j].CreatedAt)
		})
	}
	s.mu.Unlock()
	s.broadcast()
}

// Remove drops a deleted notification from the list.
func (s *NotificationStore) Remove(id string) {
	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.broadcast()
}

// Subscribe registers a listener invoked after every store change.
func (s *NotificationStore) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *NotificationStore) broadcast() {
	s.mu.Lock()
	subscribers := append([]func(){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}
