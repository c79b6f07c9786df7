package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"sismo/internal/domain"
)

// NotificationStore keeps notifications in memory.
type NotificationStore struct {
	mu            sync.RWMutex
	notifications map[string]domain.Notification
}

// NewNotificationStore creates an empty notification store.
func NewNotificationStore() *NotificationStore {
	return &NotificationStore{notifications: make(map[string]domain.Notification)}
}

// Create inserts an unread notification.
func (s *NotificationStore) Create(_ context.Context, n *domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *n
	stored.IsRead = false
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.notifications[n.ID] = stored
	return nil
}

// ListByUser returns the user's notifications newest first, bounded by limit.
func (s *NotificationStore) ListByUser(_ context.Context, userID string, limit int) ([]domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []domain.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			items = append(items, n)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// MarkRead flips unread to read; re-marking is a no-op.
func (s *NotificationStore) MarkRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok {
		return domain.ErrNotFound
	}
	n.IsRead = true
	s.notifications[id] = n
	return nil
}

var _ domain.NotificationRepository = (*NotificationStore)(nil)
