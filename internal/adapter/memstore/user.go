package memstore

import (
	"context"
	"sync"
	"time"

	"sismo/internal/domain"
)

// UserStore keeps accounts in memory.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]domain.User)}
}

// Upsert inserts or refreshes an account record.
func (s *UserStore) Upsert(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *u
	now := time.Now()
	if prev, ok := s.users[u.ID]; ok {
		stored.CreatedAt = prev.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.LastSignedIn = now
	s.users[u.ID] = stored
	return nil
}

// GetByID returns domain.ErrNotFound for unknown ids.
func (s *UserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

var _ domain.UserRepository = (*UserStore)(nil)
