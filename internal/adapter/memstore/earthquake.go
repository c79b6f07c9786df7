// Package memstore provides in-memory implementations of the domain
// repositories. They back development and test runs when no DATABASE_URL is
// configured; data does not survive a process restart.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"sismo/internal/domain"
)

// EarthquakeStore keeps canonical events in a map keyed by upstream id.
type EarthquakeStore struct {
	mu     sync.RWMutex
	events map[string]domain.Earthquake
}

// NewEarthquakeStore creates an empty event store.
func NewEarthquakeStore() *EarthquakeStore {
	return &EarthquakeStore{events: make(map[string]domain.Earthquake)}
}

// Upsert inserts or overwrites the event under its id.
func (s *EarthquakeStore) Upsert(_ context.Context, e *domain.Earthquake) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *e
	if prev, ok := s.events[e.ID]; ok {
		stored.CreatedAt = prev.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.events[e.ID] = stored
	return nil
}

// Recent returns events newest first, bounded by limit.
func (s *EarthquakeStore) Recent(_ context.Context, limit int) ([]domain.Earthquake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]domain.Earthquake, 0, len(s.events))
	for _, e := range s.events {
		items = append(items, e)
	}
	sortEarthquakesDesc(items)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// GetByID returns domain.ErrNotFound for unknown ids.
func (s *EarthquakeStore) GetByID(_ context.Context, id string) (*domain.Earthquake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

// ByTimeRange returns events with start <= time <= end, newest first.
func (s *EarthquakeStore) ByTimeRange(_ context.Context, start, end time.Time) ([]domain.Earthquake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []domain.Earthquake
	for _, e := range s.events {
		if !e.Time.Before(start) && !e.Time.After(end) {
			items = append(items, e)
		}
	}
	sortEarthquakesDesc(items)
	return items, nil
}

func sortEarthquakesDesc(items []domain.Earthquake) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Time.After(items[j].Time)
	})
}

var _ domain.EarthquakeRepository = (*EarthquakeStore)(nil)
