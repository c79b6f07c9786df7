package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"sismo/internal/domain"
)

// ReportStore keeps emergency reports in memory.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]domain.EmergencyReport
}

// NewReportStore creates an empty report store.
func NewReportStore() *ReportStore {
	return &ReportStore{reports: make(map[string]domain.EmergencyReport)}
}

// Create inserts a new report.
func (s *ReportStore) Create(_ context.Context, r *domain.EmergencyReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *r
	now := time.Now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = stored.CreatedAt
	s.reports[r.ID] = stored
	return nil
}

// List returns reports newest first, bounded by limit.
func (s *ReportStore) List(_ context.Context, limit int) ([]domain.EmergencyReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]domain.EmergencyReport, 0, len(s.reports))
	for _, r := range s.reports {
		items = append(items, r)
	}
	sortReportsDesc(items)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// GetByID returns domain.ErrNotFound for unknown ids.
func (s *ReportStore) GetByID(_ context.Context, id string) (*domain.EmergencyReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

// ListByUser returns the reports filed by the user, newest first.
func (s *ReportStore) ListByUser(_ context.Context, userID string) ([]domain.EmergencyReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []domain.EmergencyReport
	for _, r := range s.reports {
		if r.UserID == userID {
			items = append(items, r)
		}
	}
	sortReportsDesc(items)
	return items, nil
}

// UpdateStatus moves the report to the given status.
func (s *ReportStore) UpdateStatus(_ context.Context, id string, status domain.ReportStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	s.reports[id] = r
	return nil
}

func sortReportsDesc(items []domain.EmergencyReport) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

var _ domain.ReportRepository = (*ReportStore)(nil)
