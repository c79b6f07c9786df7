package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"sismo/internal/domain"
)

// DonationStore keeps donation records in memory.
type DonationStore struct {
	mu        sync.RWMutex
	donations map[string]domain.Donation
}

// NewDonationStore creates an empty donation store.
func NewDonationStore() *DonationStore {
	return &DonationStore{donations: make(map[string]domain.Donation)}
}

// Create inserts an immutable donation record.
func (s *DonationStore) Create(_ context.Context, d *domain.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *d
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.donations[d.ID] = stored
	return nil
}

// ListByCampaign returns a campaign's donations newest first.
func (s *DonationStore) ListByCampaign(_ context.Context, campaignID string) ([]domain.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []domain.Donation
	for _, d := range s.donations {
		if d.CampaignID == campaignID {
			items = append(items, d)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

var _ domain.DonationRepository = (*DonationStore)(nil)
