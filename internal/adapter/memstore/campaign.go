package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"sismo/internal/domain"
)

// CampaignStore keeps donation campaigns in memory. The mutex also guards the
// running-total update, so concurrent donations cannot lose an increment.
type CampaignStore struct {
	mu        sync.Mutex
	campaigns map[string]domain.DonationCampaign
}

// NewCampaignStore creates an empty campaign store.
func NewCampaignStore() *CampaignStore {
	return &CampaignStore{campaigns: make(map[string]domain.DonationCampaign)}
}

// Create inserts a new campaign with a zero running total.
func (s *CampaignStore) Create(_ context.Context, c *domain.DonationCampaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *c
	now := time.Now()
	stored.CurrentAmount = "0"
	if stored.StartDate.IsZero() {
		stored.StartDate = now
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = stored.CreatedAt
	s.campaigns[c.ID] = stored
	return nil
}

// List returns campaigns newest first, optionally filtered by status.
func (s *CampaignStore) List(_ context.Context, status *domain.CampaignStatus) ([]domain.DonationCampaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []domain.DonationCampaign
	for _, c := range s.campaigns {
		if status != nil && c.Status != *status {
			continue
		}
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// GetByID returns domain.ErrNotFound for unknown ids.
func (s *CampaignStore) GetByID(_ context.Context, id string) (*domain.DonationCampaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

// AddToCurrentAmount adds the decimal amount to the campaign's running total
// under the store lock.
func (s *CampaignStore) AddToCurrentAmount(_ context.Context, id string, amount string) error {
	add, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return domain.ErrNotFound
	}
	current, err := decimal.NewFromString(c.CurrentAmount)
	if err != nil {
		current = decimal.Zero
	}
	c.CurrentAmount = current.Add(add).String()
	c.UpdatedAt = time.Now()
	s.campaigns[id] = c
	return nil
}

var _ domain.CampaignRepository = (*CampaignStore)(nil)
