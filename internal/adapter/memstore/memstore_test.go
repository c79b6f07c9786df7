package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sismo/internal/domain"
)

func TestEarthquakeStore_UpsertOverwritesByID(t *testing.T) {
	ctx := context.Background()
	store := NewEarthquakeStore()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Upsert(ctx, &domain.Earthquake{ID: "us001", Magnitude: "4.5", Time: base}))
	require.NoError(t, store.Upsert(ctx, &domain.Earthquake{ID: "us001", Magnitude: "4.7", Time: base}))

	all, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "4.7", all[0].Magnitude)
}

func TestEarthquakeStore_RecentOrdersByTimeDescending(t *testing.T) {
	ctx := context.Background()
	store := NewEarthquakeStore()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Upsert(ctx, &domain.Earthquake{ID: "us001", Magnitude: "4.5", Time: base}))
	require.NoError(t, store.Upsert(ctx, &domain.Earthquake{ID: "us002", Magnitude: "6.3", Time: base.Add(time.Hour)}))

	recent, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "us002", recent[0].ID)
	assert.Equal(t, "us001", recent[1].ID)

	stats := domain.ComputeEarthquakeStats(recent)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Significant)
	assert.Equal(t, 1, stats.Strong)
}

func TestEarthquakeStore_ByTimeRangeIsInclusive(t *testing.T) {
	ctx := context.Background()
	store := NewEarthquakeStore()

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	require.NoError(t, store.Upsert(ctx, &domain.Earthquake{ID: "edge-start", Time: start}))
	require.NoError(t, store.Upsert(ctx, &domain.Earthquake{ID: "edge-end", Time: end}))
	require.NoError(t, store.Upsert(ctx, &domain.Earthquake{ID: "outside", Time: end.Add(time.Minute)}))

	events, err := store.ByTimeRange(ctx, start, end)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestEarthquakeStore_GetByIDMissing(t *testing.T) {
	_, err := NewEarthquakeStore().GetByID(context.Background(), "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCampaignStore_ConcurrentAddsAccumulateExactly(t *testing.T) {
	ctx := context.Background()
	store := NewCampaignStore()
	require.NoError(t, store.Create(ctx, &domain.DonationCampaign{
		ID:           "c1",
		Title:        "Reconstrucción",
		TargetAmount: "10000",
		Status:       domain.CampaignActive,
	}))
	require.NoError(t, store.AddToCurrentAmount(ctx, "c1", "100.00"))

	const donors = 40
	var wg sync.WaitGroup
	for i := 0; i < donors; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.AddToCurrentAmount(ctx, "c1", "25.00")
		}()
	}
	wg.Wait()

	c, err := store.GetByID(ctx, "c1")
	require.NoError(t, err)
	want := decimal.RequireFromString("100.00").Add(decimal.NewFromInt(donors * 25))
	got := decimal.RequireFromString(c.CurrentAmount)
	assert.True(t, want.Equal(got), "want %s got %s", want, got)
}

func TestCampaignStore_AddRejectsBadAmountAndUnknownID(t *testing.T) {
	ctx := context.Background()
	store := NewCampaignStore()
	require.NoError(t, store.Create(ctx, &domain.DonationCampaign{ID: "c1", Status: domain.CampaignActive}))

	assert.True(t, errors.Is(store.AddToCurrentAmount(ctx, "c1", "abc"), domain.ErrInvalidAmount))
	assert.True(t, errors.Is(store.AddToCurrentAmount(ctx, "missing", "1"), domain.ErrNotFound))
}

func TestNotificationStore_MarkReadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewNotificationStore()
	require.NoError(t, store.Create(ctx, &domain.Notification{ID: "n1", UserID: "u1", Type: domain.NotifyDonation}))

	require.NoError(t, store.MarkRead(ctx, "n1"))
	require.NoError(t, store.MarkRead(ctx, "n1"))

	items, err := store.ListByUser(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsRead)
}

func TestNotificationStore_ListScopedToUserNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewNotificationStore()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Create(ctx, &domain.Notification{
			ID:        fmt.Sprintf("n%d", i),
			UserID:    "u1",
			Type:      domain.NotifyReport,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, store.Create(ctx, &domain.Notification{ID: "other", UserID: "u2", Type: domain.NotifyReport}))

	items, err := store.ListByUser(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "n2", items[0].ID)
	assert.Equal(t, "n1", items[1].ID)
}

func TestDonationStore_ListByCampaignNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewDonationStore()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(ctx, &domain.Donation{ID: "d1", CampaignID: "c1", Amount: "10", CreatedAt: base}))
	require.NoError(t, store.Create(ctx, &domain.Donation{ID: "d2", CampaignID: "c1", Amount: "20", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, store.Create(ctx, &domain.Donation{ID: "d3", CampaignID: "c2", Amount: "30", CreatedAt: base.Add(2 * time.Minute)}))

	items, err := store.ListByCampaign(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "d2", items[0].ID)
}
