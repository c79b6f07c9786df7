package service

import (
	"context"

	"github.com/rs/zerolog"

	"sismo/internal/domain"
	"sismo/internal/providers/usgs"
)

// Feed is the upstream catalog consumed by the sync orchestrator.
type Feed interface {
	FetchRecent(ctx context.Context, minMagnitude float64, daysBack int) []usgs.Feature
	FetchNearLocation(ctx context.Context, latitude, longitude, radiusKm, minMagnitude float64, daysBack int) ([]usgs.Feature, error)
}

// SyncResult reports best-effort batch accounting: Inserted counts only the
// records whose upsert completed without error.
type SyncResult struct {
	Total    int `json:"total"`
	Inserted int `json:"inserted"`
}

// SyncService pulls the upstream feed into the event store.
type SyncService struct {
	feed   Feed
	events domain.EarthquakeRepository
	logger zerolog.Logger
}

// NewSyncService creates a SyncService.
func NewSyncService(feed Feed, events domain.EarthquakeRepository, logger zerolog.Logger) *SyncService {
	return &SyncService{feed: feed, events: events, logger: logger}
}

// Sync fetches the feed once and upserts each record individually. A record
// that fails to upsert is logged and skipped; the batch still succeeds with a
// reduced inserted count.
func (s *SyncService) Sync(ctx context.Context, minMagnitude float64, daysBack int) (SyncResult, error) {
	features := s.feed.FetchRecent(ctx, minMagnitude, daysBack)

	result := SyncResult{Total: len(features)}
	for _, f := range features {
		e := usgs.ConvertFeature(f)
		if err := s.events.Upsert(ctx, &e); err != nil {
			s.logger.Error().Err(err).Str("id", f.ID).Msg("sync: upsert failed, skipping record")
			continue
		}
		result.Inserted++
	}

	s.logger.Info().Int("total", result.Total).Int("inserted", result.Inserted).Msg("sync: completed")
	return result, nil
}

// SearchNearLocation queries the catalog around a point and returns converted
// events without persisting them. Upstream failures propagate to the caller.
func (s *SyncService) SearchNearLocation(ctx context.Context, latitude, longitude, radiusKm, minMagnitude float64, daysBack int) ([]domain.Earthquake, error) {
	features, err := s.feed.FetchNearLocation(ctx, latitude, longitude, radiusKm, minMagnitude, daysBack)
	if err != nil {
		return nil, err
	}
	events := make([]domain.Earthquake, 0, len(features))
	for _, f := range features {
		events = append(events, usgs.ConvertFeature(f))
	}
	return events, nil
}
