package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"

	"sismo/internal/adapter/memstore"
	"sismo/internal/adapter/repo"
	"sismo/internal/domain"
	"sismo/internal/infra"
	"sismo/internal/providers/usgs"
	"sismo/internal/service"
)

// One-shot catalog sync, meant to run from cron or a scheduler.
func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	minMagnitude := flag.Float64("min-magnitude", cfg.SyncMinMagnitude, "minimum magnitude to fetch")
	daysBack := flag.Int("days-back", cfg.SyncDaysBack, "trailing window in days")
	flag.Parse()

	ctx := context.Background()

	var events domain.EarthquakeRepository
	switch cfg.StoreBackend {
	case infra.StorePostgres:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()
		events = repo.NewEarthquakeRepository(pool)
	default:
		logger.Warn().Msg("in-memory store selected; synced data is discarded on exit")
		events = memstore.NewEarthquakeStore()
	}

	feed := usgs.NewClient(usgs.Options{
		BaseURL: cfg.USGSBaseURL,
		Timeout: cfg.USGSTimeout,
		Logger:  logger,
	})

	result, err := service.NewSyncService(feed, events, logger).Sync(ctx, *minMagnitude, *daysBack)
	if err != nil {
		logger.Fatal().Err(err).Msg("sync failed")
	}
	logger.Info().
		Int("total", result.Total).
		Int("inserted", result.Inserted).
		Msg("catalog sync finished")
}
