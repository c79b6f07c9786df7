package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"sismo/internal/adapter/memstore"
	"sismo/internal/adapter/repo"
	"sismo/internal/domain"
	"sismo/internal/http/handlers"
	httpapi "sismo/internal/http/httpapi"
	"sismo/internal/infra"
	"sismo/internal/infra/geoip"
	"sismo/internal/middleware"
	"sismo/internal/providers/chat"
	"sismo/internal/providers/usgs"
	"sismo/internal/service"
)

type stores struct {
	events        domain.EarthquakeRepository
	reports       domain.ReportRepository
	campaigns     domain.CampaignRepository
	donations     domain.DonationRepository
	notifications domain.NotificationRepository
	users         domain.UserRepository
}

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	st, cleanup, err := buildStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize store backend")
	}
	defer cleanup()

	// GeoIP resolver (optional; locale detection degrades without it)
	country, closeGeoIP := buildCountryLookup(cfg, logger)
	defer closeGeoIP()

	assistant := buildAssistant(cfg, logger)

	feed := usgs.NewClient(usgs.Options{
		BaseURL: cfg.USGSBaseURL,
		Timeout: cfg.USGSTimeout,
		Logger:  logger,
	})

	notifier := service.NewNotificationService(st.notifications, cfg.OwnerID, logger)

	app := handlers.NewApp()
	app.Logger = logger
	app.Sync = service.NewSyncService(feed, st.events, logger)
	app.Events = st.events
	app.Reports = service.NewReportService(st.reports, notifier, logger)
	app.Campaigns = service.NewCampaignService(st.campaigns)
	app.Donations = service.NewDonationService(st.donations, st.campaigns, notifier, logger)
	app.Notifications = notifier
	app.Chat = service.NewChatService(assistant, st.events, st.reports, st.campaigns, cfg.ChatHistoryMaxTurn, logger)
	app.NotificationLimit = cfg.NotificationLimit

	resolver := &middleware.RecordingResolver{
		Next:   &middleware.StaticResolver{OwnerID: cfg.OwnerID},
		Users:  st.users,
		Logger: logger,
	}
	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Config:   cfg,
		Logger:   logger,
		Resolver: resolver,
		Country:  country,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("backend", cfg.StoreBackend).Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != os.ErrClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

func buildStores(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (stores, func(), error) {
	if cfg.StoreBackend == infra.StorePostgres {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return stores{}, nil, err
		}
		return stores{
			events:        repo.NewEarthquakeRepository(pool),
			reports:       repo.NewReportRepository(pool),
			campaigns:     repo.NewCampaignRepository(pool),
			donations:     repo.NewDonationRepository(pool),
			notifications: repo.NewNotificationRepository(pool),
			users:         repo.NewUserRepository(pool),
		}, pool.Close, nil
	}

	logger.Warn().Msg("running with in-memory stores; data is lost on restart")
	return stores{
		events:        memstore.NewEarthquakeStore(),
		reports:       memstore.NewReportStore(),
		campaigns:     memstore.NewCampaignStore(),
		donations:     memstore.NewDonationStore(),
		notifications: memstore.NewNotificationStore(),
		users:         memstore.NewUserStore(),
	}, func() {}, nil
}

func buildCountryLookup(cfg *infra.Config, logger zerolog.Logger) (middleware.CountryLookup, func()) {
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable, country lookups disabled")
		return nil, func() {}
	}
	if resolver == nil {
		return nil, func() {}
	}
	closeFn := func() {
		if c, ok := resolver.(interface{ Close() error }); ok {
			_ = c.Close()
		}
	}
	return resolver.CountryCode, closeFn
}

func buildAssistant(cfg *infra.Config, logger zerolog.Logger) chat.Assistant {
	switch cfg.ChatProvider {
	case "gemini":
		if cfg.GeminiAPIKey != "" {
			assistant, err := chat.NewGeminiAssistant(chat.GeminiOptions{
				APIKey:  cfg.GeminiAPIKey,
				Model:   cfg.GeminiModel,
				BaseURL: cfg.GeminiBaseURL,
			})
			if err == nil {
				return assistant
			}
			logger.Warn().Err(err).Msg("gemini assistant unavailable")
		}
	case "openai":
		if cfg.OpenAIAPIKey != "" {
			assistant, err := chat.NewOpenAIAssistant(chat.OpenAIOptions{
				APIKey:       cfg.OpenAIAPIKey,
				Model:        cfg.OpenAIModel,
				BaseURL:      cfg.OpenAIBaseURL,
				Organization: cfg.OpenAIOrg,
			})
			if err == nil {
				return assistant
			}
			logger.Warn().Err(err).Msg("openai assistant unavailable")
		}
	}
	logger.Warn().Str("provider", cfg.ChatProvider).Msg("no chat provider configured, using static assistant")
	return chat.NewStaticAssistant()
}
