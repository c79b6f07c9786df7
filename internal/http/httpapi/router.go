package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"sismo/internal/domain"
	"sismo/internal/http/handlers"
	"sismo/internal/infra"
	"sismo/internal/middleware"
)

// RouterOptions carries the cross-cutting dependencies wired around the
// handler container.
type RouterOptions struct {
	Config   *infra.Config
	Logger   infra.Logger
	Resolver domain.IdentityResolver
	Country  middleware.CountryLookup
}

func NewRouter(app *handlers.App, opts RouterOptions) stdhttp.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
	)
	if opts.Config != nil {
		r.Use(middleware.CORS(opts.Config.CORSOrigins))
		if opts.Config.RateLimitPerMin > 0 {
			r.Use(middleware.RateLimit(opts.Config.RateLimitPerMin, time.Minute))
		}
	}
	r.Use(middleware.I18N("es", opts.Country))
	r.Use(middleware.Identity(opts.Resolver))

	// Health
	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/earthquakes", func(r chi.Router) {
		r.Get("/", app.EarthquakesList)
		r.Get("/stats", app.EarthquakesStats)
		r.Get("/near", app.EarthquakesNear)
		r.Post("/sync", app.EarthquakesSync)
		r.Get("/{id}", app.EarthquakesGet)
	})

	r.Route("/v1/reports", func(r chi.Router) {
		r.Get("/", app.ReportsList)
		r.Post("/", app.ReportsCreate)
		r.Get("/mine", app.ReportsMine)
		r.Get("/{id}", app.ReportsGet)
		r.Patch("/{id}/status", app.ReportsUpdateStatus)
	})

	r.Route("/v1/campaigns", func(r chi.Router) {
		r.Get("/", app.CampaignsList)
		r.Post("/", app.CampaignsCreate)
		r.Get("/{id}", app.CampaignsGet)
		r.Get("/{id}/donations", app.CampaignDonations)
	})

	r.Post("/v1/donations", app.DonationsCreate)

	r.Route("/v1/notifications", func(r chi.Router) {
		r.Get("/", app.NotificationsList)
		r.Post("/{id}/read", app.NotificationsMarkRead)
	})

	r.Post("/v1/chat", app.ChatReply)

	return r
}
