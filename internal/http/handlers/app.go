package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"sismo/internal/domain"
	"sismo/internal/infra"
	"sismo/internal/service"
)

// App bundles the services and helpers shared by all handlers.
type App struct {
	Logger        infra.Logger
	Sync          *service.SyncService
	Events        domain.EarthquakeRepository
	Reports       *service.ReportService
	Campaigns     *service.CampaignService
	Donations     *service.DonationService
	Notifications *service.NotificationService
	Chat          *service.ChatService
	Validate      *validator.Validate

	NotificationLimit int
}

// NewApp creates the handler container with a fresh validator instance.
func NewApp() *App {
	return &App{Validate: validator.New(), NotificationLimit: 50}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

// serviceError maps domain sentinel errors to HTTP responses.
func (a *App) serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusForbidden, "forbidden", "not allowed")
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidAmount):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		a.error(w, http.StatusBadGateway, "upstream_unavailable", "upstream service unavailable")
	default:
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (a *App) identity(r *http.Request) *domain.Identity {
	return domain.IdentityFromContext(r.Context())
}

// decodeValid decodes the JSON body into v and runs struct validation.
func (a *App) decodeValid(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return a.Validate.Struct(v)
}
