package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"sismo/internal/domain"
)

type earthquakeDTO struct {
	ID        string    `json:"id"`
	Magnitude string    `json:"magnitude"`
	Location  string    `json:"location"`
	Latitude  string    `json:"latitude"`
	Longitude string    `json:"longitude"`
	Depth     string    `json:"depth"`
	Time      time.Time `json:"time"`
	URL       string    `json:"url,omitempty"`
	Place     string    `json:"place,omitempty"`
}

func toEarthquakeDTO(e domain.Earthquake) earthquakeDTO {
	return earthquakeDTO{
		ID:        e.ID,
		Magnitude: e.Magnitude,
		Location:  e.Location,
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
		Depth:     e.Depth,
		Time:      e.Time,
		URL:       e.URL,
		Place:     e.Place,
	}
}

func toEarthquakeDTOs(events []domain.Earthquake) []earthquakeDTO {
	items := make([]earthquakeDTO, 0, len(events))
	for _, e := range events {
		items = append(items, toEarthquakeDTO(e))
	}
	return items
}

// EarthquakesList returns recent events, or events inside an inclusive time
// window when both start and end are given.
func (a *App) EarthquakesList(w http.ResponseWriter, r *http.Request) {
	start, end := r.URL.Query().Get("start"), r.URL.Query().Get("end")
	if start != "" || end != "" {
		from, err1 := time.Parse(time.RFC3339, start)
		to, err2 := time.Parse(time.RFC3339, end)
		if err1 != nil || err2 != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "start and end must both be RFC 3339 timestamps")
			return
		}
		events, err := a.Events.ByTimeRange(r.Context(), from, to)
		if err != nil {
			a.serviceError(w, err)
			return
		}
		a.json(w, http.StatusOK, map[string]any{"items": toEarthquakeDTOs(events)})
		return
	}

	limit := queryInt(r, "limit", 200)
	events, err := a.Events.Recent(r.Context(), limit)
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toEarthquakeDTOs(events)})
}

func (a *App) EarthquakesGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, err := a.Events.GetByID(r.Context(), id)
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, toEarthquakeDTO(*e))
}

func (a *App) EarthquakesStats(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 200)
	events, err := a.Events.Recent(r.Context(), limit)
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, domain.ComputeEarthquakeStats(events))
}

type syncRequest struct {
	MinMagnitude float64 `json:"min_magnitude" validate:"min=0"`
	DaysBack     int     `json:"days_back" validate:"min=0,max=365"`
}

func (a *App) EarthquakesSync(w http.ResponseWriter, r *http.Request) {
	req := syncRequest{DaysBack: 30}
	if r.Body != nil && r.ContentLength != 0 {
		if err := a.decodeValid(r, &req); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
			return
		}
	}
	if req.DaysBack == 0 {
		req.DaysBack = 30
	}
	result, err := a.Sync.Sync(r.Context(), req.MinMagnitude, req.DaysBack)
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, result)
}

func (a *App) EarthquakesNear(w http.ResponseWriter, r *http.Request) {
	latitude, err := queryFloatRequired(r, "latitude")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "latitude is required and must be numeric")
		return
	}
	longitude, err := queryFloatRequired(r, "longitude")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "longitude is required and must be numeric")
		return
	}
	radiusKm := queryFloat(r, "radius_km", 500)
	minMagnitude := queryFloat(r, "min_magnitude", 0)
	daysBack := queryInt(r, "days_back", 30)

	events, err := a.Sync.SearchNearLocation(r.Context(), latitude, longitude, radiusKm, minMagnitude, daysBack)
	if err != nil {
		a.Logger.Error().Err(err).Msg("near-location search failed")
		a.error(w, http.StatusBadGateway, "upstream_unavailable", "earthquake catalog unavailable")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toEarthquakeDTOs(events)})
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}

func queryFloat(r *http.Request, key string, fallback float64) float64 {
	if v := r.URL.Query().Get(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func queryFloatRequired(r *http.Request, key string) (float64, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, fmt.Errorf("missing query parameter %q", key)
	}
	return strconv.ParseFloat(v, 64)
}
