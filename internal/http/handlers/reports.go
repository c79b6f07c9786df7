package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sismo/internal/domain"
	"sismo/internal/service"
)

type createReportRequest struct {
	EarthquakeID *string `json:"earthquake_id"`
	ReportType   string  `json:"report_type" validate:"required,oneof=damage injury missing infrastructure other"`
	Severity     string  `json:"severity" validate:"required,oneof=low medium high critical"`
	Description  string  `json:"description" validate:"required"`
	Location     string  `json:"location" validate:"required"`
	Latitude     *string `json:"latitude"`
	Longitude    *string `json:"longitude"`
	ContactName  *string `json:"contact_name"`
	ContactPhone *string `json:"contact_phone"`
	ImageURLs    *string `json:"image_urls"`
}

type reportDTO struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	EarthquakeID *string   `json:"earthquake_id,omitempty"`
	ReportType   string    `json:"report_type"`
	Severity     string    `json:"severity"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Latitude     *string   `json:"latitude,omitempty"`
	Longitude    *string   `json:"longitude,omitempty"`
	ContactName  *string   `json:"contact_name,omitempty"`
	ContactPhone *string   `json:"contact_phone,omitempty"`
	Status       string    `json:"status"`
	ImageURLs    *string   `json:"image_urls,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toReportDTO(r domain.EmergencyReport) reportDTO {
	return reportDTO{
		ID:           r.ID,
		UserID:       r.UserID,
		EarthquakeID: r.EarthquakeID,
		ReportType:   string(r.Type),
		Severity:     string(r.Severity),
		Description:  r.Description,
		Location:     r.Location,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		Status:       string(r.Status),
		ImageURLs:    r.ImageURLs,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toReportDTOs(reports []domain.EmergencyReport) []reportDTO {
	items := make([]reportDTO, 0, len(reports))
	for _, r := range reports {
		items = append(items, toReportDTO(r))
	}
	return items
}

func (a *App) ReportsCreate(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	if err := a.decodeValid(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	report, err := a.Reports.Create(r.Context(), a.identity(r), service.CreateReportInput{
		EarthquakeID: req.EarthquakeID,
		Type:         domain.ReportType(req.ReportType),
		Severity:     domain.ReportSeverity(req.Severity),
		Description:  req.Description,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ImageURLs:    req.ImageURLs,
	})
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toReportDTO(*report))
}

func (a *App) ReportsList(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	reports, err := a.Reports.List(r.Context(), limit)
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toReportDTOs(reports)})
}

func (a *App) ReportsMine(w http.ResponseWriter, r *http.Request) {
	identity := a.identity(r)
	if identity == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	reports, err := a.Reports.ListForUser(r.Context(), identity.ID)
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toReportDTOs(reports)})
}

func (a *App) ReportsGet(w http.ResponseWriter, r *http.Request) {
	report, err := a.Reports.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, toReportDTO(*report))
}

type updateReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending verified in_progress resolved"`
}

func (a *App) ReportsUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateReportStatusRequest
	if err := a.decodeValid(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	id := chi.URLParam(r, "id")
	if err := a.Reports.UpdateStatus(r.Context(), a.identity(r), id, domain.ReportStatus(req.Status)); err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": id, "status": req.Status})
}
