package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sismo/internal/domain"
	"sismo/internal/service"
)

type createCampaignRequest struct {
	Title           string     `json:"title" validate:"required"`
	Description     string     `json:"description" validate:"required"`
	EarthquakeID    *string    `json:"earthquake_id"`
	TargetAmount    string     `json:"target_amount" validate:"required"`
	BeneficiaryInfo *string    `json:"beneficiary_info"`
	ImageURL        *string    `json:"image_url"`
	EndDate         *time.Time `json:"end_date"`
}

type campaignDTO struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	EarthquakeID    *string    `json:"earthquake_id,omitempty"`
	TargetAmount    string     `json:"target_amount"`
	CurrentAmount   string     `json:"current_amount"`
	Status          string     `json:"status"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	BeneficiaryInfo *string    `json:"beneficiary_info,omitempty"`
	ImageURL        *string    `json:"image_url,omitempty"`
	CreatedBy       string     `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func toCampaignDTO(c domain.DonationCampaign) campaignDTO {
	return campaignDTO{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		EarthquakeID:    c.EarthquakeID,
		TargetAmount:    c.TargetAmount,
		CurrentAmount:   c.CurrentAmount,
		Status:          string(c.Status),
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		BeneficiaryInfo: c.BeneficiaryInfo,
		ImageURL:        c.ImageURL,
		CreatedBy:       c.CreatedBy,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := a.decodeValid(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	campaign, err := a.Campaigns.Create(r.Context(), a.identity(r), service.CreateCampaignInput{
		Title:           req.Title,
		Description:     req.Description,
		EarthquakeID:    req.EarthquakeID,
		TargetAmount:    req.TargetAmount,
		BeneficiaryInfo: req.BeneficiaryInfo,
		ImageURL:        req.ImageURL,
		EndDate:         req.EndDate,
	})
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toCampaignDTO(*campaign))
}

func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	var status *domain.CampaignStatus
	if v := r.URL.Query().Get("status"); v != "" {
		s := domain.CampaignStatus(v)
		status = &s
	}
	campaigns, err := a.Campaigns.List(r.Context(), status)
	if err != nil {
		a.serviceError(w, err)
		return
	}
	items := make([]campaignDTO, 0, len(campaigns))
	for _, c := range campaigns {
		items = append(items, toCampaignDTO(c))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) CampaignsGet(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.Campaigns.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, toCampaignDTO(*campaign))
}

func (a *App) CampaignDonations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := a.Campaigns.GetByID(r.Context(), id); err != nil {
		a.serviceError(w, err)
		return
	}
	donations, err := a.Donations.ListByCampaign(r.Context(), id)
	if err != nil {
		a.serviceError(w, err)
		return
	}
	items := make([]donationDTO, 0, len(donations))
	for _, d := range donations {
		items = append(items, toDonationDTO(d))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
