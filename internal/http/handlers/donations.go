package handlers

import (
	"net/http"
	"time"

	"sismo/internal/domain"
	"sismo/internal/service"
)

type createDonationRequest struct {
	CampaignID  string  `json:"campaign_id" validate:"required"`
	Amount      string  `json:"amount" validate:"required"`
	DonorName   *string `json:"donor_name"`
	DonorEmail  *string `json:"donor_email" validate:"omitempty,email"`
	Message     *string `json:"message"`
	IsAnonymous bool    `json:"is_anonymous"`
	DonorType   string  `json:"donor_type" validate:"omitempty,oneof=individual company organization"`
}

type donationDTO struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaign_id"`
	DonorID     *string   `json:"donor_id,omitempty"`
	DonorName   *string   `json:"donor_name,omitempty"`
	DonorEmail  *string   `json:"donor_email,omitempty"`
	Amount      string    `json:"amount"`
	Message     *string   `json:"message,omitempty"`
	IsAnonymous bool      `json:"is_anonymous"`
	DonorType   string    `json:"donor_type"`
	CreatedAt   time.Time `json:"created_at"`
}

func toDonationDTO(d domain.Donation) donationDTO {
	return donationDTO{
		ID:          d.ID,
		CampaignID:  d.CampaignID,
		DonorID:     d.DonorID,
		DonorName:   d.DonorName,
		DonorEmail:  d.DonorEmail,
		Amount:      d.Amount,
		Message:     d.Message,
		IsAnonymous: d.IsAnonymous,
		DonorType:   string(d.DonorType),
		CreatedAt:   d.CreatedAt,
	}
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	if err := a.decodeValid(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	donation, err := a.Donations.Create(r.Context(), a.identity(r), service.CreateDonationInput{
		CampaignID:  req.CampaignID,
		DonorName:   req.DonorName,
		DonorEmail:  req.DonorEmail,
		Amount:      req.Amount,
		Message:     req.Message,
		IsAnonymous: req.IsAnonymous,
		DonorType:   domain.DonorType(req.DonorType),
	})
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toDonationDTO(*donation))
}
