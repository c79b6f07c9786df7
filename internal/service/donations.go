package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"sismo/internal/domain"
)

// CreateDonationInput carries a donation submission.
type CreateDonationInput struct {
	CampaignID  string
	DonorName   *string
	DonorEmail  *string
	Amount      string
	Message     *string
	IsAnonymous bool
	DonorType   domain.DonorType
}

// DonationService manages the donation ledger: each accepted donation is
// persisted immutably and its amount is added to the campaign's running total.
type DonationService struct {
	donations domain.DonationRepository
	campaigns domain.CampaignRepository
	notifier  *NotificationService
	logger    zerolog.Logger
}

// NewDonationService creates a DonationService.
func NewDonationService(donations domain.DonationRepository, campaigns domain.CampaignRepository, notifier *NotificationService, logger zerolog.Logger) *DonationService {
	return &DonationService{donations: donations, campaigns: campaigns, notifier: notifier, logger: logger}
}

// Create validates and records a donation, then accumulates the amount into
// the campaign. The amount must parse to a positive decimal before anything
// reaches the ledger; the campaign must exist.
func (s *DonationService) Create(ctx context.Context, identity *domain.Identity, in CreateDonationInput) (*domain.Donation, error) {
	amount, err := decimal.NewFromString(in.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be a positive number", domain.ErrInvalidAmount)
	}
	if _, err := s.campaigns.GetByID(ctx, in.CampaignID); err != nil {
		return nil, err
	}

	donorType := in.DonorType
	if donorType == "" {
		donorType = domain.DonorIndividual
	}

	donation := &domain.Donation{
		ID:          uuid.NewString(),
		CampaignID:  in.CampaignID,
		Amount:      amount.String(),
		Message:     in.Message,
		IsAnonymous: in.IsAnonymous,
		DonorType:   donorType,
	}
	// Donor identity is suppressed entirely for anonymous donations.
	if !in.IsAnonymous {
		if identity != nil {
			id := identity.ID
			donation.DonorID = &id
		}
		donation.DonorName = in.DonorName
		donation.DonorEmail = in.DonorEmail
	}

	if err := s.donations.Create(ctx, donation); err != nil {
		return nil, fmt.Errorf("create donation: %w", err)
	}
	if err := s.campaigns.AddToCurrentAmount(ctx, in.CampaignID, donation.Amount); err != nil {
		return nil, fmt.Errorf("accumulate campaign amount: %w", err)
	}

	s.notifier.NotifyOwner(ctx, domain.NotifyDonation,
		"Nueva Donación Recibida",
		fmt.Sprintf("Donación de $%s para la campaña %s", donation.Amount, in.CampaignID),
		&donation.ID)

	return donation, nil
}

// ListByCampaign returns a campaign's donations newest first.
func (s *DonationService) ListByCampaign(ctx context.Context, campaignID string) ([]domain.Donation, error) {
	return s.donations.ListByCampaign(ctx, campaignID)
}
