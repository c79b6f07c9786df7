package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sismo/internal/domain"
)

// CreateCampaignInput carries a campaign submission.
type CreateCampaignInput struct {
	Title           string
	Description     string
	EarthquakeID    *string
	TargetAmount    string
	BeneficiaryInfo *string
	ImageURL        *string
	EndDate         *time.Time
}

// CampaignService manages donation campaigns.
type CampaignService struct {
	campaigns domain.CampaignRepository
}

// NewCampaignService creates a CampaignService.
func NewCampaignService(campaigns domain.CampaignRepository) *CampaignService {
	return &CampaignService{campaigns: campaigns}
}

// Create opens a new campaign. Privileged actors only.
func (s *CampaignService) Create(ctx context.Context, identity *domain.Identity, in CreateCampaignInput) (*domain.DonationCampaign, error) {
	if !identity.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	target, err := decimal.NewFromString(in.TargetAmount)
	if err != nil || !target.IsPositive() {
		return nil, fmt.Errorf("%w: target amount must be a positive number", domain.ErrInvalidAmount)
	}

	campaign := &domain.DonationCampaign{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Description:     in.Description,
		EarthquakeID:    in.EarthquakeID,
		TargetAmount:    target.String(),
		CurrentAmount:   "0",
		Status:          domain.CampaignActive,
		EndDate:         in.EndDate,
		BeneficiaryInfo: in.BeneficiaryInfo,
		ImageURL:        in.ImageURL,
		CreatedBy:       identity.ID,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return campaign, nil
}

// List returns campaigns newest first, optionally filtered by status.
func (s *CampaignService) List(ctx context.Context, status *domain.CampaignStatus) ([]domain.DonationCampaign, error) {
	if status != nil && !domain.ValidCampaignStatus(*status) {
		return nil, fmt.Errorf("%w: unknown campaign status %q", domain.ErrValidation, *status)
	}
	return s.campaigns.List(ctx, status)
}

// GetByID fetches a single campaign.
func (s *CampaignService) GetByID(ctx context.Context, id string) (*domain.DonationCampaign, error) {
	return s.campaigns.GetByID(ctx, id)
}
