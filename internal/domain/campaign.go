package domain

import "time"

type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
	CampaignClosed    CampaignStatus = "closed"
)

// DonationCampaign is a fundraising drive, optionally tied to an earthquake.
// Amounts are text-encoded decimals; CurrentAmount only grows through the
// donation ledger.
type DonationCampaign struct {
	ID              string
	Title           string
	Description     string
	EarthquakeID    *string
	TargetAmount    string
	CurrentAmount   string
	Status          CampaignStatus
	StartDate       time.Time
	EndDate         *time.Time
	BeneficiaryInfo *string
	ImageURL        *string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidCampaignStatus reports whether s is a known campaign status.
func ValidCampaignStatus(s CampaignStatus) bool {
	switch s {
	case CampaignActive, CampaignCompleted, CampaignClosed:
		return true
	}
	return false
}
