package domain

import "time"

type DonorType string

const (
	DonorIndividual   DonorType = "individual"
	DonorCompany      DonorType = "company"
	DonorOrganization DonorType = "organization"
)

// Donation is an immutable contribution against exactly one campaign. Donor
// identity fields are nil when the donation is anonymous.
type Donation struct {
	ID          string
	CampaignID  string
	DonorID     *string
	DonorName   *string
	DonorEmail  *string
	Amount      string
	Message     *string
	IsAnonymous bool
	DonorType   DonorType
	CreatedAt   time.Time
}
