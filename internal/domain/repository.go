package domain

import (
	"context"
	"time"
)

// EarthquakeRepository persists canonical seismic events keyed by upstream id.
type EarthquakeRepository interface {
	// Upsert inserts the event or overwrites the mutable fields when the id
	// already exists. It never fails on duplicates.
	Upsert(ctx context.Context, e *Earthquake) error
	// Recent returns events ordered by descending occurrence time.
	Recent(ctx context.Context, limit int) ([]Earthquake, error)
	// GetByID returns ErrNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (*Earthquake, error)
	// ByTimeRange returns events with start <= time <= end, descending by time.
	ByTimeRange(ctx context.Context, start, end time.Time) ([]Earthquake, error)
}

// ReportRepository persists emergency reports.
type ReportRepository interface {
	Create(ctx context.Context, r *EmergencyReport) error
	List(ctx context.Context, limit int) ([]EmergencyReport, error)
	GetByID(ctx context.Context, id string) (*EmergencyReport, error)
	ListByUser(ctx context.Context, userID string) ([]EmergencyReport, error)
	UpdateStatus(ctx context.Context, id string, status ReportStatus) error
}

// CampaignRepository persists donation campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, c *DonationCampaign) error
	List(ctx context.Context, status *CampaignStatus) ([]DonationCampaign, error)
	GetByID(ctx context.Context, id string) (*DonationCampaign, error)
	// AddToCurrentAmount atomically adds the decimal amount to the campaign's
	// running total. Concurrent adds must all be reflected.
	AddToCurrentAmount(ctx context.Context, id string, amount string) error
}

// DonationRepository persists immutable donation records.
type DonationRepository interface {
	Create(ctx context.Context, d *Donation) error
	ListByCampaign(ctx context.Context, campaignID string) ([]Donation, error)
}

// NotificationRepository persists per-user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Notification, error)
	// MarkRead flips unread to read; marking an already-read notification is
	// a no-op. Unknown ids return ErrNotFound.
	MarkRead(ctx context.Context, id string) error
}

// UserRepository persists accounts.
type UserRepository interface {
	Upsert(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
}
