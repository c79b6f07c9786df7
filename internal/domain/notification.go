package domain

import "time"

type NotificationType string

const (
	NotifyEarthquake NotificationType = "earthquake"
	NotifyReport     NotificationType = "emergency_report"
	NotifyDonation   NotificationType = "donation"
	NotifyCampaign   NotificationType = "campaign"
)

// Notification is a per-user message. The read flag only ever moves from
// unread to read.
type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Title     string
	Message   string
	RelatedID *string
	IsRead    bool
	CreatedAt time.Time
}
