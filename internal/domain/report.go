package domain

import "time"

type ReportType string

const (
	ReportDamage         ReportType = "damage"
	ReportInjury         ReportType = "injury"
	ReportMissing        ReportType = "missing"
	ReportInfrastructure ReportType = "infrastructure"
	ReportOther          ReportType = "other"
)

type ReportSeverity string

const (
	SeverityLow      ReportSeverity = "low"
	SeverityMedium   ReportSeverity = "medium"
	SeverityHigh     ReportSeverity = "high"
	SeverityCritical ReportSeverity = "critical"
)

type ReportStatus string

const (
	ReportPending    ReportStatus = "pending"
	ReportVerified   ReportStatus = "verified"
	ReportInProgress ReportStatus = "in_progress"
	ReportResolved   ReportStatus = "resolved"
)

// EmergencyReport is a citizen-filed report, optionally tied to an earthquake
// by a soft reference (not enforced against the event store).
type EmergencyReport struct {
	ID           string
	UserID       string
	EarthquakeID *string
	Type         ReportType
	Severity     ReportSeverity
	Description  string
	Location     string
	Latitude     *string
	Longitude    *string
	ContactName  *string
	ContactPhone *string
	Status       ReportStatus
	ImageURLs    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidReportStatus reports whether s is a known lifecycle status.
func ValidReportStatus(s ReportStatus) bool {
	switch s {
	case ReportPending, ReportVerified, ReportInProgress, ReportResolved:
		return true
	}
	return false
}
