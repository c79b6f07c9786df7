package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sismo/internal/domain"
)

// CreateReportInput carries a validated report submission.
type CreateReportInput struct {
	EarthquakeID *string
	Type         domain.ReportType
	Severity     domain.ReportSeverity
	Description  string
	Location     string
	Latitude     *string
	Longitude    *string
	ContactName  *string
	ContactPhone *string
	ImageURLs    *string
}

// ReportService manages emergency reports.
type ReportService struct {
	reports  domain.ReportRepository
	notifier *NotificationService
	logger   zerolog.Logger
}

// NewReportService creates a ReportService.
func NewReportService(reports domain.ReportRepository, notifier *NotificationService, logger zerolog.Logger) *ReportService {
	return &ReportService{reports: reports, notifier: notifier, logger: logger}
}

// Create files a new report for the identity and fans out an owner
// notification. Required fields are checked before any write.
func (s *ReportService) Create(ctx context.Context, identity *domain.Identity, in CreateReportInput) (*domain.EmergencyReport, error) {
	if identity == nil {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Location) == "" {
		return nil, fmt.Errorf("%w: location is required", domain.ErrValidation)
	}
	switch in.Type {
	case domain.ReportDamage, domain.ReportInjury, domain.ReportMissing, domain.ReportInfrastructure, domain.ReportOther:
	default:
		return nil, fmt.Errorf("%w: unknown report type %q", domain.ErrValidation, in.Type)
	}
	switch in.Severity {
	case domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh, domain.SeverityCritical:
	default:
		return nil, fmt.Errorf("%w: unknown severity %q", domain.ErrValidation, in.Severity)
	}

	report := &domain.EmergencyReport{
		ID:           uuid.NewString(),
		UserID:       identity.ID,
		EarthquakeID: in.EarthquakeID,
		Type:         in.Type,
		Severity:     in.Severity,
		Description:  in.Description,
		Location:     in.Location,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		ContactName:  in.ContactName,
		ContactPhone: in.ContactPhone,
		Status:       domain.ReportPending,
		ImageURLs:    in.ImageURLs,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	summary := in.Description
	if len(summary) > 100 {
		summary = summary[:100] + "..."
	}
	reporter := identity.Name
	if reporter == "" {
		reporter = identity.ID
	}
	s.notifier.NotifyOwner(ctx, domain.NotifyReport,
		"Nuevo Reporte de Emergencia",
		fmt.Sprintf("Usuario %s reportó: %s", reporter, summary),
		&report.ID)

	return report, nil
}

// List returns reports newest first, bounded by limit.
func (s *ReportService) List(ctx context.Context, limit int) ([]domain.EmergencyReport, error) {
	return s.reports.List(ctx, limit)
}

// GetByID fetches a single report.
func (s *ReportService) GetByID(ctx context.Context, id string) (*domain.EmergencyReport, error) {
	return s.reports.GetByID(ctx, id)
}

// ListForUser returns the caller's own reports.
func (s *ReportService) ListForUser(ctx context.Context, userID string) ([]domain.EmergencyReport, error) {
	return s.reports.ListByUser(ctx, userID)
}

// UpdateStatus moves a report through its lifecycle. Only a privileged actor
// may call this; nothing changes when the caller is not authorized.
func (s *ReportService) UpdateStatus(ctx context.Context, identity *domain.Identity, id string, status domain.ReportStatus) error {
	if !identity.IsAdmin() {
		return domain.ErrUnauthorized
	}
	if !domain.ValidReportStatus(status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	return s.reports.UpdateStatus(ctx, id, status)
}
