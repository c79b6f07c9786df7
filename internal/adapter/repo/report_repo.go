package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sismo/internal/domain"
)

// ReportRepositoryPG implements domain.ReportRepository backed by PostgreSQL.
type ReportRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepositoryPG.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepositoryPG {
	return &ReportRepositoryPG{pool: pool}
}

const reportColumns = `id, user_id, earthquake_id, report_type, severity, description, location,
latitude, longitude, contact_name, contact_phone, status, image_urls, created_at, updated_at`

// Create inserts a new emergency report.
func (r *ReportRepositoryPG) Create(ctx context.Context, report *domain.EmergencyReport) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO emergency_reports (id, user_id, earthquake_id, report_type, severity, description,
location, latitude, longitude, contact_name, contact_phone, status, image_urls)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`, report.ID, report.UserID, report.EarthquakeID, report.Type, report.Severity, report.Description,
		report.Location, report.Latitude, report.Longitude, report.ContactName, report.ContactPhone,
		report.Status, report.ImageURLs)
	return err
}

// List returns reports newest first, bounded by limit.
func (r *ReportRepositoryPG) List(ctx context.Context, limit int) ([]domain.EmergencyReport, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+reportColumns+`
FROM emergency_reports
ORDER BY created_at DESC
LIMIT $1;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

// GetByID fetches a single report.
func (r *ReportRepositoryPG) GetByID(ctx context.Context, id string) (*domain.EmergencyReport, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM emergency_reports WHERE id = $1`, id)
	var report domain.EmergencyReport
	if err := scanReport(row, &report); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// ListByUser returns the reports filed by a user, newest first.
func (r *ReportRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.EmergencyReport, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+reportColumns+`
FROM emergency_reports
WHERE user_id = $1
ORDER BY created_at DESC;
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

// UpdateStatus moves a report to the given lifecycle status.
func (r *ReportRepositoryPG) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE emergency_reports
SET status = $2, updated_at = NOW()
WHERE id = $1;
`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanReport(row pgx.Row, report *domain.EmergencyReport) error {
	return row.Scan(&report.ID, &report.UserID, &report.EarthquakeID, &report.Type, &report.Severity,
		&report.Description, &report.Location, &report.Latitude, &report.Longitude,
		&report.ContactName, &report.ContactPhone, &report.Status, &report.ImageURLs,
		&report.CreatedAt, &report.UpdatedAt)
}

func scanReports(rows pgx.Rows) ([]domain.EmergencyReport, error) {
	var items []domain.EmergencyReport
	for rows.Next() {
		var report domain.EmergencyReport
		if err := scanReport(rows, &report); err != nil {
			return nil, err
		}
		items = append(items, report)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.ReportRepository = (*ReportRepositoryPG)(nil)
