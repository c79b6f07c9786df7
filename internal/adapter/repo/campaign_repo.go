package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sismo/internal/domain"
)

// CampaignRepositoryPG implements domain.CampaignRepository backed by PostgreSQL.
type CampaignRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository creates a new CampaignRepositoryPG.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{pool: pool}
}

const campaignColumns = `id, title, description, earthquake_id, target_amount, current_amount,
status, start_date, end_date, beneficiary_info, image_url, created_by, created_at, updated_at`

// Create inserts a new campaign with a zero running total.
func (r *CampaignRepositoryPG) Create(ctx context.Context, c *domain.DonationCampaign) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO donation_campaigns (id, title, description, earthquake_id, target_amount,
current_amount, status, start_date, end_date, beneficiary_info, image_url, created_by)
VALUES ($1, $2, $3, $4, $5, '0', $6, NOW(), $7, $8, $9, $10);
`, c.ID, c.Title, c.Description, c.EarthquakeID, c.TargetAmount, c.Status, c.EndDate,
		c.BeneficiaryInfo, c.ImageURL, c.CreatedBy)
	return err
}

// List returns campaigns newest first, optionally filtered by status.
func (r *CampaignRepositoryPG) List(ctx context.Context, status *domain.CampaignStatus) ([]domain.DonationCampaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM donation_campaigns`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.DonationCampaign
	for rows.Next() {
		var c domain.DonationCampaign
		if err := scanCampaign(rows, &c); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID fetches a single campaign.
func (r *CampaignRepositoryPG) GetByID(ctx context.Context, id string) (*domain.DonationCampaign, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM donation_campaigns WHERE id = $1`, id)
	var c domain.DonationCampaign
	if err := scanCampaign(row, &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// AddToCurrentAmount adds the decimal amount to the campaign's running total
// in a single UPDATE, so concurrent donations cannot lose updates: the
// read-modify-write happens inside the row lock taken by the statement.
func (r *CampaignRepositoryPG) AddToCurrentAmount(ctx context.Context, id string, amount string) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE donation_campaigns
SET current_amount = (current_amount::numeric + $2::numeric)::text,
    updated_at = NOW()
WHERE id = $1;
`, id, amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCampaign(row pgx.Row, c *domain.DonationCampaign) error {
	return row.Scan(&c.ID, &c.Title, &c.Description, &c.EarthquakeID, &c.TargetAmount,
		&c.CurrentAmount, &c.Status, &c.StartDate, &c.EndDate, &c.BeneficiaryInfo,
		&c.ImageURL, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
}

var _ domain.CampaignRepository = (*CampaignRepositoryPG)(nil)
