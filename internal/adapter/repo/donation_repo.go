package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"sismo/internal/domain"
)

// DonationRepositoryPG implements domain.DonationRepository backed by PostgreSQL.
type DonationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDonationRepository creates a new DonationRepositoryPG.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepositoryPG {
	return &DonationRepositoryPG{pool: pool}
}

// Create inserts an immutable donation record.
func (r *DonationRepositoryPG) Create(ctx context.Context, d *domain.Donation) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO donations (id, campaign_id, donor_id, donor_name, donor_email, amount, message,
is_anonymous, donor_type)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`, d.ID, d.CampaignID, d.DonorID, d.DonorName, d.DonorEmail, d.Amount, d.Message,
		d.IsAnonymous, d.DonorType)
	return err
}

// ListByCampaign returns a campaign's donations newest first.
func (r *DonationRepositoryPG) ListByCampaign(ctx context.Context, campaignID string) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, campaign_id, donor_id, donor_name, donor_email, amount, message, is_anonymous,
donor_type, created_at
FROM donations
WHERE campaign_id = $1
ORDER BY created_at DESC;
`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(&d.ID, &d.CampaignID, &d.DonorID, &d.DonorName, &d.DonorEmail,
			&d.Amount, &d.Message, &d.IsAnonymous, &d.DonorType, &d.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
