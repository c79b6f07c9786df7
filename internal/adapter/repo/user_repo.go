package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sismo/internal/domain"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryPG {
	return &UserRepositoryPG{pool: pool}
}

// Upsert inserts or refreshes an account record.
func (r *UserRepositoryPG) Upsert(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO users (id, name, email, login_method, role)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    email = EXCLUDED.email,
    login_method = EXCLUDED.login_method,
    last_signed_in = NOW();
`, u.ID, u.Name, u.Email, u.LoginMethod, u.Role)
	return err
}

// GetByID fetches an account.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, email, login_method, role, created_at, last_signed_in
FROM users
WHERE id = $1;
`, id)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.LoginMethod, &u.Role, &u.CreatedAt, &u.LastSignedIn); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)
