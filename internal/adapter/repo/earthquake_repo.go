package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sismo/internal/domain"
)

// EarthquakeRepositoryPG implements domain.EarthquakeRepository backed by PostgreSQL.
type EarthquakeRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewEarthquakeRepository creates a new EarthquakeRepositoryPG.
func NewEarthquakeRepository(pool *pgxpool.Pool) *EarthquakeRepositoryPG {
	return &EarthquakeRepositoryPG{pool: pool}
}

const earthquakeColumns = `id, magnitude, location, latitude, longitude, depth, time, url, place, created_at`

// Upsert inserts the event or overwrites its mutable fields by upstream id.
func (r *EarthquakeRepositoryPG) Upsert(ctx context.Context, e *domain.Earthquake) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO earthquakes (id, magnitude, location, latitude, longitude, depth, time, url, place)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE
SET magnitude = EXCLUDED.magnitude,
    location = EXCLUDED.location,
    latitude = EXCLUDED.latitude,
    longitude = EXCLUDED.longitude,
    depth = EXCLUDED.depth,
    time = EXCLUDED.time,
    url = EXCLUDED.url,
    place = EXCLUDED.place;
`, e.ID, e.Magnitude, e.Location, e.Latitude, e.Longitude, e.Depth, e.Time, e.URL, e.Place)
	return err
}

// Recent returns events ordered by descending occurrence time.
func (r *EarthquakeRepositoryPG) Recent(ctx context.Context, limit int) ([]domain.Earthquake, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+earthquakeColumns+`
FROM earthquakes
ORDER BY time DESC
LIMIT $1;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEarthquakes(rows)
}

// GetByID fetches a single event by upstream id.
func (r *EarthquakeRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Earthquake, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+earthquakeColumns+` FROM earthquakes WHERE id = $1`, id)
	var e domain.Earthquake
	if err := scanEarthquake(row, &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ByTimeRange returns events within the inclusive window, newest first.
func (r *EarthquakeRepositoryPG) ByTimeRange(ctx context.Context, start, end time.Time) ([]domain.Earthquake, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+earthquakeColumns+`
FROM earthquakes
WHERE time >= $1 AND time <= $2
ORDER BY time DESC;
`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEarthquakes(rows)
}

func scanEarthquake(row pgx.Row, e *domain.Earthquake) error {
	return row.Scan(&e.ID, &e.Magnitude, &e.Location, &e.Latitude, &e.Longitude, &e.Depth, &e.Time, &e.URL, &e.Place, &e.CreatedAt)
}

func scanEarthquakes(rows pgx.Rows) ([]domain.Earthquake, error) {
	var items []domain.Earthquake
	for rows.Next() {
		var e domain.Earthquake
		if err := scanEarthquake(rows, &e); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.EarthquakeRepository = (*EarthquakeRepositoryPG)(nil)
