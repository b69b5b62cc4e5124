package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines the read-side aggregate queries.
type Repository interface {
	CountActiveClients(ctx context.Context) (int64, error)
	CountActiveQuotesByStatus(ctx context.Context, status string) (int64, error)
	CountActiveBookings(ctx context.Context) (int64, error)
	SumApprovedQuoteTotals(ctx context.Context, from, to time.Time) (float64, error)
	CountPendingQuotesBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) CountActiveClients(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM clients WHERE active`).Scan(&n)
	return n, err
}

func (r *pgRepository) CountActiveQuotesByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM quotes WHERE active AND status = $1`, status).Scan(&n)
	return n, err
}

func (r *pgRepository) CountActiveBookings(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM bookings WHERE active`).Scan(&n)
	return n, err
}

func (r *pgRepository) SumApprovedQuoteTotals(ctx context.Context, from, to time.Time) (float64, error) {
	var sum float64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(sum(total), 0)
		FROM quotes
		WHERE active AND status = 'approved' AND service_date >= $1 AND service_date < $2`,
		from, to,
	).Scan(&sum)
	return sum, err
}

func (r *pgRepository) CountPendingQuotesBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM quotes
		WHERE active AND status = 'pending' AND service_date >= $1 AND service_date < $2`,
		from, to,
	).Scan(&n)
	return n, err
}
