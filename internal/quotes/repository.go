package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/makingtrips/makingtrips/internal/shared"
)

// Repository defines persistence operations for quotes.
type Repository interface {
	Create(ctx context.Context, quote Quote) error
	Get(ctx context.Context, id uuid.UUID) (*Quote, error)
	List(ctx context.Context) ([]Quote, error)
	Update(ctx context.Context, quote Quote) error
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const quoteColumns = `q.id, q.client_id, q.origin, q.destination, q.service_date, q.passengers,
	q.items, q.total, q.status, q.notes, q.created_by, q.active, q.created_at, q.updated_at,
	c.id, c.name, c.tax_id, c.email`

const quoteJoin = `FROM quotes q JOIN clients c ON c.id = q.client_id`

func (r *pgRepository) Create(ctx context.Context, q Quote) error {
	items, err := json.Marshal(q.Items)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO quotes (id, client_id, origin, destination, service_date, passengers, items, total, status, notes, created_by, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		q.ID, q.ClientID, q.Origin, q.Destination, q.ServiceDate, q.Passengers, items, q.Total, q.Status, q.Notes, q.CreatedBy, q.Active, q.CreatedAt, q.UpdatedAt,
	)
	return err
}

func (r *pgRepository) Get(ctx context.Context, id uuid.UUID) (*Quote, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+quoteColumns+` `+quoteJoin+` WHERE q.id = $1`, id)
	return scanQuote(row)
}

func (r *pgRepository) List(ctx context.Context) ([]Quote, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+quoteColumns+` `+quoteJoin+` WHERE q.active ORDER BY q.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *q)
	}
	return result, rows.Err()
}

func (r *pgRepository) Update(ctx context.Context, q Quote) error {
	items, err := json.Marshal(q.Items)
	if err != nil {
		return err
	}
	q.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `
		UPDATE quotes
		SET client_id = $2, origin = $3, destination = $4, service_date = $5, passengers = $6, items = $7, total = $8, status = $9, notes = $10, active = $11, updated_at = $12
		WHERE id = $1`,
		q.ID, q.ClientID, q.Origin, q.Destination, q.ServiceDate, q.Passengers, items, q.Total, q.Status, q.Notes, q.Active, q.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanQuote(row pgx.Row) (*Quote, error) {
	var (
		q     Quote
		items []byte
		cs    ClientSummary
	)
	err := row.Scan(
		&q.ID, &q.ClientID, &q.Origin, &q.Destination, &q.ServiceDate, &q.Passengers,
		&items, &q.Total, &q.Status, &q.Notes, &q.CreatedBy, &q.Active, &q.CreatedAt, &q.UpdatedAt,
		&cs.ID, &cs.Name, &cs.TaxID, &cs.Email,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &q.Items); err != nil {
		return nil, err
	}
	q.Client = &cs
	return &q, nil
}
