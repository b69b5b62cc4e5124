package clients

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/makingtrips/makingtrips/internal/platform/db"
	"github.com/makingtrips/makingtrips/internal/shared"
)

// Repository defines persistence operations for clients.
type Repository interface {
	Create(ctx context.Context, client Client) error
	Get(ctx context.Context, id uuid.UUID) (*Client, error)
	GetByTaxID(ctx context.Context, taxID string) (*Client, error)
	List(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, client Client) error
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const clientColumns = `id, name, tax_id, email, phone, address, active, created_at, updated_at`

func (r *pgRepository) Create(ctx context.Context, c Client) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO clients (id, name, tax_id, email, phone, address, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Name, c.TaxID, c.Email, c.Phone, c.Address, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if db.IsUniqueViolation(err, "clients_tax_id_key") {
		return shared.NewConflict(shared.ConflictDuplicate, "a client with this tax id already exists")
	}
	return err
}

func (r *pgRepository) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	return scanClient(row)
}

func (r *pgRepository) GetByTaxID(ctx context.Context, taxID string) (*Client, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE tax_id = $1`, taxID)
	return scanClient(row)
}

func (r *pgRepository) List(ctx context.Context) ([]Client, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE active ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.Address, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *pgRepository) Update(ctx context.Context, c Client) error {
	c.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `
		UPDATE clients
		SET name = $2, tax_id = $3, email = $4, phone = $5, address = $6, active = $7, updated_at = $8
		WHERE id = $1`,
		c.ID, c.Name, c.TaxID, c.Email, c.Phone, c.Address, c.Active, c.UpdatedAt,
	)
	if db.IsUniqueViolation(err, "clients_tax_id_key") {
		return shared.NewConflict(shared.ConflictDuplicate, "a client with this tax id already exists")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanClient(row pgx.Row) (*Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.Address, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
