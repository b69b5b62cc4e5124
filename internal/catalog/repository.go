package catalog

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

// Repository defines persistence operations for catalog services.
type Repository interface {
	Create(ctx context.Context, svc Service) error
	Get(ctx context.Context, id uuid.UUID) (*Service, error)
	List(ctx context.Context) ([]Service, error)
	Update(ctx context.Context, svc Service) error
	ActiveNameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const serviceColumns = `id, name, description, base_price, active, created_at, updated_at`

func (r *pgRepository) Create(ctx context.Context, s Service) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO services (id, name, description, base_price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.Name, s.Description, s.BasePrice, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if db.IsUniqueViolation(err, "services_active_name_idx") {
		return shared.NewConflict(shared.ConflictDuplicate, "an active service with this name already exists")
	}
	return err
}

func (r *pgRepository) Get(ctx context.Context, id uuid.UUID) (*Service, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)
	var s Service
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.BasePrice, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *pgRepository) List(ctx context.Context) ([]Service, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+serviceColumns+` FROM services WHERE active ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.BasePrice, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *pgRepository) Update(ctx context.Context, s Service) error {
	s.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `
		UPDATE services
		SET name = $2, description = $3, base_price = $4, active = $5, updated_at = $6
		WHERE id = $1`,
		s.ID, s.Name, s.Description, s.BasePrice, s.Active, s.UpdatedAt,
	)
	if db.IsUniqueViolation(err, "services_active_name_idx") {
		return shared.NewConflict(shared.ConflictDuplicate, "an active service with this name already exists")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *pgRepository) ActiveNameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM services WHERE name = $1 AND active AND id <> $2
		)`, name, excludeID).Scan(&exists)
	return exists, err
}
