package audit

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines persistence operations for audit entries.
type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) Insert(ctx context.Context, e Entry) error {
	var metadata []byte
	if e.Metadata != nil {
		var err error
		metadata, err = json.Marshal(e.Metadata)
		if err != nil {
			return err
		}
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_logs (id, user_id, action, module, detail, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, e.Action, e.Module, e.Detail, metadata, e.CreatedAt,
	)
	return err
}

func (r *pgRepository) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.user_id, a.action, a.module, a.detail, a.metadata, a.created_at,
			u.id, u.email, u.role
		FROM audit_logs a
		JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var (
			e        Entry
			metadata []byte
			us       UserSummary
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Module, &e.Detail, &metadata, &e.CreatedAt, &us.ID, &us.Email, &us.Role); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, err
			}
		}
		e.User = &us
		result = append(result, e)
	}
	return result, rows.Err()
}
