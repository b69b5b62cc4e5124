package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/makingtrips/makingtrips/internal/shared"
)

// Repository defines persistence operations for authentication flows.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	CompleteReset(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// PGRepository implements Repository over the users table.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByEmail fetches a user's credential view by email, inactive included.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, role, active, reset_token_hash, reset_expires_at
		FROM users WHERE lower(email) = $1`, email)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Active, &u.ResetTokenHash, &u.ResetExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetResetToken stores the hashed reset token with its expiry.
func (r *PGRepository) SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET reset_token_hash = $2, reset_expires_at = $3, updated_at = NOW()
		WHERE id = $1`, userID, tokenHash, expiresAt)
	return err
}

// CompleteReset replaces the password and clears the token state in one write
// so a token cannot be replayed.
func (r *PGRepository) CompleteReset(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $2, reset_token_hash = NULL, reset_expires_at = NULL, updated_at = NOW()
		WHERE id = $1`, userID, passwordHash)
	return err
}

var _ Repository = (*PGRepository)(nil)
