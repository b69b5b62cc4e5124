package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/makingtrips/makingtrips/internal/shared"
)

const bcryptCost = 10

// Service handles user management business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new account. Emails are unique case-insensitively; the
// default role is operator.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("users: lookup email: %w", err)
	}
	if existing != nil {
		return nil, shared.NewConflict(shared.ConflictDuplicate, "email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("users: hash password: %w", err)
	}

	role := shared.Role(req.Role)
	if role == "" {
		role = shared.RoleOperator
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all accounts, newest first.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Update patches role, active flag or password.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		role := shared.Role(*req.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: unknown role", shared.ErrValidation)
		}
		user.Role = role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("users: hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// Disable soft-deletes an account; the user can no longer sign in.
func (s *Service) Disable(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Active = false
	if err := s.repo.Update(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}
