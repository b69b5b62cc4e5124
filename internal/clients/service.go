package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/makingtrips/makingtrips/internal/shared"
)

// Service handles client business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new client. A tax id held by an inactive client is
// reported as a distinguishable conflict carrying the existing id, so the
// caller can offer reactivation instead of failing outright.
func (s *Service) Create(ctx context.Context, req CreateClientRequest) (*Client, error) {
	taxID := strings.TrimSpace(req.TaxID)

	existing, err := s.repo.GetByTaxID(ctx, taxID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("clients: lookup tax id: %w", err)
	}
	if existing != nil {
		if !existing.Active {
			return nil, &shared.Conflict{
				Code:    shared.ConflictInactiveDuplicate,
				Message: "client exists but is inactive and can be reactivated",
				Meta:    map[string]any{"clientId": existing.ID.String()},
			}
		}
		return nil, shared.NewConflict(shared.ConflictDuplicate, "a client with this tax id already exists")
	}

	now := time.Now().UTC()
	client := Client{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		TaxID:     taxID,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return &client, nil
}

// List returns active clients, newest first.
func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

// Get returns a client by id regardless of its active flag.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.Get(ctx, id)
}

// GetByTaxID returns a client by tax id, inactive records included. A missing
// record yields nil rather than an error so the pre-check endpoint can return
// an empty body.
func (s *Service) GetByTaxID(ctx context.Context, taxID string) (*Client, error) {
	taxID = strings.TrimSpace(taxID)
	if taxID == "" {
		return nil, nil
	}
	client, err := s.repo.GetByTaxID(ctx, taxID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return client, err
}

// Update patches client fields. Reactivation happens here: the update may set
// Active=true together with fresh contact details.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.TaxID != nil {
		client.TaxID = strings.TrimSpace(*req.TaxID)
	}
	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		client.Address = strings.TrimSpace(*req.Address)
	}
	if req.Active != nil {
		client.Active = *req.Active
	}

	if err := s.repo.Update(ctx, *client); err != nil {
		return nil, err
	}
	return client, nil
}

// Disable soft-deletes a client.
func (s *Service) Disable(ctx context.Context, id uuid.UUID) (*Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	client.Active = false
	if err := s.repo.Update(ctx, *client); err != nil {
		return nil, err
	}
	return client, nil
}
