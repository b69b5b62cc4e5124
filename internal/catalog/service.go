package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/makingtrips/makingtrips/internal/shared"
)

// Manager handles catalog business logic.
type Manager struct {
	repo Repository
}

// NewManager builds a Manager instance.
func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo}
}

// Create adds a catalog entry. The active-scoped name check here is a
// fast-path courtesy; the partial unique index is the source of truth under
// concurrent requests.
func (m *Manager) Create(ctx context.Context, req CreateServiceRequest) (*Service, error) {
	name := strings.TrimSpace(req.Name)

	exists, err := m.repo.ActiveNameExists(ctx, name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflict(shared.ConflictDuplicate, "an active service with this name already exists")
	}

	now := time.Now().UTC()
	svc := Service{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		BasePrice:   req.BasePrice,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := m.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

// List returns active services, newest first.
func (m *Manager) List(ctx context.Context) ([]Service, error) {
	return m.repo.List(ctx)
}

// Get returns a service by id regardless of its active flag.
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (*Service, error) {
	return m.repo.Get(ctx, id)
}

// Update patches service fields. Renames re-check active-name uniqueness
// excluding the service itself.
func (m *Manager) Update(ctx context.Context, id uuid.UUID, req UpdateServiceRequest) (*Service, error) {
	svc, err := m.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		exists, err := m.repo.ActiveNameExists(ctx, name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflict(shared.ConflictDuplicate, "an active service with this name already exists")
		}
		svc.Name = name
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.BasePrice != nil {
		svc.BasePrice = *req.BasePrice
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := m.repo.Update(ctx, *svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Disable soft-deletes a service. Existing quote items keep their snapshot.
func (m *Manager) Disable(ctx context.Context, id uuid.UUID) (*Service, error) {
	svc, err := m.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	svc.Active = false
	if err := m.repo.Update(ctx, *svc); err != nil {
		return nil, err
	}
	return svc, nil
}
