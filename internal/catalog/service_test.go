package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makingtrips/makingtrips/internal/shared"
)

type mockRepository struct {
	services map[uuid.UUID]*Service
}

func newMockRepository() *mockRepository {
	return &mockRepository{services: make(map[uuid.UUID]*Service)}
}

func (m *mockRepository) Create(ctx context.Context, s Service) error {
	m.services[s.ID] = &s
	return nil
}

func (m *mockRepository) Get(ctx context.Context, id uuid.UUID) (*Service, error) {
	s, ok := m.services[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockRepository) List(ctx context.Context) ([]Service, error) {
	var result []Service
	for _, s := range m.services {
		if s.Active {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockRepository) Update(ctx context.Context, s Service) error {
	if _, ok := m.services[s.ID]; !ok {
		return shared.ErrNotFound
	}
	m.services[s.ID] = &s
	return nil
}

func (m *mockRepository) ActiveNameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	for _, s := range m.services {
		if s.Active && s.Name == name && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateService(t *testing.T) {
	mgr := NewManager(newMockRepository())

	svc, err := mgr.Create(context.Background(), CreateServiceRequest{
		Name:        "  Airport transfer  ",
		Description: "Private transfer",
		BasePrice:   35000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Airport transfer", svc.Name)
	assert.Equal(t, 35000.0, svc.BasePrice)
	assert.True(t, svc.Active)
}

func TestCreateServiceDuplicateActiveName(t *testing.T) {
	mgr := NewManager(newMockRepository())
	ctx := context.Background()

	_, err := mgr.Create(ctx, CreateServiceRequest{Name: "City tour", BasePrice: 85000})
	require.NoError(t, err)

	_, err = mgr.Create(ctx, CreateServiceRequest{Name: "City tour", BasePrice: 90000})
	require.ErrorIs(t, err, shared.ErrConflict)

	var conflict *shared.Conflict
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, shared.ConflictDuplicate, conflict.Code)
}

func TestCreateServiceNameFreedByDisable(t *testing.T) {
	mgr := NewManager(newMockRepository())
	ctx := context.Background()

	first, err := mgr.Create(ctx, CreateServiceRequest{Name: "City tour", BasePrice: 85000})
	require.NoError(t, err)
	_, err = mgr.Disable(ctx, first.ID)
	require.NoError(t, err)

	second, err := mgr.Create(ctx, CreateServiceRequest{Name: "City tour", BasePrice: 90000})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestRenameServiceChecksActiveNames(t *testing.T) {
	mgr := NewManager(newMockRepository())
	ctx := context.Background()

	_, err := mgr.Create(ctx, CreateServiceRequest{Name: "City tour", BasePrice: 85000})
	require.NoError(t, err)
	other, err := mgr.Create(ctx, CreateServiceRequest{Name: "Wine route", BasePrice: 120000})
	require.NoError(t, err)

	name := "City tour"
	_, err = mgr.Update(ctx, other.ID, UpdateServiceRequest{Name: &name})
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestRenameServiceToOwnNameAllowed(t *testing.T) {
	mgr := NewManager(newMockRepository())
	ctx := context.Background()

	svc, err := mgr.Create(ctx, CreateServiceRequest{Name: "City tour", BasePrice: 85000})
	require.NoError(t, err)

	name := "City tour"
	price := 95000.0
	updated, err := mgr.Update(ctx, svc.ID, UpdateServiceRequest{Name: &name, BasePrice: &price})
	require.NoError(t, err)
	assert.Equal(t, 95000.0, updated.BasePrice)
}

func TestDisableServiceKeepsRecordReadable(t *testing.T) {
	mgr := NewManager(newMockRepository())
	ctx := context.Background()

	svc, err := mgr.Create(ctx, CreateServiceRequest{Name: "City tour", BasePrice: 85000})
	require.NoError(t, err)
	_, err = mgr.Disable(ctx, svc.ID)
	require.NoError(t, err)

	got, err := mgr.Get(ctx, svc.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	list, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
