package quotes

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makingtrips/makingtrips/internal/audit"
	"github.com/makingtrips/makingtrips/internal/catalog"
	"github.com/makingtrips/makingtrips/internal/clients"
	"github.com/makingtrips/makingtrips/internal/shared"
)

type mockRepository struct {
	quotes      map[uuid.UUID]*Quote
	createError error
	updateError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{quotes: make(map[uuid.UUID]*Quote)}
}

func (m *mockRepository) Create(ctx context.Context, q Quote) error {
	if m.createError != nil {
		return m.createError
	}
	m.quotes[q.ID] = &q
	return nil
}

func (m *mockRepository) Get(ctx context.Context, id uuid.UUID) (*Quote, error) {
	q, ok := m.quotes[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (m *mockRepository) List(ctx context.Context) ([]Quote, error) {
	var result []Quote
	for _, q := range m.quotes {
		if q.Active {
			result = append(result, *q)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockRepository) Update(ctx context.Context, q Quote) error {
	if m.updateError != nil {
		return m.updateError
	}
	if _, ok := m.quotes[q.ID]; !ok {
		return shared.ErrNotFound
	}
	m.quotes[q.ID] = &q
	return nil
}

type mockClientDirectory struct {
	clients map[uuid.UUID]*clients.Client
}

func (m *mockClientDirectory) Get(ctx context.Context, id uuid.UUID) (*clients.Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

type mockCatalog struct {
	services map[uuid.UUID]*catalog.Service
}

func (m *mockCatalog) Get(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	s, ok := m.services[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return s, nil
}

type mockAuditRepo struct {
	entries     []audit.Entry
	insertError error
}

func (m *mockAuditRepo) Insert(ctx context.Context, e audit.Entry) error {
	if m.insertError != nil {
		return m.insertError
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockAuditRepo) List(ctx context.Context, limit int) ([]audit.Entry, error) {
	return m.entries, nil
}

type fixture struct {
	svc       *Service
	repo      *mockRepository
	dir       *mockClientDirectory
	auditRepo *mockAuditRepo
	client    *clients.Client
	transfer  *catalog.Service
	tour      *catalog.Service
	actor     shared.Actor
}

func newFixture() *fixture {
	repo := newMockRepository()
	auditRepo := &mockAuditRepo{}

	client := &clients.Client{ID: uuid.New(), Name: "Viajes Andinos", TaxID: "76.123.456-7", Email: "ops@andinos.cl", Active: true}
	transfer := &catalog.Service{ID: uuid.New(), Name: "Airport transfer", BasePrice: 35000, Active: true}
	tour := &catalog.Service{ID: uuid.New(), Name: "Full-day city tour", BasePrice: 85000, Active: true}

	dir := &mockClientDirectory{clients: map[uuid.UUID]*clients.Client{client.ID: client}}
	cat := &mockCatalog{services: map[uuid.UUID]*catalog.Service{transfer.ID: transfer, tour.ID: tour}}

	recorder := audit.NewRecorder(auditRepo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := NewService(repo, dir, cat, recorder)

	return &fixture{
		svc:       svc,
		repo:      repo,
		dir:       dir,
		auditRepo: auditRepo,
		client:    client,
		transfer:  transfer,
		tour:      tour,
		actor:     shared.Actor{UserID: uuid.New(), Role: shared.RoleOperator},
	}
}

func validCreateRequest(f *fixture) CreateQuoteRequest {
	return CreateQuoteRequest{
		ClientID:    f.client.ID.String(),
		Origin:      "Santiago",
		Destination: "Valparaiso",
		ServiceDate: time.Now().AddDate(0, 0, 14),
		Passengers:  12,
		Items: []ItemInput{
			{ServiceID: f.transfer.ID.String(), Quantity: 2, UnitPrice: 30000},
			{ServiceID: f.tour.ID.String(), Quantity: 1, UnitPrice: 90000},
		},
	}
}

func TestCreateQuote(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	quote, err := f.svc.Create(ctx, f.actor, validCreateRequest(f))
	require.NoError(t, err)
	require.NotNil(t, quote)

	assert.Equal(t, StatusPending, quote.Status)
	assert.Equal(t, f.actor.UserID, quote.CreatedBy)
	assert.True(t, quote.Active)
	require.Len(t, quote.Items, 2)
	assert.Equal(t, "Airport transfer", quote.Items[0].ServiceName)
	assert.Equal(t, 60000.0, quote.Items[0].Subtotal)
	assert.Equal(t, 90000.0, quote.Items[1].Subtotal)
	assert.Equal(t, 150000.0, quote.Total)

	require.Len(t, f.auditRepo.entries, 1)
	assert.Equal(t, "create", f.auditRepo.entries[0].Action)
	assert.Equal(t, "quotes", f.auditRepo.entries[0].Module)
}

func TestCreateQuoteDefaultsQuantity(t *testing.T) {
	f := newFixture()
	req := validCreateRequest(f)
	req.Items = []ItemInput{{ServiceID: f.transfer.ID.String(), UnitPrice: 35000}}

	quote, err := f.svc.Create(context.Background(), f.actor, req)
	require.NoError(t, err)
	assert.Equal(t, 1, quote.Items[0].Quantity)
	assert.Equal(t, 35000.0, quote.Total)
}

func TestCreateQuoteKeepsSuppliedItemName(t *testing.T) {
	f := newFixture()
	req := validCreateRequest(f)
	req.Items = []ItemInput{{ServiceID: f.transfer.ID.String(), ServiceName: "VIP transfer", Quantity: 1, UnitPrice: 50000}}

	quote, err := f.svc.Create(context.Background(), f.actor, req)
	require.NoError(t, err)
	assert.Equal(t, "VIP transfer", quote.Items[0].ServiceName)
}

func TestCreateQuoteUnknownClient(t *testing.T) {
	f := newFixture()
	req := validCreateRequest(f)
	req.ClientID = uuid.NewString()

	_, err := f.svc.Create(context.Background(), f.actor, req)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateQuoteInactiveClient(t *testing.T) {
	f := newFixture()
	f.client.Active = false

	_, err := f.svc.Create(context.Background(), f.actor, validCreateRequest(f))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateQuoteUnknownService(t *testing.T) {
	f := newFixture()
	req := validCreateRequest(f)
	req.Items[0].ServiceID = uuid.NewString()

	_, err := f.svc.Create(context.Background(), f.actor, req)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateQuoteInactiveService(t *testing.T) {
	f := newFixture()
	f.tour.Active = false

	_, err := f.svc.Create(context.Background(), f.actor, validCreateRequest(f))
	require.ErrorIs(t, err, shared.ErrConflict)

	var conflict *shared.Conflict
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, shared.ConflictInactiveService, conflict.Code)
}

func TestUpdateQuoteReplacesItems(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	quote, err := f.svc.Create(ctx, f.actor, validCreateRequest(f))
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, f.actor, quote.ID, UpdateQuoteRequest{
		Items: []ItemInput{{ServiceID: f.tour.ID.String(), Quantity: 3, UnitPrice: 80000}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 240000.0, updated.Total)
}

func TestUpdateQuoteScalarPatch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	quote, err := f.svc.Create(ctx, f.actor, validCreateRequest(f))
	require.NoError(t, err)

	origin := "Concepcion"
	passengers := 20
	updated, err := f.svc.Update(ctx, f.actor, quote.ID, UpdateQuoteRequest{
		Origin:     &origin,
		Passengers: &passengers,
	})
	require.NoError(t, err)
	assert.Equal(t, "Concepcion", updated.Origin)
	assert.Equal(t, 20, updated.Passengers)
	assert.Equal(t, quote.Total, updated.Total)
	assert.Len(t, updated.Items, len(quote.Items))
}

func TestCreateQuoteEmptyItems(t *testing.T) {
	f := newFixture()
	req := validCreateRequest(f)
	req.Items = []ItemInput{}

	_, err := f.svc.Create(context.Background(), f.actor, req)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateQuoteReplacesClient(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	quote, err := f.svc.Create(ctx, f.actor, validCreateRequest(f))
	require.NoError(t, err)

	other := &clients.Client{ID: uuid.New(), Name: "Rutas del Sur", TaxID: "75.987.654-3", Email: "hola@rutasdelsur.cl", Active: true}
	f.dir.clients[other.ID] = other

	otherID := other.ID.String()
	updated, err := f.svc.Update(ctx, f.actor, quote.ID, UpdateQuoteRequest{ClientID: &otherID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, updated.ClientID)
}

func TestUpdateQuoteInactiveNewClient(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	quote, err := f.svc.Create(ctx, f.actor, validCreateRequest(f))
	require.NoError(t, err)

	other := &clients.Client{ID: uuid.New(), Name: "Dormant Travel", Active: false}
	f.dir.clients[other.ID] = other

	otherID := other.ID.String()
	_, err = f.svc.Update(ctx, f.actor, quote.ID, UpdateQuoteRequest{ClientID: &otherID})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// The stored quote keeps its original client.
	got, err := f.svc.Get(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, f.client.ID, got.ClientID)
}

func TestUpdateQuoteUnknownNewClient(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	quote, err := f.svc.Create(ctx, f.actor, validCreateRequest(f))
	require.NoError(t, err)

	otherID := uuid.NewString()
	_, err = f.svc.Update(ctx, f.actor, quote.ID, UpdateQuoteRequest{ClientID: &otherID})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateDisabledQuote(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	quote, err := f.svc.Create(ctx, f.actor, validCreateRequest(f))
	require.NoError(t, err)
	_, err = f.svc.Disable(ctx, f.actor, quote.ID)
	require.NoError(t, err)

	origin := "Temuco"
	_, err = f.svc.Update(ctx, f.actor, quote.ID, UpdateQuoteRequest{Origin: &origin})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.svc.UpdateStatus(ctx, f.actor, quote.ID, StatusApproved)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	quote, err := f.svc.Create(ctx, f.actor, validCreateRequest(f))
	require.NoError(t, err)

	for _, status := range []QuoteStatus{StatusApproved, StatusRejected, StatusPending, StatusApproved} {
		updated, err := f.svc.UpdateStatus(ctx, f.actor, quote.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestUpdateStatusInvalid(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	quote, err := f.svc.Create(ctx, f.actor, validCreateRequest(f))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, f.actor, quote.ID, QuoteStatus("archived"))
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestDisableQuote(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	quote, err := f.svc.Create(ctx, f.actor, validCreateRequest(f))
	require.NoError(t, err)

	disabled, err := f.svc.Disable(ctx, f.actor, quote.ID)
	require.NoError(t, err)
	assert.False(t, disabled.Active)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// GetById still works for disabled quotes.
	got, err := f.svc.Get(ctx, quote.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestAuditFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture()
	f.auditRepo.insertError = errors.New("audit store down")

	quote, err := f.svc.Create(context.Background(), f.actor, validCreateRequest(f))
	require.NoError(t, err)
	assert.NotNil(t, quote)
}
