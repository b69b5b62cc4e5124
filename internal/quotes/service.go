// Package quotes implements the quote engine: priced line items against
// the service catalog, with a pending/approved/rejected workflow.
package quotes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/makingtrips/makingtrips/internal/audit"
	"github.com/makingtrips/makingtrips/internal/catalog"
	"github.com/makingtrips/makingtrips/internal/clients"
	"github.com/makingtrips/makingtrips/internal/shared"
)

// ClientDirectory resolves client references. Satisfied by clients.Repository.
type ClientDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*clients.Client, error)
}

// ServiceCatalog resolves catalog references. Satisfied by catalog.Repository.
type ServiceCatalog interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.Service, error)
}

// Service implements quote operations.
type Service struct {
	repo     Repository
	clients  ClientDirectory
	catalog  ServiceCatalog
	recorder *audit.Recorder
}

func NewService(repo Repository, clientDir ClientDirectory, cat ServiceCatalog, recorder *audit.Recorder) *Service {
	return &Service{repo: repo, clients: clientDir, catalog: cat, recorder: recorder}
}

// Create builds a quote for an active client. Item lines are hydrated
// against the catalog: every service must exist and be active, and the
// catalog name is snapshotted into the line when the caller omits one.
func (s *Service) Create(ctx context.Context, actor shared.Actor, req CreateQuoteRequest) (*Quote, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid client id", shared.ErrValidation)
	}
	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !client.Active {
		return nil, shared.ErrNotFound
	}

	items, total, err := s.hydrateItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	quote := Quote{
		ID:          uuid.New(),
		ClientID:    clientID,
		Origin:      req.Origin,
		Destination: req.Destination,
		ServiceDate: req.ServiceDate,
		Passengers:  req.Passengers,
		Items:       items,
		Total:       total,
		Status:      StatusPending,
		Notes:       req.Notes,
		CreatedBy:   actor.UserID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, quote); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actor.UserID, "create", "quotes",
		fmt.Sprintf("quote %s created for client %s", quote.ID, client.Name),
		map[string]any{"quoteId": quote.ID, "total": quote.Total},
	)
	return s.repo.Get(ctx, quote.ID)
}

func (s *Service) List(ctx context.Context) ([]Quote, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Quote, error) {
	return s.repo.Get(ctx, id)
}

// Update patches quote fields on an active quote. A supplied clientId
// must resolve to an active client. A supplied item list replaces the
// stored one entirely and totals are recomputed; partial item edits are
// not supported.
func (s *Service) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdateQuoteRequest) (*Quote, error) {
	quote, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quote.Active {
		return nil, shared.ErrNotFound
	}
	if req.ClientID != nil {
		clientID, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid client id", shared.ErrValidation)
		}
		client, err := s.clients.Get(ctx, clientID)
		if err != nil {
			return nil, err
		}
		if !client.Active {
			return nil, shared.ErrNotFound
		}
		quote.ClientID = clientID
	}
	if req.Origin != nil {
		quote.Origin = *req.Origin
	}
	if req.Destination != nil {
		quote.Destination = *req.Destination
	}
	if req.ServiceDate != nil {
		quote.ServiceDate = *req.ServiceDate
	}
	if req.Passengers != nil {
		quote.Passengers = *req.Passengers
	}
	if req.Notes != nil {
		quote.Notes = *req.Notes
	}
	if req.Items != nil {
		items, total, err := s.hydrateItems(ctx, req.Items)
		if err != nil {
			return nil, err
		}
		quote.Items = items
		quote.Total = total
	}
	if err := s.repo.Update(ctx, *quote); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actor.UserID, "update", "quotes",
		fmt.Sprintf("quote %s updated", quote.ID),
		map[string]any{"quoteId": quote.ID},
	)
	return s.repo.Get(ctx, id)
}

// UpdateStatus moves a quote to any workflow state. Transitions are
// unrestricted: an approved quote can go back to pending or rejected.
func (s *Service) UpdateStatus(ctx context.Context, actor shared.Actor, id uuid.UUID, status QuoteStatus) (*Quote, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status", shared.ErrValidation)
	}
	quote, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quote.Active {
		return nil, shared.ErrNotFound
	}
	previous := quote.Status
	quote.Status = status
	if err := s.repo.Update(ctx, *quote); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actor.UserID, "status-change", "quotes",
		fmt.Sprintf("quote %s moved from %s to %s", quote.ID, previous, status),
		map[string]any{"quoteId": quote.ID, "from": previous, "to": status},
	)
	return s.repo.Get(ctx, id)
}

// Disable soft-deletes a quote.
func (s *Service) Disable(ctx context.Context, actor shared.Actor, id uuid.UUID) (*Quote, error) {
	quote, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	quote.Active = false
	if err := s.repo.Update(ctx, *quote); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actor.UserID, "disable", "quotes",
		fmt.Sprintf("quote %s disabled", quote.ID),
		map[string]any{"quoteId": quote.ID},
	)
	return quote, nil
}

// hydrateItems resolves each input line against the catalog and computes
// subtotals server-side, ignoring any caller-supplied totals.
func (s *Service) hydrateItems(ctx context.Context, inputs []ItemInput) ([]QuoteItem, float64, error) {
	if len(inputs) == 0 {
		return nil, 0, fmt.Errorf("%w: at least one item is required", shared.ErrValidation)
	}
	items := make([]QuoteItem, 0, len(inputs))
	var total float64
	for _, in := range inputs {
		serviceID, err := uuid.Parse(in.ServiceID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid service id", shared.ErrValidation)
		}
		svc, err := s.catalog.Get(ctx, serviceID)
		if err != nil {
			return nil, 0, err
		}
		if !svc.Active {
			return nil, 0, shared.NewConflict(shared.ConflictInactiveService,
				fmt.Sprintf("service %q is disabled and cannot be quoted", svc.Name))
		}
		item := normalizeItem(serviceID, in, svc.Name)
		total += item.Subtotal
		items = append(items, item)
	}
	return items, total, nil
}

func normalizeItem(serviceID uuid.UUID, in ItemInput, catalogName string) QuoteItem {
	name := in.ServiceName
	if name == "" {
		name = catalogName
	}
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	price := in.UnitPrice
	if price < 0 {
		price = 0
	}
	subtotal := float64(qty) * price
	if subtotal < 0 {
		subtotal = 0
	}
	return QuoteItem{
		ServiceID:   serviceID,
		ServiceName: name,
		Quantity:    qty,
		UnitPrice:   price,
		Subtotal:    subtotal,
	}
}
