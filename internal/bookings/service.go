// Package bookings turns approved quotes into operational trip records.
package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/makingtrips/makingtrips/internal/audit"
	"github.com/makingtrips/makingtrips/internal/quotes"
	"github.com/makingtrips/makingtrips/internal/shared"
)

// QuoteSource resolves quote references. Satisfied by quotes.Repository.
type QuoteSource interface {
	Get(ctx context.Context, id uuid.UUID) (*quotes.Quote, error)
}

// Service implements booking operations.
type Service struct {
	repo     Repository
	quotes   QuoteSource
	recorder *audit.Recorder
}

func NewService(repo Repository, quoteSource QuoteSource, recorder *audit.Recorder) *Service {
	return &Service{repo: repo, quotes: quoteSource, recorder: recorder}
}

// Create freezes an approved quote into a booking. The quote's route,
// passenger count and items are snapshotted; the total is recomputed
// from the normalized snapshot rather than trusting the stored value.
func (s *Service) Create(ctx context.Context, actor shared.Actor, req CreateBookingRequest) (*Booking, error) {
	quoteID, err := uuid.Parse(req.QuoteID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid quote id", shared.ErrValidation)
	}
	quote, err := s.quotes.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if !quote.Active {
		return nil, shared.ErrNotFound
	}
	if quote.Status != quotes.StatusApproved {
		return nil, shared.NewConflict(shared.ConflictQuoteNotApproved,
			fmt.Sprintf("quote is %s, only approved quotes can be booked", quote.Status))
	}
	items, total := snapshotItems(quote.Items)
	now := time.Now().UTC()
	booking := Booking{
		ID:          uuid.New(),
		QuoteID:     quote.ID,
		ClientID:    quote.ClientID,
		Origin:      quote.Origin,
		Destination: quote.Destination,
		ServiceDate: quote.ServiceDate,
		Passengers:  quote.Passengers,
		Items:       items,
		Total:       total,
		Status:      StatusConfirmed,
		Notes:       req.Notes,
		CreatedBy:   actor.UserID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actor.UserID, "create", "bookings",
		fmt.Sprintf("booking %s created from quote %s", booking.ID, quote.ID),
		map[string]any{"bookingId": booking.ID, "quoteId": quote.ID, "total": total},
	)
	return s.repo.Get(ctx, booking.ID)
}

func (s *Service) List(ctx context.Context) ([]Booking, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.repo.Get(ctx, id)
}

// Update mutates status and notes only. Snapshotted route data is
// immutable once the booking exists.
func (s *Service) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdateBookingRequest) (*Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.Active {
		return nil, shared.ErrNotFound
	}
	if req.Status != nil {
		status := BookingStatus(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: invalid status", shared.ErrValidation)
		}
		booking.Status = status
	}
	if req.Notes != nil {
		booking.Notes = *req.Notes
	}
	if err := s.repo.Update(ctx, *booking); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actor.UserID, "update", "bookings",
		fmt.Sprintf("booking %s updated", booking.ID),
		map[string]any{"bookingId": booking.ID, "status": booking.Status},
	)
	return s.repo.Get(ctx, id)
}

// Disable soft-deletes a booking.
func (s *Service) Disable(ctx context.Context, actor shared.Actor, id uuid.UUID) (*Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	booking.Active = false
	if err := s.repo.Update(ctx, *booking); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actor.UserID, "disable", "bookings",
		fmt.Sprintf("booking %s disabled", booking.ID),
		map[string]any{"bookingId": booking.ID},
	)
	return booking, nil
}

// snapshotItems copies quote lines into the booking, clamping quantity
// and price back into range and recomputing subtotals and the total.
func snapshotItems(src []quotes.QuoteItem) ([]quotes.QuoteItem, float64) {
	items := make([]quotes.QuoteItem, 0, len(src))
	var total float64
	for _, it := range src {
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		if it.UnitPrice < 0 {
			it.UnitPrice = 0
		}
		it.Subtotal = float64(it.Quantity) * it.UnitPrice
		total += it.Subtotal
		items = append(items, it)
	}
	return items, total
}
