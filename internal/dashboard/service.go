// Package dashboard computes the operational summary shown on the main
// screen. Figures are recomputed on every request, no caching.
package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Summary is the aggregate snapshot returned to the frontend.
type Summary struct {
	ActiveClients      int64   `json:"activeClients"`
	PendingQuotes      int64   `json:"pendingQuotes"`
	ApprovedQuotes     int64   `json:"approvedQuotes"`
	ActiveBookings     int64   `json:"activeBookings"`
	MonthRevenue       float64 `json:"monthRevenue"`
	UpcomingDepartures int64   `json:"upcomingDepartures"`
}

// Service runs the aggregate queries.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Summary gathers the figures concurrently. Month boundaries use the
// server's local clock; the departure window is the next seven days.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	weekEnd := now.AddDate(0, 0, 7)

	var out Summary
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.CountActiveClients(ctx)
		out.ActiveClients = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountActiveQuotesByStatus(ctx, "pending")
		out.PendingQuotes = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountActiveQuotesByStatus(ctx, "approved")
		out.ApprovedQuotes = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountActiveBookings(ctx)
		out.ActiveBookings = n
		return err
	})
	g.Go(func() error {
		sum, err := s.repo.SumApprovedQuoteTotals(ctx, monthStart, monthEnd)
		out.MonthRevenue = sum
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountPendingQuotesBetween(ctx, now, weekEnd)
		out.UpcomingDepartures = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
