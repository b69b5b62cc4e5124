package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	clients    int64
	byStatus   map[string]int64
	bookings   int64
	monthSum   float64
	upcoming   int64
	sumFrom    time.Time
	sumTo      time.Time
	windowFrom time.Time
	windowTo   time.Time
	failWith   error
}

func (m *mockRepository) CountActiveClients(ctx context.Context) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	return m.clients, nil
}

func (m *mockRepository) CountActiveQuotesByStatus(ctx context.Context, status string) (int64, error) {
	return m.byStatus[status], nil
}

func (m *mockRepository) CountActiveBookings(ctx context.Context) (int64, error) {
	return m.bookings, nil
}

func (m *mockRepository) SumApprovedQuoteTotals(ctx context.Context, from, to time.Time) (float64, error) {
	m.sumFrom, m.sumTo = from, to
	return m.monthSum, nil
}

func (m *mockRepository) CountPendingQuotesBetween(ctx context.Context, from, to time.Time) (int64, error) {
	m.windowFrom, m.windowTo = from, to
	return m.upcoming, nil
}

func TestSummary(t *testing.T) {
	repo := &mockRepository{
		clients:  14,
		byStatus: map[string]int64{"pending": 5, "approved": 3},
		bookings: 7,
		monthSum: 1250000,
		upcoming: 2,
	}
	svc := NewService(repo)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(14), summary.ActiveClients)
	assert.Equal(t, int64(5), summary.PendingQuotes)
	assert.Equal(t, int64(3), summary.ApprovedQuotes)
	assert.Equal(t, int64(7), summary.ActiveBookings)
	assert.Equal(t, 1250000.0, summary.MonthRevenue)
	assert.Equal(t, int64(2), summary.UpcomingDepartures)
}

func TestSummaryMonthBoundaries(t *testing.T) {
	repo := &mockRepository{byStatus: map[string]int64{}}
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, time.February, 17, 15, 4, 5, 0, time.Local)
	}

	_, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local), repo.sumFrom)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local), repo.sumTo)

	assert.Equal(t, time.Date(2026, time.February, 17, 15, 4, 5, 0, time.Local), repo.windowFrom)
	assert.Equal(t, time.Date(2026, time.February, 24, 15, 4, 5, 0, time.Local), repo.windowTo)
}

func TestSummaryPropagatesError(t *testing.T) {
	repo := &mockRepository{byStatus: map[string]int64{}, failWith: errors.New("db down")}
	svc := NewService(repo)

	_, err := svc.Summary(context.Background())
	assert.Error(t, err)
}
