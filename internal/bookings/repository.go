package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/makingtrips/makingtrips/internal/platform/db"
	"github.com/makingtrips/makingtrips/internal/quotes"
	"github.com/makingtrips/makingtrips/internal/shared"
)

// Repository defines persistence operations for bookings.
type Repository interface {
	Create(ctx context.Context, booking Booking) error
	Get(ctx context.Context, id uuid.UUID) (*Booking, error)
	List(ctx context.Context) ([]Booking, error)
	Update(ctx context.Context, booking Booking) error
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const bookingColumns = `b.id, b.quote_id, b.client_id, b.origin, b.destination, b.service_date,
	b.passengers, b.items, b.total, b.status, b.notes, b.created_by, b.active, b.created_at, b.updated_at,
	q.id, q.status, q.total,
	c.id, c.name, c.tax_id, c.email`

const bookingJoin = `FROM bookings b
	JOIN quotes q ON q.id = b.quote_id
	JOIN clients c ON c.id = b.client_id`

// Create checks for an existing active booking on the quote and inserts
// inside a single transaction. The partial unique index on quote_id
// closes the race between concurrent transactions.
func (r *pgRepository) Create(ctx context.Context, b Booking) error {
	items, err := json.Marshal(b.Items)
	if err != nil {
		return err
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM bookings WHERE quote_id = $1 AND active)`, b.QuoteID,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return shared.NewConflict(shared.ConflictBookingExists, "an active booking already exists for this quote")
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO bookings (id, quote_id, client_id, origin, destination, service_date, passengers, items, total, status, notes, created_by, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			b.ID, b.QuoteID, b.ClientID, b.Origin, b.Destination, b.ServiceDate, b.Passengers, items, b.Total, b.Status, b.Notes, b.CreatedBy, b.Active, b.CreatedAt, b.UpdatedAt,
		)
		if db.IsUniqueViolation(err, "bookings_active_quote_idx") {
			return shared.NewConflict(shared.ConflictBookingExists, "an active booking already exists for this quote")
		}
		return err
	})
}

func (r *pgRepository) Get(ctx context.Context, id uuid.UUID) (*Booking, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` `+bookingJoin+` WHERE b.id = $1`, id)
	return scanBooking(row)
}

func (r *pgRepository) List(ctx context.Context) ([]Booking, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+bookingColumns+` `+bookingJoin+` WHERE b.active ORDER BY b.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	return result, rows.Err()
}

func (r *pgRepository) Update(ctx context.Context, b Booking) error {
	b.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `
		UPDATE bookings
		SET status = $2, notes = $3, active = $4, updated_at = $5
		WHERE id = $1`,
		b.ID, b.Status, b.Notes, b.Active, b.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var (
		b     Booking
		items []byte
		qs    QuoteSummary
		cs    quotes.ClientSummary
	)
	err := row.Scan(
		&b.ID, &b.QuoteID, &b.ClientID, &b.Origin, &b.Destination, &b.ServiceDate,
		&b.Passengers, &items, &b.Total, &b.Status, &b.Notes, &b.CreatedBy, &b.Active, &b.CreatedAt, &b.UpdatedAt,
		&qs.ID, &qs.Status, &qs.Total,
		&cs.ID, &cs.Name, &cs.TaxID, &cs.Email,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &b.Items); err != nil {
		return nil, err
	}
	b.Quote = &qs
	b.Client = &cs
	return &b, nil
}
