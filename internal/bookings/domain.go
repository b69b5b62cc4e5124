package bookings

import (
	"time"

	"github.com/google/uuid"

	"github.com/makingtrips/makingtrips/internal/quotes"
)

// BookingStatus is the lifecycle state of a confirmed trip.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusFinished  BookingStatus = "finished"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusFinished:
		return true
	}
	return false
}

// QuoteSummary is the slim view of the originating quote embedded in
// booking listings.
type QuoteSummary struct {
	ID     uuid.UUID          `json:"id"`
	Status quotes.QuoteStatus `json:"status"`
	Total  float64            `json:"total"`
}

// Booking freezes an approved quote into an operational record. Route
// and item data are snapshotted at creation and never change afterwards;
// only status and notes are mutable.
type Booking struct {
	ID          uuid.UUID             `json:"id"`
	QuoteID     uuid.UUID             `json:"quoteId"`
	Quote       *QuoteSummary         `json:"quote,omitempty"`
	ClientID    uuid.UUID             `json:"clientId"`
	Client      *quotes.ClientSummary `json:"client,omitempty"`
	Origin      string                `json:"origin"`
	Destination string                `json:"destination"`
	ServiceDate time.Time             `json:"serviceDate"`
	Passengers  int                   `json:"passengers"`
	Items       []quotes.QuoteItem    `json:"items"`
	Total       float64               `json:"total"`
	Status      BookingStatus         `json:"status"`
	Notes       string                `json:"notes"`
	CreatedBy   uuid.UUID             `json:"createdBy"`
	Active      bool                  `json:"active"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}
