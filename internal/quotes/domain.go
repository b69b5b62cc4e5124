package quotes

import (
	"time"

	"github.com/google/uuid"
)

// QuoteStatus is the workflow state of a quote.
type QuoteStatus string

const (
	StatusPending  QuoteStatus = "pending"
	StatusApproved QuoteStatus = "approved"
	StatusRejected QuoteStatus = "rejected"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// QuoteItem is a priced line inside a quote. ServiceName is snapshotted
// at creation time so later catalog edits do not rewrite history.
type QuoteItem struct {
	ServiceID   uuid.UUID `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	Subtotal    float64   `json:"subtotal"`
}

// ClientSummary is the slim client view embedded in quote listings.
type ClientSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	TaxID string    `json:"taxId"`
	Email string    `json:"email"`
}

type Quote struct {
	ID          uuid.UUID      `json:"id"`
	ClientID    uuid.UUID      `json:"clientId"`
	Client      *ClientSummary `json:"client,omitempty"`
	Origin      string         `json:"origin"`
	Destination string         `json:"destination"`
	ServiceDate time.Time      `json:"serviceDate"`
	Passengers  int            `json:"passengers"`
	Items       []QuoteItem    `json:"items"`
	Total       float64        `json:"total"`
	Status      QuoteStatus    `json:"status"`
	Notes       string         `json:"notes"`
	CreatedBy   uuid.UUID      `json:"createdBy"`
	Active      bool           `json:"active"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
