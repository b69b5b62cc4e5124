package quotes

import "time"

type ItemInput struct {
	ServiceID   string  `json:"serviceId" validate:"required,uuid"`
	ServiceName string  `json:"serviceName"`
	Quantity    int     `json:"quantity" validate:"omitempty,gte=1"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

type CreateQuoteRequest struct {
	ClientID    string      `json:"clientId" validate:"required,uuid"`
	Origin      string      `json:"origin" validate:"required"`
	Destination string      `json:"destination" validate:"required"`
	ServiceDate time.Time   `json:"serviceDate" validate:"required"`
	Passengers  int         `json:"passengers" validate:"gte=1"`
	Items       []ItemInput `json:"items" validate:"required,min=1,dive"`
	Notes       string      `json:"notes"`
}

// UpdateQuoteRequest patches scalar fields; a non-nil Items slice
// replaces the whole item list and recomputes totals. A non-nil
// ClientID reassigns the quote to another active client.
type UpdateQuoteRequest struct {
	ClientID    *string     `json:"clientId" validate:"omitempty,uuid"`
	Origin      *string     `json:"origin" validate:"omitempty,min=1"`
	Destination *string     `json:"destination" validate:"omitempty,min=1"`
	ServiceDate *time.Time  `json:"serviceDate"`
	Passengers  *int        `json:"passengers" validate:"omitempty,gte=1"`
	Items       []ItemInput `json:"items" validate:"omitempty,min=1,dive"`
	Notes       *string     `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}
