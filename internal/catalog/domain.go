// Package catalog manages the billable service offerings of the agency.
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Service is a catalog entry with a reference base price. Quotes may override
// the final unit price per line. Name uniqueness is enforced among active
// entries only: disabling a row frees its name for reuse.
type Service struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	BasePrice   float64   `json:"basePrice"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
