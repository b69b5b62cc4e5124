package clients

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a customer of the agency. Clients are never hard-deleted:
// Active=false marks a logically removed record kept for history and
// reactivation.
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"taxId"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
