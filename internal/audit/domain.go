package audit

import (
	"time"

	"github.com/google/uuid"
)

// UserSummary identifies the actor of an entry in listings.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// Entry is a single audit log record.
type Entry struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"userId"`
	User      *UserSummary   `json:"user,omitempty"`
	Action    string         `json:"action"`
	Module    string         `json:"module"`
	Detail    string         `json:"detail"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}
