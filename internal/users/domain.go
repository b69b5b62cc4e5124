package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/makingtrips/makingtrips/internal/shared"
)

// User represents an account that can sign in. Accounts are never
// hard-deleted, only disabled. The password hash and reset-token state never
// leave the server.
type User struct {
	ID             uuid.UUID   `json:"id"`
	Email          string      `json:"email"`
	PasswordHash   string      `json:"-"`
	Role           shared.Role `json:"role"`
	Active         bool        `json:"active"`
	ResetTokenHash *string     `json:"-"`
	ResetExpiresAt *time.Time  `json:"-"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}
