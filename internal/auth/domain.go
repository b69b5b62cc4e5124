package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/makingtrips/makingtrips/internal/shared"
)

// User is the credential view of an account used by authentication flows.
type User struct {
	ID             uuid.UUID
	Email          string
	PasswordHash   string
	Role           shared.Role
	Active         bool
	ResetTokenHash *string
	ResetExpiresAt *time.Time
}
