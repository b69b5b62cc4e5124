package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a missing resource, or one that is soft-deleted
	// where an active record is required.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates a role violation.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is the base for uniqueness and state-machine violations.
	ErrConflict = errors.New("conflict")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTooManyRequests indicates the rate limiter rejected the attempt.
	ErrTooManyRequests = errors.New("too many requests")
)

// Conflict codes surfaced to API clients.
const (
	ConflictDuplicate         = "duplicate"
	ConflictInactiveDuplicate = "inactive-duplicate"
	ConflictInactiveService   = "inactive-service"
	ConflictQuoteNotApproved  = "quote-not-approved"
	ConflictBookingExists     = "booking-exists"
)

// Conflict is a 409 domain error carrying a machine-readable code and
// optional metadata (for example the id of a reactivatable client).
type Conflict struct {
	Code    string
	Message string
	Meta    map[string]any
}

func (c *Conflict) Error() string {
	if c.Message != "" {
		return c.Message
	}
	return fmt.Sprintf("conflict: %s", c.Code)
}

// Is makes errors.Is(err, ErrConflict) hold for any Conflict value.
func (c *Conflict) Is(target error) bool {
	return target == ErrConflict
}

// NewConflict builds a Conflict error.
func NewConflict(code, message string) *Conflict {
	return &Conflict{Code: code, Message: message}
}
