package shared

import (
	"context"

	"github.com/google/uuid"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

// Valid reports whether the role belongs to the closed enum.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOperator
}

// Actor describes the authenticated user attached to a request.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

type actorContextKey struct{}

// ContextWithActor stores the actor in context.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the actor from context.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok
}
