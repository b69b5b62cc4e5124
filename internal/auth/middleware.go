package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/makingtrips/makingtrips/internal/platform/httpx"
	"github.com/makingtrips/makingtrips/internal/shared"
)

// Middleware wires bearer-token authentication and role checks for HTTP
// handlers.
type Middleware struct {
	Tokens *TokenManager
	Logger *slog.Logger
}

// RequireAuth rejects requests without a valid bearer token and stores the
// actor in the request context.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid authorization header format")
			return
		}

		actor, err := m.Tokens.Parse(parts[1])
		if err != nil {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid or expired token")
			return
		}

		ctx := shared.ContextWithActor(r.Context(), actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole ensures the current actor has one of the allowed roles.
func (m Middleware) RequireRole(roles ...shared.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := shared.ActorFromContext(r.Context())
			if !ok {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "not authenticated")
				return
			}
			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			if m.Logger != nil {
				m.Logger.Warn("role denied",
					slog.String("path", r.URL.Path),
					slog.String("role", string(actor.Role)))
			}
			httpx.Problem(w, http.StatusForbidden, "Forbidden", "insufficient permissions")
		})
	}
}
