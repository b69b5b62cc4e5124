package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/makingtrips/makingtrips/internal/audit"
	"github.com/makingtrips/makingtrips/internal/auth"
	"github.com/makingtrips/makingtrips/internal/bookings"
	"github.com/makingtrips/makingtrips/internal/catalog"
	"github.com/makingtrips/makingtrips/internal/clients"
	"github.com/makingtrips/makingtrips/internal/dashboard"
	"github.com/makingtrips/makingtrips/internal/quotes"
	"github.com/makingtrips/makingtrips/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AuthMiddleware   auth.Middleware
	AuthHandler      *auth.Handler
	UsersHandler     *users.Handler
	ClientsHandler   *clients.Handler
	CatalogHandler   *catalog.Handler
	QuotesHandler    *quotes.Handler
	BookingsHandler  *bookings.Handler
	AuditHandler     *audit.Handler
	DashboardHandler *dashboard.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)

		r.Group(func(r chi.Router) {
			r.Use(params.AuthMiddleware.RequireAuth)

			r.Route("/users", params.UsersHandler.MountRoutes)
			r.Route("/clients", params.ClientsHandler.MountRoutes)
			r.Route("/services", params.CatalogHandler.MountRoutes)
			r.Route("/quotes", params.QuotesHandler.MountRoutes)
			r.Route("/bookings", params.BookingsHandler.MountRoutes)
			r.Route("/audit", params.AuditHandler.MountRoutes)
			r.Route("/dashboard", params.DashboardHandler.MountRoutes)
		})
	})

	return r
}
