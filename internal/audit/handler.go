package audit

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/makingtrips/makingtrips/internal/platform/httpx"
)

// Handler exposes the audit log. All routes are admin-only.
type Handler struct {
	logger       *slog.Logger
	service      *Service
	requireAdmin func(http.Handler) http.Handler
}

func NewHandler(logger *slog.Logger, service *Service, requireAdmin func(http.Handler) http.Handler) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		requireAdmin: requireAdmin,
	}
}

// MountRoutes registers audit routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.requireAdmin)
	r.Get("/", h.list)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list audit entries", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if result == nil {
		result = []Entry{}
	}
	httpx.JSON(w, http.StatusOK, result)
}
