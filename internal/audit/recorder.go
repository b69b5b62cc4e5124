package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Recorder writes audit entries as a side effect of business operations.
// Failures are logged and swallowed so an unavailable audit store never
// fails the operation being recorded.
type Recorder struct {
	repo   Repository
	logger *slog.Logger
}

func NewRecorder(repo Repository, logger *slog.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Record persists an entry for the given actor. Entries without an actor
// are skipped.
func (r *Recorder) Record(ctx context.Context, userID uuid.UUID, action, module, detail string, metadata map[string]any) {
	if r == nil || userID == uuid.Nil {
		return
	}
	entry := Entry{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		Module:    module,
		Detail:    detail,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.repo.Insert(ctx, entry); err != nil {
		r.logger.Warn("audit entry not recorded",
			slog.String("action", action),
			slog.String("module", module),
			slog.String("error", err.Error()),
		)
	}
}
