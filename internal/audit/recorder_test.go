package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	entries     []Entry
	insertError error
}

func (m *mockRepo) Insert(ctx context.Context, e Entry) error {
	if m.insertError != nil {
		return m.insertError
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockRepo) List(ctx context.Context, limit int) ([]Entry, error) {
	return m.entries, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecord(t *testing.T) {
	repo := &mockRepo{}
	rec := NewRecorder(repo, discardLogger())
	userID := uuid.New()

	rec.Record(context.Background(), userID, "create", "quotes", "quote created", map[string]any{"total": 5000})

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, userID, entry.UserID)
	assert.Equal(t, "create", entry.Action)
	assert.Equal(t, "quotes", entry.Module)
	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestRecordSkipsMissingActor(t *testing.T) {
	repo := &mockRepo{}
	rec := NewRecorder(repo, discardLogger())

	rec.Record(context.Background(), uuid.Nil, "create", "quotes", "no actor", nil)
	assert.Empty(t, repo.entries)
}

func TestRecordSwallowsFailure(t *testing.T) {
	repo := &mockRepo{insertError: errors.New("audit store down")}
	rec := NewRecorder(repo, discardLogger())

	// Must not panic or surface the error.
	rec.Record(context.Background(), uuid.New(), "create", "quotes", "boom", nil)
	assert.Empty(t, repo.entries)
}

func TestRecordNilRecorder(t *testing.T) {
	var rec *Recorder
	rec.Record(context.Background(), uuid.New(), "create", "quotes", "noop", nil)
}
