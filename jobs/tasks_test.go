package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	sent    []SendEmailPayload
	sendErr error
}

func (m *mockSender) Send(to, subject, htmlBody string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, SendEmailPayload{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func TestSendEmailHandler(t *testing.T) {
	sender := &mockSender{}
	handler := NewSendEmailHandler(sender, slog.New(slog.NewTextHandler(io.Discard, nil)))

	task, err := NewSendEmailTask(SendEmailPayload{
		To:      "ana@makingtrips.cl",
		Subject: "Password recovery - Making Trips",
		Body:    "<p>reset link</p>",
	})
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ana@makingtrips.cl", sender.sent[0].To)
}

func TestSendEmailHandlerBadPayload(t *testing.T) {
	handler := NewSendEmailHandler(&mockSender{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	task := asynq.NewTask(TaskTypeSendEmail, []byte("{not json"))
	err := handler(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestSendEmailHandlerRetriesOnFailure(t *testing.T) {
	sender := &mockSender{sendErr: errors.New("relay down")}
	handler := NewSendEmailHandler(sender, slog.New(slog.NewTextHandler(io.Discard, nil)))

	task, err := NewSendEmailTask(SendEmailPayload{To: "ana@makingtrips.cl"})
	require.NoError(t, err)

	err = handler(context.Background(), task)
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
