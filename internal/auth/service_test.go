package auth

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/makingtrips/makingtrips/internal/shared"
)

type mockRepository struct {
	users map[uuid.UUID]*User
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[uuid.UUID]*User)}
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if strings.ToLower(u.Email) == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockRepository) SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	u, ok := m.users[userID]
	if !ok {
		return shared.ErrNotFound
	}
	u.ResetTokenHash = &tokenHash
	u.ResetExpiresAt = &expiresAt
	return nil
}

func (m *mockRepository) CompleteReset(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	u, ok := m.users[userID]
	if !ok {
		return shared.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetTokenHash = nil
	u.ResetExpiresAt = nil
	return nil
}

type mockMailer struct {
	sent []string
}

func (m *mockMailer) EnqueueSendEmail(ctx context.Context, to, subject, htmlBody string) error {
	m.sent = append(m.sent, to)
	return nil
}

func newTestService(repo *mockRepository, mailer Mailer) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := NewTokenManager("test-secret", time.Hour)
	return NewService(repo, tokens, mailer, logger, ServiceConfig{
		MailEnabled:   mailer != nil,
		FrontendURL:   "http://localhost:5173",
		ResetTokenTTL: time.Hour,
	})
}

func seedUser(repo *mockRepository, email, password string, active bool) *User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	u := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         shared.RoleOperator,
		Active:       active,
	}
	repo.users[u.ID] = u
	return u
}

func TestLogin(t *testing.T) {
	repo := newMockRepository()
	user := seedUser(repo, "ana@makingtrips.cl", "secret123", true)
	svc := newTestService(repo, nil)

	result, err := svc.Login(context.Background(), "ana@makingtrips.cl", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID.String(), result.UserID)
	assert.Equal(t, shared.RoleOperator, result.Role)
	assert.True(t, result.ExpiresAt.After(time.Now()))
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMockRepository()
	seedUser(repo, "ana@makingtrips.cl", "secret123", true)
	svc := newTestService(repo, nil)

	_, err := svc.Login(context.Background(), "ana@makingtrips.cl", "wrong")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(newMockRepository(), nil)

	_, err := svc.Login(context.Background(), "nobody@makingtrips.cl", "secret123")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := newMockRepository()
	seedUser(repo, "ana@makingtrips.cl", "secret123", false)
	svc := newTestService(repo, nil)

	// Same failure as unknown email: callers cannot probe account state.
	_, err := svc.Login(context.Background(), "ana@makingtrips.cl", "secret123")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestForgotPasswordUnknownEmailSilent(t *testing.T) {
	mailer := &mockMailer{}
	svc := newTestService(newMockRepository(), mailer)

	err := svc.ForgotPassword(context.Background(), "nobody@makingtrips.cl")
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestForgotPasswordStoresHashedToken(t *testing.T) {
	repo := newMockRepository()
	user := seedUser(repo, "ana@makingtrips.cl", "secret123", true)
	mailer := &mockMailer{}
	svc := newTestService(repo, mailer)

	err := svc.ForgotPassword(context.Background(), "ana@makingtrips.cl")
	require.NoError(t, err)

	stored := repo.users[user.ID]
	require.NotNil(t, stored.ResetTokenHash)
	require.NotNil(t, stored.ResetExpiresAt)
	// 64 hex chars, not the 64-char raw token itself: the repo only ever
	// sees the SHA-256 digest.
	assert.Len(t, *stored.ResetTokenHash, 64)
	assert.True(t, stored.ResetExpiresAt.After(time.Now()))
	assert.Equal(t, []string{"ana@makingtrips.cl"}, mailer.sent)
}

func TestResetPasswordFlow(t *testing.T) {
	repo := newMockRepository()
	user := seedUser(repo, "ana@makingtrips.cl", "secret123", true)
	svc := newTestService(repo, nil)
	ctx := context.Background()

	// Install a known token directly, as ForgotPassword never exposes the
	// raw value.
	rawToken := "10f5d1347788fa2f22ccd8b2bbf0c8ba2cf8c0c86da92e5e493412ab33905b10"
	hash := hashToken(rawToken)
	expires := time.Now().Add(30 * time.Minute)
	user.ResetTokenHash = &hash
	user.ResetExpiresAt = &expires

	err := svc.ResetPassword(ctx, "ana@makingtrips.cl", rawToken, "newpass99")
	require.NoError(t, err)

	stored := repo.users[user.ID]
	assert.Nil(t, stored.ResetTokenHash)
	assert.Nil(t, stored.ResetExpiresAt)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass99")))

	// Single use: replaying the token fails.
	err = svc.ResetPassword(ctx, "ana@makingtrips.cl", rawToken, "another99")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestResetPasswordWrongToken(t *testing.T) {
	repo := newMockRepository()
	user := seedUser(repo, "ana@makingtrips.cl", "secret123", true)
	svc := newTestService(repo, nil)

	hash := hashToken("the-real-token")
	expires := time.Now().Add(30 * time.Minute)
	user.ResetTokenHash = &hash
	user.ResetExpiresAt = &expires

	err := svc.ResetPassword(context.Background(), "ana@makingtrips.cl", "a-guess", "newpass99")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	repo := newMockRepository()
	user := seedUser(repo, "ana@makingtrips.cl", "secret123", true)
	svc := newTestService(repo, nil)

	rawToken := "expired-token"
	hash := hashToken(rawToken)
	expires := time.Now().Add(-time.Minute)
	user.ResetTokenHash = &hash
	user.ResetExpiresAt = &expires

	err := svc.ResetPassword(context.Background(), "ana@makingtrips.cl", rawToken, "newpass99")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestResetPasswordTooShort(t *testing.T) {
	repo := newMockRepository()
	user := seedUser(repo, "ana@makingtrips.cl", "secret123", true)
	svc := newTestService(repo, nil)

	rawToken := "valid-token"
	hash := hashToken(rawToken)
	expires := time.Now().Add(30 * time.Minute)
	user.ResetTokenHash = &hash
	user.ResetExpiresAt = &expires

	err := svc.ResetPassword(context.Background(), "ana@makingtrips.cl", rawToken, "short")
	assert.ErrorIs(t, err, shared.ErrValidation)
	// Token survives a failed attempt with a too-short password.
	assert.NotNil(t, repo.users[user.ID].ResetTokenHash)
}
