package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/makingtrips/makingtrips/internal/shared"
)

const bcryptCost = 10

// Mailer delivers transactional mail, typically by enqueueing a background
// task.
type Mailer interface {
	EnqueueSendEmail(ctx context.Context, to, subject, htmlBody string) error
}

// ServiceConfig carries the auth-specific configuration knobs.
type ServiceConfig struct {
	MailEnabled   bool
	FrontendURL   string
	ResetTokenTTL time.Duration
}

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	tokens *TokenManager
	mailer Mailer
	logger *slog.Logger
	cfg    ServiceConfig
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenManager, mailer Mailer, logger *slog.Logger, cfg ServiceConfig) *Service {
	if cfg.ResetTokenTTL <= 0 {
		cfg.ResetTokenTTL = time.Hour
	}
	return &Service{repo: repo, tokens: tokens, mailer: mailer, logger: logger, cfg: cfg}
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	UserID    string
	Email     string
	Role      shared.Role
}

// Login validates email/password credentials and issues a bearer token.
// Unknown and inactive accounts fail identically.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("auth: issue token: %w", err)
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID.String(),
		Email:     user.Email,
		Role:      user.Role,
	}, nil
}

// GenericResetMessage is returned by ForgotPassword regardless of whether the
// email exists, to avoid account enumeration.
const GenericResetMessage = "If the email exists, we will send instructions."

// ForgotPassword issues a single-use reset token for an existing active
// account. The raw token is never stored; only its SHA-256 hash is.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil || !user.Active {
		return nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("auth: generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)
	tokenHash := hashToken(token)
	expiresAt := time.Now().UTC().Add(s.cfg.ResetTokenTTL)

	if err := s.repo.SetResetToken(ctx, user.ID, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("auth: store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		strings.TrimRight(s.cfg.FrontendURL, "/"), token, url.QueryEscape(user.Email))

	if !s.cfg.MailEnabled {
		s.logger.Info("password reset requested (mail disabled)",
			slog.String("email", user.Email),
			slog.String("link", link))
		return nil
	}

	body := fmt.Sprintf(`<p>Hello,</p>
<p>We received a request to reset your password.</p>
<p>Click the following link (valid for %d minutes):</p>
<p><a href="%s">%s</a></p>
<p>If you did not request this, you can ignore this email.</p>`,
		int(s.cfg.ResetTokenTTL.Minutes()), link, link)

	if err := s.mailer.EnqueueSendEmail(ctx, user.Email, "Password recovery - Making Trips", body); err != nil {
		return fmt.Errorf("auth: enqueue reset mail: %w", err)
	}
	return nil
}

// ResetPassword completes a reset. It requires a matching unexpired token and
// clears the token state so it cannot be reused.
func (s *Service) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	invalid := fmt.Errorf("%w: invalid or expired token", shared.ErrValidation)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil || !user.Active {
		return invalid
	}
	if user.ResetTokenHash == nil || user.ResetExpiresAt == nil {
		return invalid
	}
	if user.ResetExpiresAt.Before(time.Now()) {
		return invalid
	}
	if hashToken(token) != *user.ResetTokenHash {
		return invalid
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", shared.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	return s.repo.CompleteReset(ctx, user.ID, string(hash))
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
