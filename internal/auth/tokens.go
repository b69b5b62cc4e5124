package auth

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/makingtrips/makingtrips/internal/shared"
)

type customClaims struct {
	jwtlib.RegisteredClaims
	Role string `json:"role"`
}

// TokenManager issues and verifies HS256 bearer tokens embedding the user id
// and role.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager constructs a TokenManager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user.
func (t *TokenManager) Issue(userID uuid.UUID, role shared.Role) (string, time.Time, error) {
	expiresAt := time.Now().UTC().Add(t.ttl)
	claims := customClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwtlib.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
			Issuer:    "makingtrips",
		},
		Role: string(role),
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies a token and extracts the actor. A token without a usable
// subject is rejected even when its signature is valid.
func (t *TokenManager) Parse(tokenStr string) (shared.Actor, error) {
	claims := &customClaims{}
	token, err := jwtlib.ParseWithClaims(tokenStr, claims, func(tok *jwtlib.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return shared.Actor{}, shared.ErrUnauthorized
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return shared.Actor{}, shared.ErrUnauthorized
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return shared.Actor{}, shared.ErrUnauthorized
	}
	return shared.Actor{UserID: userID, Role: shared.Role(claims.Role)}, nil
}
