package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrWeakKey is returned when the configured signing secret is too
	// short. This is a startup-only failure; the process must not serve
	// requests with a weak key.
	ErrWeakKey = errors.New("signing secret must be at least 32 bytes")
	// ErrInvalidToken is returned for malformed or tampered tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("token has expired")
)

// TokenTTL is the lifetime of an issued token.
const TokenTTL = 24 * time.Hour

// minKeyLen is the minimum signing key length in bytes (256 bits).
const minKeyLen = 32

// Claims defines the JWT claims structure.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed bearer tokens. Tokens are
// self-contained: validity is purely a function of signature and expiry,
// nothing is stored server-side.
type TokenManager struct {
	key []byte
}

// NewTokenManager derives the process-wide signing key from the
// configured secret. Fails with ErrWeakKey for secrets under 256 bits.
func NewTokenManager(secret string) (*TokenManager, error) {
	if len(secret) < minKeyLen {
		return nil, ErrWeakKey
	}
	return &TokenManager{key: []byte(secret)}, nil
}

// Issue creates a new signed token for the given subject, stamped with
// the current time and expiring after TokenTTL.
func (m *TokenManager) Issue(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("cannot issue token for empty subject")
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

// Verify parses and validates a token string and returns the embedded
// subject. Verification never extends a token's lifetime.
func (m *TokenManager) Verify(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
