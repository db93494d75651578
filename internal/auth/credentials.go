package auth

import (
	"errors"
	"strings"
)

var (
	// ErrMissingFields is returned when the username or password is blank.
	ErrMissingFields = errors.New("username and password are required")
	// ErrInvalidCredentials is returned when the credentials are rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrWeakPassword is returned on registration with a short password.
	ErrWeakPassword = errors.New("password must be at least 4 characters")
)

const minPasswordLen = 4

// CredentialGate validates login input and decides whether a subject is
// authenticated.
type CredentialGate struct {
	tokens *TokenManager
}

// NewCredentialGate creates a new CredentialGate.
func NewCredentialGate(tokens *TokenManager) *CredentialGate {
	return &CredentialGate{tokens: tokens}
}

// Login authenticates a username/password pair and issues a token for
// the username on success.
//
// DEMO ONLY: besides the reserved admin/pass account, any non-empty
// username with a password of at least 4 characters is accepted. There is
// no user store to check against. Tightening this rule changes observable
// behavior, so it is kept as-is.
func (g *CredentialGate) Login(username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return "", ErrMissingFields
	}

	if username == "admin" && password == "pass" {
		return g.tokens.Issue(username)
	}
	if len(password) >= minPasswordLen {
		return g.tokens.Issue(username)
	}

	return "", ErrInvalidCredentials
}

// Register validates a registration request and acknowledges it without
// persisting anything. There is no user table: no duplicate checking, no
// storage. This is a deliberate demo shell, not a missing feature.
func (g *CredentialGate) Register(username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return ErrMissingFields
	}
	if len(password) < minPasswordLen {
		return ErrWeakPassword
	}
	return nil
}
