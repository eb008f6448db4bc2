package models

import (
	"time"

	"setlist_backend/internal/store"
)

type TokenKind string

const (
	TokenKindEmailVerification TokenKind = "email_verification"
	TokenKindPasswordReset     TokenKind = "password_reset"
)

// AuthToken is a single-use expiring secret backing email verification and
// password reset. Tokens are never deleted; consumed tokens stay in the
// collection with Used set.
type AuthToken struct {
	store.Document
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	Kind      TokenKind `json:"type"`
	ExpiresAt time.Time `json:"expiresAt"`
	Used      bool      `json:"used"`
}

// Valid reports whether the token is unused and unexpired at the given time.
func (t *AuthToken) Valid(now time.Time) bool {
	return !t.Used && t.ExpiresAt.After(now)
}
