package models

import (
	"time"

	"setlist_backend/internal/store"
)

// User document. Email is unique across users, enforced by an equality lookup
// before creation.
type User struct {
	store.Document
	Email           string `json:"email"`
	PasswordHash    string `json:"password"`
	Name            string `json:"name"`
	IsEmailVerified bool   `json:"isEmailVerified"`

	// Legacy inline token fields, superseded by the auth_tokens collection but
	// still written for compatibility with older clients of the store.
	EmailVerificationToken   string     `json:"emailVerificationToken,omitempty"`
	EmailVerificationExpires *time.Time `json:"emailVerificationExpires,omitempty"`
	PasswordResetToken       string     `json:"passwordResetToken,omitempty"`
	PasswordResetExpires     *time.Time `json:"passwordResetExpires,omitempty"`
}
