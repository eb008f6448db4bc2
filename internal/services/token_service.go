package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"setlist_backend/internal/appErrors"
	"setlist_backend/internal/models"
	"setlist_backend/internal/repositories"
)

// Token TTLs of the account lifecycle flows.
const (
	EmailVerificationTTL = 24 * time.Hour
	PasswordResetTTL     = 1 * time.Hour
)

// TokenLedger issues, validates and invalidates single-use expiring tokens.
// Tokens are never deleted; consumed ones stay stored with used=true.
type TokenLedger interface {
	Issue(userID string, kind models.TokenKind, ttl time.Duration) (*models.AuthToken, error)
	FindValid(value string, kind models.TokenKind) (*models.AuthToken, error)
	Invalidate(tokenID string) error
	InvalidateAllOfKind(userID string, kind models.TokenKind) error
}

type TokenLedgerImpl struct {
	tokenRepo repositories.TokenRepository
}

func NewTokenLedger(tokenRepo repositories.TokenRepository) TokenLedger {
	return &TokenLedgerImpl{tokenRepo: tokenRepo}
}

// Issue stores a fresh unused token with a random 256-bit value.
func (s *TokenLedgerImpl) Issue(userID string, kind models.TokenKind, ttl time.Duration) (*models.AuthToken, error) {
	value, err := generateTokenValue()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	token := &models.AuthToken{
		UserID:    userID,
		Token:     value,
		Kind:      kind,
		ExpiresAt: time.Now().UTC().Add(ttl),
		Used:      false,
	}
	created, err := s.tokenRepo.Create(token)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return created, nil
}

// FindValid resolves a token by exact value, filtered to the matching kind,
// unused and unexpired. Unknown, used and expired values all fail the same
// way; callers must not be able to tell those states apart.
func (s *TokenLedgerImpl) FindValid(value string, kind models.TokenKind) (*models.AuthToken, error) {
	tokens, err := s.tokenRepo.FindByValue(value)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	now := time.Now().UTC()
	for _, token := range tokens {
		if token.Kind == kind && token.Valid(now) {
			return token, nil
		}
	}
	return nil, appErrors.ErrInvalidToken
}

// Invalidate marks the token used. Idempotent.
func (s *TokenLedgerImpl) Invalidate(tokenID string) error {
	if err := s.tokenRepo.MarkUsed(tokenID); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

// InvalidateAllOfKind consumes every unused token of the kind for the user.
// Called before issuing a replacement so at most one live token per
// (user, kind) is authoritative. The invalidate-then-issue sequence is not
// transactional; concurrent callers can race (accepted weakness).
func (s *TokenLedgerImpl) InvalidateAllOfKind(userID string, kind models.TokenKind) error {
	tokens, err := s.tokenRepo.FindByUser(userID)
	if err != nil {
		return appErrors.InternalError(err)
	}
	for _, token := range tokens {
		if token.Kind != kind || token.Used {
			continue
		}
		if err := s.tokenRepo.MarkUsed(token.ID); err != nil {
			return appErrors.InternalError(err)
		}
	}
	return nil
}

// generateTokenValue returns 32 cryptographically random bytes, hex-encoded.
func generateTokenValue() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
