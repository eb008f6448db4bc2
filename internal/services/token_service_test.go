package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setlist_backend/internal/appErrors"
	"setlist_backend/internal/models"
	"setlist_backend/internal/repositories"
	"setlist_backend/internal/store"
)

func newTokenLedger(t *testing.T) TokenLedger {
	t.Helper()
	return NewTokenLedger(repositories.NewTokenRepository(
		store.NewMemoryCollection[models.AuthToken]()))
}

func TestTokenIssueAndFindValid(t *testing.T) {
	ledger := newTokenLedger(t)

	token, err := ledger.Issue("user-1", models.TokenKindEmailVerification, time.Hour)
	require.NoError(t, err)
	assert.Len(t, token.Token, 64, "32 random bytes, hex encoded")
	assert.False(t, token.Used)

	found, err := ledger.FindValid(token.Token, models.TokenKindEmailVerification)
	require.NoError(t, err)
	assert.Equal(t, token.ID, found.ID)
	assert.Equal(t, "user-1", found.UserID)
}

func TestTokenValuesAreUnique(t *testing.T) {
	ledger := newTokenLedger(t)

	a, err := ledger.Issue("user-1", models.TokenKindEmailVerification, time.Hour)
	require.NoError(t, err)
	b, err := ledger.Issue("user-1", models.TokenKindEmailVerification, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, a.Token, b.Token)
}

func TestTokenKindMismatchFailsUniformly(t *testing.T) {
	ledger := newTokenLedger(t)

	token, err := ledger.Issue("user-1", models.TokenKindEmailVerification, time.Hour)
	require.NoError(t, err)

	// A verification token is useless on the reset path, and the error is
	// the same one unknown values get.
	_, err = ledger.FindValid(token.Token, models.TokenKindPasswordReset)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
	_, err = ledger.FindValid("no-such-value", models.TokenKindPasswordReset)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestExpiredTokenIsInvalid(t *testing.T) {
	ledger := newTokenLedger(t)

	token, err := ledger.Issue("user-1", models.TokenKindPasswordReset, -time.Minute)
	require.NoError(t, err)

	_, err = ledger.FindValid(token.Token, models.TokenKindPasswordReset)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestInvalidateIsIdempotent(t *testing.T) {
	ledger := newTokenLedger(t)

	token, err := ledger.Issue("user-1", models.TokenKindEmailVerification, time.Hour)
	require.NoError(t, err)

	require.NoError(t, ledger.Invalidate(token.ID))
	require.NoError(t, ledger.Invalidate(token.ID))

	_, err = ledger.FindValid(token.Token, models.TokenKindEmailVerification)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestInvalidateAllOfKindSparesOtherKinds(t *testing.T) {
	ledger := newTokenLedger(t)

	verification, err := ledger.Issue("user-1", models.TokenKindEmailVerification, time.Hour)
	require.NoError(t, err)
	reset, err := ledger.Issue("user-1", models.TokenKindPasswordReset, time.Hour)
	require.NoError(t, err)
	otherUser, err := ledger.Issue("user-2", models.TokenKindEmailVerification, time.Hour)
	require.NoError(t, err)

	require.NoError(t, ledger.InvalidateAllOfKind("user-1", models.TokenKindEmailVerification))

	_, err = ledger.FindValid(verification.Token, models.TokenKindEmailVerification)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	_, err = ledger.FindValid(reset.Token, models.TokenKindPasswordReset)
	assert.NoError(t, err, "other kinds survive")
	_, err = ledger.FindValid(otherUser.Token, models.TokenKindEmailVerification)
	assert.NoError(t, err, "other users survive")
}
