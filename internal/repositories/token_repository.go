package repositories

import (
	"errors"

	"setlist_backend/internal/models"
	"setlist_backend/internal/store"
)

var ErrTokenNotFound = errors.New("token not found")

type TokenCollection = store.Collection[models.AuthToken, *models.AuthToken]

type TokenRepository interface {
	Create(token *models.AuthToken) (*models.AuthToken, error)
	FindByValue(value string) ([]*models.AuthToken, error)
	FindByUser(userID string) ([]*models.AuthToken, error)
	MarkUsed(id string) error
}

type TokenRepositoryImpl struct {
	tokens TokenCollection
}

func NewTokenRepository(tokens TokenCollection) TokenRepository {
	return &TokenRepositoryImpl{tokens: tokens}
}

func (r *TokenRepositoryImpl) Create(token *models.AuthToken) (*models.AuthToken, error) {
	return r.tokens.Create(token)
}

// FindByValue returns every stored token with the given opaque value. Values
// are unique by construction, so more than one result means a duplicate slipped
// in; callers take the first valid match.
func (r *TokenRepositoryImpl) FindByValue(value string) ([]*models.AuthToken, error) {
	return r.tokens.FindByField("token", value)
}

func (r *TokenRepositoryImpl) FindByUser(userID string) ([]*models.AuthToken, error) {
	return r.tokens.FindByField("userId", userID)
}

// MarkUsed flips the used flag. Idempotent: marking an already-used token is
// not an error.
func (r *TokenRepositoryImpl) MarkUsed(id string) error {
	token, err := r.tokens.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTokenNotFound
		}
		return err
	}
	if token.Used {
		return nil
	}
	token.Used = true
	_, err = r.tokens.Update(token)
	return err
}
