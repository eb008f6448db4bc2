package repositories

import (
	"errors"

	"setlist_backend/internal/models"
	"setlist_backend/internal/store"
)

var ErrSetlistNotFound = errors.New("setlist not found")

type SetlistCollection = store.Collection[models.Setlist, *models.Setlist]

type SetlistRepository interface {
	FindByID(id string) (*models.Setlist, error)
	Create(setlist *models.Setlist) (*models.Setlist, error)
	Update(setlist *models.Setlist) (*models.Setlist, error)
	Delete(id string) error
	FindByOwner(userID string) ([]*models.Setlist, error)
}

type SetlistRepositoryImpl struct {
	setlists SetlistCollection
}

func NewSetlistRepository(setlists SetlistCollection) SetlistRepository {
	return &SetlistRepositoryImpl{setlists: setlists}
}

func (r *SetlistRepositoryImpl) FindByID(id string) (*models.Setlist, error) {
	setlist, err := r.setlists.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSetlistNotFound
		}
		return nil, err
	}
	return setlist, nil
}

func (r *SetlistRepositoryImpl) Create(setlist *models.Setlist) (*models.Setlist, error) {
	return r.setlists.Create(setlist)
}

func (r *SetlistRepositoryImpl) Update(setlist *models.Setlist) (*models.Setlist, error) {
	updated, err := r.setlists.Update(setlist)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSetlistNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *SetlistRepositoryImpl) Delete(id string) error {
	if err := r.setlists.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSetlistNotFound
		}
		return err
	}
	return nil
}

func (r *SetlistRepositoryImpl) FindByOwner(userID string) ([]*models.Setlist, error) {
	return r.setlists.FindByField("userId", userID)
}
