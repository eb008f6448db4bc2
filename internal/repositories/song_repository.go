package repositories

import (
	"errors"

	"setlist_backend/internal/models"
	"setlist_backend/internal/store"
)

var ErrSongNotFound = errors.New("song not found")

type SongCollection = store.Collection[models.Song, *models.Song]

type SongRepository interface {
	FindByID(id string) (*models.Song, error)
	Create(song *models.Song) (*models.Song, error)
	Update(song *models.Song) (*models.Song, error)
	Delete(id string) error
	FindByOwner(userID string) ([]*models.Song, error)
	FindSharedWith(userID string) ([]*models.Song, error)
}

type SongRepositoryImpl struct {
	songs SongCollection
}

func NewSongRepository(songs SongCollection) SongRepository {
	return &SongRepositoryImpl{songs: songs}
}

func (r *SongRepositoryImpl) FindByID(id string) (*models.Song, error) {
	song, err := r.songs.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSongNotFound
		}
		return nil, err
	}
	return song, nil
}

func (r *SongRepositoryImpl) Create(song *models.Song) (*models.Song, error) {
	return r.songs.Create(song)
}

func (r *SongRepositoryImpl) Update(song *models.Song) (*models.Song, error) {
	updated, err := r.songs.Update(song)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSongNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *SongRepositoryImpl) Delete(id string) error {
	if err := r.songs.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSongNotFound
		}
		return err
	}
	return nil
}

func (r *SongRepositoryImpl) FindByOwner(userID string) ([]*models.Song, error) {
	return r.songs.FindByField("userId", userID)
}

// FindSharedWith scans the collection for songs whose sharedWith set contains
// the user. The store has no array-membership query, so this filters in memory.
func (r *SongRepositoryImpl) FindSharedWith(userID string) ([]*models.Song, error) {
	all, err := r.songs.List()
	if err != nil {
		return nil, err
	}
	shared := make([]*models.Song, 0)
	for _, song := range all {
		if models.Contains(song.SharedWith, userID) {
			shared = append(shared, song)
		}
	}
	return shared, nil
}
