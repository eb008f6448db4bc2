package repositories

import (
	"errors"

	"setlist_backend/internal/models"
	"setlist_backend/internal/store"
)

var ErrFriendshipNotFound = errors.New("friendship not found")

type FriendshipCollection = store.Collection[models.Friendship, *models.Friendship]

type FriendshipRepository interface {
	FindByID(id string) (*models.Friendship, error)
	Create(f *models.Friendship) (*models.Friendship, error)
	Update(f *models.Friendship) (*models.Friendship, error)
	Delete(id string) error
	FindBySender(userID string) ([]*models.Friendship, error)
	FindByReceiver(userID string) ([]*models.Friendship, error)
	FindInvolving(userID string) ([]*models.Friendship, error)
}

type FriendshipRepositoryImpl struct {
	friendships FriendshipCollection
}

func NewFriendshipRepository(friendships FriendshipCollection) FriendshipRepository {
	return &FriendshipRepositoryImpl{friendships: friendships}
}

func (r *FriendshipRepositoryImpl) FindByID(id string) (*models.Friendship, error) {
	f, err := r.friendships.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrFriendshipNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *FriendshipRepositoryImpl) Create(f *models.Friendship) (*models.Friendship, error) {
	return r.friendships.Create(f)
}

func (r *FriendshipRepositoryImpl) Update(f *models.Friendship) (*models.Friendship, error) {
	updated, err := r.friendships.Update(f)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrFriendshipNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *FriendshipRepositoryImpl) Delete(id string) error {
	if err := r.friendships.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrFriendshipNotFound
		}
		return err
	}
	return nil
}

func (r *FriendshipRepositoryImpl) FindBySender(userID string) ([]*models.Friendship, error) {
	return r.friendships.FindByField("senderId", userID)
}

func (r *FriendshipRepositoryImpl) FindByReceiver(userID string) ([]*models.Friendship, error) {
	return r.friendships.FindByField("receiverId", userID)
}

// FindInvolving returns relations where the user is sender or receiver.
func (r *FriendshipRepositoryImpl) FindInvolving(userID string) ([]*models.Friendship, error) {
	sent, err := r.FindBySender(userID)
	if err != nil {
		return nil, err
	}
	received, err := r.FindByReceiver(userID)
	if err != nil {
		return nil, err
	}
	return append(sent, received...), nil
}
