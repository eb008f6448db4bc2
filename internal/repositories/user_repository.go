package repositories

import (
	"errors"
	"strings"

	"setlist_backend/internal/models"
	"setlist_backend/internal/store"
)

var ErrUserNotFound = errors.New("user not found")

// UserCollection is the users view of the document store.
type UserCollection = store.Collection[models.User, *models.User]

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) (*models.User, error)
	Update(user *models.User) (*models.User, error)
	Delete(id string) error
}

type UserRepositoryImpl struct {
	users UserCollection
}

func NewUserRepository(users UserCollection) UserRepository {
	return &UserRepositoryImpl{users: users}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	user, err := r.users.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// FindByEmail resolves a user by lowercased email. Emails are stored
// lowercased, so the lookup is a plain equality query.
func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	users, err := r.users.FindByField("email", strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return users[0], nil
}

func (r *UserRepositoryImpl) Create(user *models.User) (*models.User, error) {
	user.Email = strings.ToLower(user.Email)
	return r.users.Create(user)
}

func (r *UserRepositoryImpl) Update(user *models.User) (*models.User, error) {
	updated, err := r.users.Update(user)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *UserRepositoryImpl) Delete(id string) error {
	if err := r.users.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
