package repositories

import (
	"errors"

	"setlist_backend/internal/models"
	"setlist_backend/internal/store"
)

var ErrDeviceNotFound = errors.New("device not found")

type DeviceCollection = store.Collection[models.UserDevice, *models.UserDevice]

type DeviceRepository interface {
	Create(device *models.UserDevice) (*models.UserDevice, error)
	Update(device *models.UserDevice) (*models.UserDevice, error)
	Delete(id string) error
	FindByPushToken(token string) ([]*models.UserDevice, error)
	FindByUser(userID string) ([]*models.UserDevice, error)
}

type DeviceRepositoryImpl struct {
	devices DeviceCollection
}

func NewDeviceRepository(devices DeviceCollection) DeviceRepository {
	return &DeviceRepositoryImpl{devices: devices}
}

func (r *DeviceRepositoryImpl) Create(device *models.UserDevice) (*models.UserDevice, error) {
	return r.devices.Create(device)
}

func (r *DeviceRepositoryImpl) Update(device *models.UserDevice) (*models.UserDevice, error) {
	updated, err := r.devices.Update(device)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *DeviceRepositoryImpl) Delete(id string) error {
	if err := r.devices.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrDeviceNotFound
		}
		return err
	}
	return nil
}

func (r *DeviceRepositoryImpl) FindByPushToken(token string) ([]*models.UserDevice, error) {
	return r.devices.FindByField("fcmToken", token)
}

func (r *DeviceRepositoryImpl) FindByUser(userID string) ([]*models.UserDevice, error) {
	return r.devices.FindByField("userId", userID)
}
