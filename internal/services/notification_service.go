package services

import (
	"setlist_backend/internal/appErrors"
	"setlist_backend/internal/logger"
	"setlist_backend/internal/models"
	"setlist_backend/internal/push"
	"setlist_backend/internal/repositories"
	"setlist_backend/internal/services/dto"
)

// NotificationService maintains the per-user device registry and fans push
// notifications out to it. Delivery is best-effort; SendToUser never fails
// the calling flow.
type NotificationService interface {
	RegisterDevice(userID string, req *dto.RegisterDeviceRequest) (*models.UserDevice, error)
	UnregisterDevice(userID, pushToken string) error
	GetUserDevices(userID string) ([]*models.UserDevice, error)
	SendToUser(userID string, n *push.Notification)
}

type NotificationServiceImpl struct {
	deviceRepo repositories.DeviceRepository
	dispatcher push.Dispatcher
}

func NewNotificationService(deviceRepo repositories.DeviceRepository, dispatcher push.Dispatcher) NotificationService {
	return &NotificationServiceImpl{
		deviceRepo: deviceRepo,
		dispatcher: dispatcher,
	}
}

// RegisterDevice upserts by push token. A token re-registered from another
// account moves to the new owner instead of duplicating.
func (s *NotificationServiceImpl) RegisterDevice(userID string, req *dto.RegisterDeviceRequest) (*models.UserDevice, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	existing, err := s.deviceRepo.FindByPushToken(req.PushToken)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	if len(existing) > 0 {
		device := existing[0]
		device.UserID = userID
		device.DeviceInfo = req.DeviceInfo
		device.Platform = req.Platform
		updated, err := s.deviceRepo.Update(device)
		if err != nil {
			return nil, appErrors.InternalError(err)
		}
		return updated, nil
	}

	device := &models.UserDevice{
		UserID:     userID,
		PushToken:  req.PushToken,
		DeviceInfo: req.DeviceInfo,
		Platform:   req.Platform,
	}
	created, err := s.deviceRepo.Create(device)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return created, nil
}

// UnregisterDevice removes the user's registrations for a push token. Tokens
// the user never registered are a no-op.
func (s *NotificationServiceImpl) UnregisterDevice(userID, pushToken string) error {
	devices, err := s.deviceRepo.FindByPushToken(pushToken)
	if err != nil {
		return appErrors.InternalError(err)
	}
	for _, device := range devices {
		if device.UserID != userID {
			continue
		}
		if err := s.deviceRepo.Delete(device.ID); err != nil {
			return appErrors.InternalError(err)
		}
	}
	return nil
}

func (s *NotificationServiceImpl) GetUserDevices(userID string) ([]*models.UserDevice, error) {
	devices, err := s.deviceRepo.FindByUser(userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return devices, nil
}

// SendToUser pushes to every device the user has registered. Failures are
// logged and swallowed.
func (s *NotificationServiceImpl) SendToUser(userID string, n *push.Notification) {
	if s.dispatcher == nil {
		return
	}

	devices, err := s.deviceRepo.FindByUser(userID)
	if err != nil {
		logger.Warn("failed to load devices for push", "user_id", userID, "error", err)
		return
	}
	if len(devices) == 0 {
		return
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.PushToken)
	}
	if err := s.dispatcher.Send(tokens, n); err != nil {
		logger.Warn("failed to send push notification", "user_id", userID, "error", err)
	}
}
