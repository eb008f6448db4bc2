package dto

type RegisterDeviceRequest struct {
	PushToken  string `json:"fcmToken" validate:"required"`
	DeviceInfo string `json:"deviceInfo"`
	Platform   string `json:"platform" validate:"omitempty,oneof=web android ios"`
}
