package models

import (
	"setlist_backend/internal/store"
)

// UserDevice maps a user to a registered push token.
type UserDevice struct {
	store.Document
	UserID     string `json:"userId"`
	PushToken  string `json:"fcmToken"`
	DeviceInfo string `json:"deviceInfo,omitempty"`
	Platform   string `json:"platform,omitempty"` // web, android, ios
}
