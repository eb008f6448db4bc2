package services

import (
	"setlist_backend/internal/appErrors"
	"setlist_backend/internal/auth"
	"setlist_backend/internal/email"
	"setlist_backend/internal/push"
	"setlist_backend/internal/repositories"
	appvalidator "setlist_backend/internal/validator"
)

// Shared request validator. Services validate DTOs at the boundary; nothing
// below this layer re-checks shape.
var validate = appvalidator.New()

// validationError converts a validator failure into the transport-facing
// application error, keeping the field map as details.
func validationError(err error) error {
	var ve *appvalidator.ValidationError
	if appErrors.As(err, &ve) {
		return appErrors.ValidationError(ve.Errors)
	}
	return appErrors.ValidationError(err.Error())
}

// requireFriends enforces the sharing gate: every target must hold an
// accepted friendship with the owner. One non-friend fails the whole set
// before any write.
func requireFriends(friends FriendService, ownerID string, targets []string) error {
	for _, target := range targets {
		ok, err := friends.AreFriends(ownerID, target)
		if err != nil {
			return err
		}
		if !ok {
			return appErrors.ErrShareTargetNotFriend
		}
	}
	return nil
}

// dedupe copies the slice keeping the first occurrence of each id.
func dedupe(ids []string) []string {
	result := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

// ServiceContainer wires every service over the shared repositories.
type ServiceContainer struct {
	Tokens        TokenLedger
	Auth          AuthService
	Friends       FriendService
	Songs         SongService
	Setlists      SetlistService
	Notifications NotificationService
}

type ServiceDeps struct {
	Users       repositories.UserRepository
	Tokens      repositories.TokenRepository
	Friendships repositories.FriendshipRepository
	Songs       repositories.SongRepository
	Setlists    repositories.SetlistRepository
	Devices     repositories.DeviceRepository

	Email    email.Provider
	Push     push.Dispatcher
	Sessions *auth.TokenManager
}

func NewServiceContainer(deps ServiceDeps) *ServiceContainer {
	tokens := NewTokenLedger(deps.Tokens)
	notifications := NewNotificationService(deps.Devices, deps.Push)
	friends := NewFriendService(deps.Friendships, deps.Users, notifications)

	return &ServiceContainer{
		Tokens:        tokens,
		Auth:          NewAuthService(deps.Users, tokens, deps.Email, deps.Sessions),
		Friends:       friends,
		Songs:         NewSongService(deps.Songs, friends),
		Setlists:      NewSetlistService(deps.Setlists, deps.Songs, friends),
		Notifications: notifications,
	}
}
