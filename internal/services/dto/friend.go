package dto

import "time"

type SendFriendRequestRequest struct {
	// Identifier is the receiver's email address.
	Identifier string `json:"identifier" validate:"required,email"`
}

type RespondFriendRequestRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// FriendResponse joins a friendship record with the other party's profile.
type FriendResponse struct {
	ID        string    `json:"id"` // friendship id
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
