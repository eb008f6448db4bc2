package models

import (
	"setlist_backend/internal/store"
)

type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "pending"
	FriendshipStatusAccepted FriendshipStatus = "accepted"
	FriendshipStatusRejected FriendshipStatus = "rejected"
)

// Friendship is directional at creation (sender -> receiver) and symmetric
// once accepted: are-friends checks must look at both orderings.
type Friendship struct {
	store.Document
	SenderID   string           `json:"senderId"`
	ReceiverID string           `json:"receiverId"`
	Status     FriendshipStatus `json:"status"`
}

// Involves reports whether the user is either side of the relation.
func (f *Friendship) Involves(userID string) bool {
	return f.SenderID == userID || f.ReceiverID == userID
}

// OtherParty returns the opposite side of the relation for the given user.
func (f *Friendship) OtherParty(userID string) string {
	if f.SenderID == userID {
		return f.ReceiverID
	}
	return f.SenderID
}

// Matches reports whether the relation links exactly this unordered pair.
func (f *Friendship) Matches(userA, userB string) bool {
	return (f.SenderID == userA && f.ReceiverID == userB) ||
		(f.SenderID == userB && f.ReceiverID == userA)
}
