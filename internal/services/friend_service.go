package services

import (
	"setlist_backend/internal/appErrors"
	"setlist_backend/internal/logger"
	"setlist_backend/internal/models"
	"setlist_backend/internal/push"
	"setlist_backend/internal/repositories"
	"setlist_backend/internal/services/dto"
)

// FriendService manages the friendship lifecycle: pending requests, the
// accept/reject transition and removal. Accepted friendships are symmetric;
// pending ones are directional and only the receiver may respond.
type FriendService interface {
	SendRequest(senderID string, req *dto.SendFriendRequestRequest) (*dto.FriendResponse, error)
	RespondToRequest(userID, requestID string, req *dto.RespondFriendRequestRequest) (*dto.FriendResponse, error)
	ListPendingRequests(userID string) ([]*dto.FriendResponse, error)
	ListFriends(userID string) ([]*dto.FriendResponse, error)
	RemoveFriend(userID, friendshipID string) error
	AreFriends(userID, otherID string) (bool, error)
}

type FriendServiceImpl struct {
	friendshipRepo repositories.FriendshipRepository
	userRepo       repositories.UserRepository
	notifications  NotificationService
}

func NewFriendService(
	friendshipRepo repositories.FriendshipRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
) FriendService {
	return &FriendServiceImpl{
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		notifications:  notifications,
	}
}

// SendRequest creates a pending friendship towards the user with the given
// email. A pending request from this sender to this receiver blocks a
// duplicate; an accepted friendship blocks in either direction; a rejected
// one does not block, the sender may try again.
func (s *FriendServiceImpl) SendRequest(senderID string, req *dto.SendFriendRequestRequest) (*dto.FriendResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	receiver, err := s.userRepo.FindByEmail(req.Identifier)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if receiver.ID == senderID {
		return nil, appErrors.ErrCannotFriendSelf
	}

	existing, err := s.friendshipRepo.FindInvolving(senderID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	for _, f := range existing {
		if !f.Matches(senderID, receiver.ID) {
			continue
		}
		if f.Status == models.FriendshipStatusAccepted {
			return nil, appErrors.ErrAlreadyFriends
		}
		// Pending only conflicts in the same direction; the receiver sending
		// back creates their own request.
		if f.Status == models.FriendshipStatusPending && f.SenderID == senderID {
			return nil, appErrors.ErrFriendRequestExists
		}
	}

	sender, err := s.userRepo.FindByID(senderID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	friendship := &models.Friendship{
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Status:     models.FriendshipStatusPending,
	}
	friendship, err = s.friendshipRepo.Create(friendship)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	if s.notifications != nil {
		s.notifications.SendToUser(receiver.ID, &push.Notification{
			Title: "New friend request",
			Body:  sender.Name + " wants to be your friend",
			Data: map[string]string{
				"type":      "friend_request",
				"requestId": friendship.ID,
			},
		})
	}

	return friendResponse(friendship, receiver), nil
}

// RespondToRequest moves a pending request to accepted or rejected. Both
// outcomes are terminal.
func (s *FriendServiceImpl) RespondToRequest(userID, requestID string, req *dto.RespondFriendRequestRequest) (*dto.FriendResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	friendship, err := s.friendshipRepo.FindByID(requestID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrFriendshipNotFound) {
			return nil, appErrors.ErrFriendRequestNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if friendship.ReceiverID != userID {
		return nil, appErrors.ErrNotRequestReceiver
	}
	if friendship.Status != models.FriendshipStatusPending {
		return nil, appErrors.ErrRequestAlreadyHandled
	}

	friendship.Status = models.FriendshipStatus(req.Status)
	friendship, err = s.friendshipRepo.Update(friendship)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	sender, err := s.userRepo.FindByID(friendship.SenderID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if friendship.Status == models.FriendshipStatusAccepted && s.notifications != nil {
		receiver, err := s.userRepo.FindByID(userID)
		if err == nil {
			s.notifications.SendToUser(sender.ID, &push.Notification{
				Title: "Friend request accepted",
				Body:  receiver.Name + " accepted your friend request",
				Data: map[string]string{
					"type":         "friend_accepted",
					"friendshipId": friendship.ID,
				},
			})
		}
	}

	return friendResponse(friendship, sender), nil
}

// ListPendingRequests returns requests awaiting the user's response, joined
// with the sender's profile.
func (s *FriendServiceImpl) ListPendingRequests(userID string) ([]*dto.FriendResponse, error) {
	received, err := s.friendshipRepo.FindByReceiver(userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	result := make([]*dto.FriendResponse, 0, len(received))
	for _, f := range received {
		if f.Status != models.FriendshipStatusPending {
			continue
		}
		sender, err := s.userRepo.FindByID(f.SenderID)
		if err != nil {
			logger.Warn("pending request references missing sender", "friendship_id", f.ID, "sender_id", f.SenderID)
			continue
		}
		result = append(result, friendResponse(f, sender))
	}
	return result, nil
}

// ListFriends returns accepted friendships resolved to the other party.
func (s *FriendServiceImpl) ListFriends(userID string) ([]*dto.FriendResponse, error) {
	involving, err := s.friendshipRepo.FindInvolving(userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	result := make([]*dto.FriendResponse, 0, len(involving))
	for _, f := range involving {
		if f.Status != models.FriendshipStatusAccepted {
			continue
		}
		other, err := s.userRepo.FindByID(f.OtherParty(userID))
		if err != nil {
			logger.Warn("friendship references missing user", "friendship_id", f.ID)
			continue
		}
		result = append(result, friendResponse(f, other))
	}
	return result, nil
}

// RemoveFriend deletes a friendship record by id, whatever its status: an
// accepted friendship, a pending request the sender wants to cancel, or a
// rejected leftover. Either member may delete; shares made while friends
// stay in place until revoked per resource.
func (s *FriendServiceImpl) RemoveFriend(userID, friendshipID string) error {
	friendship, err := s.friendshipRepo.FindByID(friendshipID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrFriendshipNotFound) {
			return appErrors.ErrFriendshipNotFound
		}
		return appErrors.InternalError(err)
	}

	if !friendship.Involves(userID) {
		return appErrors.ErrNotFriendshipMember
	}

	if err := s.friendshipRepo.Delete(friendship.ID); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

// AreFriends reports whether an accepted friendship links the unordered pair.
func (s *FriendServiceImpl) AreFriends(userID, otherID string) (bool, error) {
	involving, err := s.friendshipRepo.FindInvolving(userID)
	if err != nil {
		return false, appErrors.InternalError(err)
	}
	for _, f := range involving {
		if f.Status == models.FriendshipStatusAccepted && f.Matches(userID, otherID) {
			return true, nil
		}
	}
	return false, nil
}

// friendResponse joins a friendship with the profile of the party the caller
// cares about.
func friendResponse(f *models.Friendship, other *models.User) *dto.FriendResponse {
	return &dto.FriendResponse{
		ID:        f.ID,
		UserID:    other.ID,
		Email:     other.Email,
		Name:      other.Name,
		Status:    string(f.Status),
		CreatedAt: f.CreatedAt,
	}
}
