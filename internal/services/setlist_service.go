package services

import (
	"setlist_backend/internal/appErrors"
	"setlist_backend/internal/models"
	"setlist_backend/internal/repositories"
	"setlist_backend/internal/services/dto"
)

// SetlistService owns setlist CRUD, the ordered song sequence and sharing.
// Sharing follows the same friendship gate as songs; shared users get read
// access only, never reorder or edit.
type SetlistService interface {
	Create(userID string, req *dto.CreateSetlistRequest) (*models.Setlist, error)
	FindAll(userID string) ([]*models.Setlist, error)
	Get(userID, setlistID string) (*models.Setlist, error)
	Update(userID, setlistID string, req *dto.UpdateSetlistRequest) (*models.Setlist, error)
	Delete(userID, setlistID string) error
	AddSong(userID, setlistID string, req *dto.AddSongRequest) (*models.Setlist, error)
	RemoveSong(userID, setlistID, songID string) (*models.Setlist, error)
	ReorderSongs(userID, setlistID string, req *dto.ReorderSongsRequest) (*models.Setlist, error)
	Share(userID, setlistID string, req *dto.ShareRequest) (*models.Setlist, error)
	Unshare(userID, setlistID, targetUserID string) (*models.Setlist, error)
}

type SetlistServiceImpl struct {
	setlistRepo repositories.SetlistRepository
	songRepo    repositories.SongRepository
	friends     FriendService
}

func NewSetlistService(
	setlistRepo repositories.SetlistRepository,
	songRepo repositories.SongRepository,
	friends FriendService,
) SetlistService {
	return &SetlistServiceImpl{
		setlistRepo: setlistRepo,
		songRepo:    songRepo,
		friends:     friends,
	}
}

func (s *SetlistServiceImpl) Create(userID string, req *dto.CreateSetlistRequest) (*models.Setlist, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	if err := requireFriends(s.friends, userID, req.SharedWith); err != nil {
		return nil, err
	}

	setlist := &models.Setlist{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Songs:       []string{},
		SharedWith:  dedupe(req.SharedWith),
	}
	created, err := s.setlistRepo.Create(setlist)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return created, nil
}

// FindAll returns only the setlists the user owns. Shared setlists are
// reachable by id, not listed.
func (s *SetlistServiceImpl) FindAll(userID string) ([]*models.Setlist, error) {
	setlists, err := s.setlistRepo.FindByOwner(userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return setlists, nil
}

func (s *SetlistServiceImpl) Get(userID, setlistID string) (*models.Setlist, error) {
	setlist, err := s.findSetlist(setlistID)
	if err != nil {
		return nil, err
	}
	if !setlist.CanRead(userID) {
		return nil, appErrors.ErrForbidden
	}
	return setlist, nil
}

func (s *SetlistServiceImpl) Update(userID, setlistID string, req *dto.UpdateSetlistRequest) (*models.Setlist, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	setlist, err := s.requireOwned(userID, setlistID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		setlist.Name = *req.Name
	}
	if req.Description != nil {
		setlist.Description = *req.Description
	}

	updated, err := s.setlistRepo.Update(setlist)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return updated, nil
}

func (s *SetlistServiceImpl) Delete(userID, setlistID string) error {
	setlist, err := s.requireOwned(userID, setlistID)
	if err != nil {
		return err
	}
	if err := s.setlistRepo.Delete(setlist.ID); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

// AddSong appends a song id the owner can read. Adding an id that is already
// present returns the current state unchanged.
func (s *SetlistServiceImpl) AddSong(userID, setlistID string, req *dto.AddSongRequest) (*models.Setlist, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	setlist, err := s.requireOwned(userID, setlistID)
	if err != nil {
		return nil, err
	}

	song, err := s.songRepo.FindByID(req.SongID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrSongNotFound) {
			return nil, appErrors.ErrSongNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	if !song.CanRead(userID) {
		return nil, appErrors.ErrForbidden
	}

	if models.Contains(setlist.Songs, req.SongID) {
		return setlist, nil
	}
	setlist.Songs = append(setlist.Songs, req.SongID)

	updated, err := s.setlistRepo.Update(setlist)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return updated, nil
}

// RemoveSong drops a song id from the sequence. Removing an absent id is a
// no-op.
func (s *SetlistServiceImpl) RemoveSong(userID, setlistID, songID string) (*models.Setlist, error) {
	setlist, err := s.requireOwned(userID, setlistID)
	if err != nil {
		return nil, err
	}

	if !models.Contains(setlist.Songs, songID) {
		return setlist, nil
	}
	setlist.Songs = models.RemoveFromSet(setlist.Songs, songID)

	updated, err := s.setlistRepo.Update(setlist)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return updated, nil
}

// ReorderSongs replaces the sequence with a new ordering. The new ordering
// must be an exact permutation of the current ids; anything else is rejected
// and the stored order stays unchanged.
func (s *SetlistServiceImpl) ReorderSongs(userID, setlistID string, req *dto.ReorderSongsRequest) (*models.Setlist, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	setlist, err := s.requireOwned(userID, setlistID)
	if err != nil {
		return nil, err
	}

	if !setlist.IsPermutation(req.SongIDs) {
		return nil, appErrors.ErrInvalidSongOrder
	}
	setlist.Songs = req.SongIDs

	updated, err := s.setlistRepo.Update(setlist)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return updated, nil
}

func (s *SetlistServiceImpl) Share(userID, setlistID string, req *dto.ShareRequest) (*models.Setlist, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	setlist, err := s.requireOwned(userID, setlistID)
	if err != nil {
		return nil, err
	}

	if err := requireFriends(s.friends, userID, req.UserIDs); err != nil {
		return nil, err
	}

	for _, target := range req.UserIDs {
		setlist.SharedWith = models.AddToSet(setlist.SharedWith, target)
	}
	updated, err := s.setlistRepo.Update(setlist)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return updated, nil
}

func (s *SetlistServiceImpl) Unshare(userID, setlistID, targetUserID string) (*models.Setlist, error) {
	setlist, err := s.requireOwned(userID, setlistID)
	if err != nil {
		return nil, err
	}

	if !models.Contains(setlist.SharedWith, targetUserID) {
		return nil, appErrors.ErrShareNotFound
	}
	setlist.SharedWith = models.RemoveFromSet(setlist.SharedWith, targetUserID)

	updated, err := s.setlistRepo.Update(setlist)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return updated, nil
}

func (s *SetlistServiceImpl) findSetlist(setlistID string) (*models.Setlist, error) {
	setlist, err := s.setlistRepo.FindByID(setlistID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrSetlistNotFound) {
			return nil, appErrors.ErrSetlistNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return setlist, nil
}

// requireOwned loads the setlist and rejects every non-owner, shared readers
// included.
func (s *SetlistServiceImpl) requireOwned(userID, setlistID string) (*models.Setlist, error) {
	setlist, err := s.findSetlist(setlistID)
	if err != nil {
		return nil, err
	}
	if setlist.UserID != userID {
		return nil, appErrors.ErrNotResourceOwner
	}
	return setlist, nil
}
