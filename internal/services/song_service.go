package services

import (
	"setlist_backend/internal/appErrors"
	"setlist_backend/internal/models"
	"setlist_backend/internal/repositories"
	"setlist_backend/internal/services/dto"
)

// SongService owns song CRUD and friendship-gated sharing. Reads are open to
// the owner and everyone in sharedWith; every write is owner-only.
type SongService interface {
	Create(userID string, req *dto.CreateSongRequest) (*models.Song, error)
	FindAll(userID string) ([]*models.Song, error)
	Get(userID, songID string) (*models.Song, error)
	Update(userID, songID string, req *dto.UpdateSongRequest) (*models.Song, error)
	Delete(userID, songID string) error
	Share(userID, songID string, req *dto.ShareRequest) (*models.Song, error)
	Unshare(userID, songID, targetUserID string) (*models.Song, error)
}

type SongServiceImpl struct {
	songRepo repositories.SongRepository
	friends  FriendService
}

func NewSongService(songRepo repositories.SongRepository, friends FriendService) SongService {
	return &SongServiceImpl{
		songRepo: songRepo,
		friends:  friends,
	}
}

// Create stores a new song owned by the user. Initial shares are allowed but
// go through the same friendship gate as Share.
func (s *SongServiceImpl) Create(userID string, req *dto.CreateSongRequest) (*models.Song, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	if err := s.requireFriends(userID, req.SharedWith); err != nil {
		return nil, err
	}

	song := &models.Song{
		UserID:        userID,
		Name:          req.Name,
		Artist:        req.Artist,
		Description:   req.Description,
		Bpm:           req.Bpm,
		TimeSignature: req.TimeSignature,
		Sections:      toSections(req.Sections),
		SharedWith:    dedupe(req.SharedWith),
	}
	created, err := s.songRepo.Create(song)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return created, nil
}

// FindAll returns the songs the user owns plus the ones shared with them,
// deduped by id.
func (s *SongServiceImpl) FindAll(userID string) ([]*models.Song, error) {
	owned, err := s.songRepo.FindByOwner(userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	shared, err := s.songRepo.FindSharedWith(userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	seen := make(map[string]bool, len(owned))
	result := make([]*models.Song, 0, len(owned)+len(shared))
	for _, song := range owned {
		seen[song.ID] = true
		result = append(result, song)
	}
	for _, song := range shared {
		if seen[song.ID] {
			continue
		}
		result = append(result, song)
	}
	return result, nil
}

func (s *SongServiceImpl) Get(userID, songID string) (*models.Song, error) {
	song, err := s.findSong(songID)
	if err != nil {
		return nil, err
	}
	if !song.CanRead(userID) {
		return nil, appErrors.ErrForbidden
	}
	return song, nil
}

// Update applies the present fields of the request. Owner only; a sharedWith
// replacement revalidates every target against the friendship graph.
func (s *SongServiceImpl) Update(userID, songID string, req *dto.UpdateSongRequest) (*models.Song, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	song, err := s.findSong(songID)
	if err != nil {
		return nil, err
	}
	if song.UserID != userID {
		return nil, appErrors.ErrNotResourceOwner
	}

	if req.SharedWith != nil {
		if err := s.requireFriends(userID, *req.SharedWith); err != nil {
			return nil, err
		}
		song.SharedWith = dedupe(*req.SharedWith)
	}
	if req.Name != nil {
		song.Name = *req.Name
	}
	if req.Artist != nil {
		song.Artist = *req.Artist
	}
	if req.Description != nil {
		song.Description = *req.Description
	}
	if req.Bpm != nil {
		song.Bpm = *req.Bpm
	}
	if req.TimeSignature != nil {
		song.TimeSignature = *req.TimeSignature
	}
	if req.Sections != nil {
		song.Sections = toSections(*req.Sections)
	}

	updated, err := s.songRepo.Update(song)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return updated, nil
}

func (s *SongServiceImpl) Delete(userID, songID string) error {
	song, err := s.findSong(songID)
	if err != nil {
		return err
	}
	if song.UserID != userID {
		return appErrors.ErrNotResourceOwner
	}
	if err := s.songRepo.Delete(song.ID); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

// Share extends sharedWith with the targets. All targets must be accepted
// friends of the owner; one non-friend fails the whole call before any write.
// Re-sharing with an existing target is not an error.
func (s *SongServiceImpl) Share(userID, songID string, req *dto.ShareRequest) (*models.Song, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	song, err := s.findSong(songID)
	if err != nil {
		return nil, err
	}
	if song.UserID != userID {
		return nil, appErrors.ErrNotResourceOwner
	}

	if err := s.requireFriends(userID, req.UserIDs); err != nil {
		return nil, err
	}

	for _, target := range req.UserIDs {
		song.SharedWith = models.AddToSet(song.SharedWith, target)
	}
	updated, err := s.songRepo.Update(song)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return updated, nil
}

// Unshare revokes one target's access. Revoking a user who has no access
// fails with a not-found error.
func (s *SongServiceImpl) Unshare(userID, songID, targetUserID string) (*models.Song, error) {
	song, err := s.findSong(songID)
	if err != nil {
		return nil, err
	}
	if song.UserID != userID {
		return nil, appErrors.ErrNotResourceOwner
	}

	if !models.Contains(song.SharedWith, targetUserID) {
		return nil, appErrors.ErrShareNotFound
	}
	song.SharedWith = models.RemoveFromSet(song.SharedWith, targetUserID)

	updated, err := s.songRepo.Update(song)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return updated, nil
}

func (s *SongServiceImpl) findSong(songID string) (*models.Song, error) {
	song, err := s.songRepo.FindByID(songID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrSongNotFound) {
			return nil, appErrors.ErrSongNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return song, nil
}

// requireFriends checks every target against the friendship graph before any
// write happens. All-or-nothing.
func (s *SongServiceImpl) requireFriends(ownerID string, targets []string) error {
	return requireFriends(s.friends, ownerID, targets)
}

func toSections(inputs []dto.SongSectionInput) []models.SongSection {
	if inputs == nil {
		return nil
	}
	sections := make([]models.SongSection, 0, len(inputs))
	for _, in := range inputs {
		sections = append(sections, models.SongSection{Name: in.Name, Bars: in.Bars})
	}
	return sections
}
