package dto

type CreateSetlistRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	SharedWith  []string `json:"sharedWith"`
}

type UpdateSetlistRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type AddSongRequest struct {
	SongID string `json:"songId" validate:"required"`
}

type ReorderSongsRequest struct {
	SongIDs []string `json:"songIds" validate:"required"`
}
