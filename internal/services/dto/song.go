package dto

type SongSectionInput struct {
	Name string `json:"name" validate:"required"`
	Bars int    `json:"bars" validate:"required,min=1,max=999"`
}

type CreateSongRequest struct {
	Name          string             `json:"name" validate:"required"`
	Artist        string             `json:"artist"`
	Description   string             `json:"description"`
	Bpm           int                `json:"bpm" validate:"required,min=30,max=300"`
	TimeSignature int                `json:"timeSignature" validate:"required,min=2,max=12"`
	Sections      []SongSectionInput `json:"sections" validate:"omitempty,dive"`
	SharedWith    []string           `json:"sharedWith"`
}

// UpdateSongRequest uses pointers so absent fields stay untouched.
type UpdateSongRequest struct {
	Name          *string             `json:"name,omitempty"`
	Artist        *string             `json:"artist,omitempty"`
	Description   *string             `json:"description,omitempty"`
	Bpm           *int                `json:"bpm,omitempty" validate:"omitempty,min=30,max=300"`
	TimeSignature *int                `json:"timeSignature,omitempty" validate:"omitempty,min=2,max=12"`
	Sections      *[]SongSectionInput `json:"sections,omitempty" validate:"omitempty,dive"`
	SharedWith    *[]string           `json:"sharedWith,omitempty"`
}

type ShareRequest struct {
	UserIDs []string `json:"userIds" validate:"required,min=1"`
}
