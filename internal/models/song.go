package models

import (
	"setlist_backend/internal/store"
)

type SongSection struct {
	Name string `json:"name"`
	Bars int    `json:"bars"`
}

// Song is exclusively owned by one user; SharedWith grants read access only.
type Song struct {
	store.Document
	UserID        string        `json:"userId"`
	Name          string        `json:"name"`
	Artist        string        `json:"artist,omitempty"`
	Description   string        `json:"description,omitempty"`
	Bpm           int           `json:"bpm"`
	TimeSignature int           `json:"timeSignature"`
	Sections      []SongSection `json:"sections"`
	SharedWith    []string      `json:"sharedWith"`
}

// CanRead reports whether the user may read the song.
func (s *Song) CanRead(userID string) bool {
	return s.UserID == userID || Contains(s.SharedWith, userID)
}
