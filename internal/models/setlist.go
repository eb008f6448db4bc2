package models

import (
	"setlist_backend/internal/store"
)

// Setlist holds an ordered sequence of song identifiers. Songs is a sequence,
// not a set: reordering must be an exact permutation of the current ids.
type Setlist struct {
	store.Document
	UserID      string   `json:"userId"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Songs       []string `json:"songs"`
	SharedWith  []string `json:"sharedWith"`
}

// CanRead reports whether the user may read the setlist.
func (s *Setlist) CanRead(userID string) bool {
	return s.UserID == userID || Contains(s.SharedWith, userID)
}

// IsPermutation reports whether newOrder contains exactly the same multiset of
// ids as the current song list.
func (s *Setlist) IsPermutation(newOrder []string) bool {
	if len(newOrder) != len(s.Songs) {
		return false
	}
	counts := make(map[string]int, len(s.Songs))
	for _, id := range s.Songs {
		counts[id]++
	}
	for _, id := range newOrder {
		counts[id]--
		if counts[id] < 0 {
			return false
		}
	}
	return true
}
