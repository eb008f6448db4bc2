package models

// Collection names in the shared document store.
const (
	CollectionUsers       = "users"
	CollectionTokens      = "auth_tokens"
	CollectionFriendships = "friendships"
	CollectionSongs       = "songs"
	CollectionSetlists    = "setlists"
	CollectionDevices     = "user_devices"
)

// AddToSet appends items not already present, preserving existing order.
// Used for sharedWith: a true set with dedupe on insert.
func AddToSet(set []string, items ...string) []string {
	seen := make(map[string]bool, len(set))
	for _, v := range set {
		seen[v] = true
	}
	for _, v := range items {
		if !seen[v] {
			set = append(set, v)
			seen[v] = true
		}
	}
	return set
}

// RemoveFromSet removes every occurrence of item.
func RemoveFromSet(set []string, item string) []string {
	out := make([]string, 0, len(set))
	for _, v := range set {
		if v != item {
			out = append(out, v)
		}
	}
	return out
}

// Contains reports whether item is in the slice.
func Contains(set []string, item string) bool {
	for _, v := range set {
		if v == item {
			return true
		}
	}
	return false
}
