package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setlist_backend/internal/appErrors"
	"setlist_backend/internal/models"
	"setlist_backend/internal/services/dto"
)

func createSetlistWithSongs(t *testing.T, env *testEnv, ownerID string, songNames ...string) (*models.Setlist, []string) {
	t.Helper()

	setlist, err := env.Setlists.Create(ownerID, &dto.CreateSetlistRequest{Name: "Friday Gig"})
	require.NoError(t, err)

	songIDs := make([]string, 0, len(songNames))
	for _, name := range songNames {
		song, err := env.Songs.Create(ownerID, newSongRequest(name))
		require.NoError(t, err)
		setlist, err = env.Setlists.AddSong(ownerID, setlist.ID, &dto.AddSongRequest{SongID: song.ID})
		require.NoError(t, err)
		songIDs = append(songIDs, song.ID)
	}
	return setlist, songIDs
}

func TestSetlistCreateAndFindAll(t *testing.T) {
	env := newTestEnv(t)
	aliceID := env.registerVerified(t, "alice@example.com", "Alice")
	bobID := env.registerVerified(t, "bob@example.com", "Bob")
	env.makeFriends(t, aliceID, bobID)

	setlist, err := env.Setlists.Create(aliceID, &dto.CreateSetlistRequest{
		Name:        "Friday Gig",
		Description: "Jazz night",
	})
	require.NoError(t, err)
	assert.Empty(t, setlist.Songs)

	_, err = env.Setlists.Share(aliceID, setlist.ID, &dto.ShareRequest{UserIDs: []string{bobID}})
	require.NoError(t, err)

	// FindAll lists owned setlists only; shared ones stay reachable by id.
	lists, err := env.Setlists.FindAll(bobID)
	require.NoError(t, err)
	assert.Empty(t, lists)

	got, err := env.Setlists.Get(bobID, setlist.ID)
	require.NoError(t, err)
	assert.Equal(t, "Friday Gig", got.Name)
}

func TestSetlistAddSong(t *testing.T) {
	env := newTestEnv(t)
	aliceID := env.registerVerified(t, "alice@example.com", "Alice")

	setlist, songIDs := createSetlistWithSongs(t, env, aliceID, "So What", "Blue in Green")
	assert.Equal(t, songIDs, setlist.Songs)

	// Adding a song twice is a no-op.
	again, err := env.Setlists.AddSong(aliceID, setlist.ID, &dto.AddSongRequest{SongID: songIDs[0]})
	require.NoError(t, err)
	assert.Equal(t, songIDs, again.Songs)

	_, err = env.Setlists.AddSong(aliceID, setlist.ID, &dto.AddSongRequest{SongID: "missing-song"})
	assert.ErrorIs(t, err, appErrors.ErrSongNotFound)
}

func TestSetlistAddSongRequiresReadableSong(t *testing.T) {
	env := newTestEnv(t)
	aliceID := env.registerVerified(t, "alice@example.com", "Alice")
	bobID := env.registerVerified(t, "bob@example.com", "Bob")
	env.makeFriends(t, aliceID, bobID)

	bobSong, err := env.Songs.Create(bobID, newSongRequest("Bob Song"))
	require.NoError(t, err)

	setlist, err := env.Setlists.Create(aliceID, &dto.CreateSetlistRequest{Name: "Friday Gig"})
	require.NoError(t, err)

	_, err = env.Setlists.AddSong(aliceID, setlist.ID, &dto.AddSongRequest{SongID: bobSong.ID})
	assert.ErrorIs(t, err, appErrors.ErrForbidden, "cannot attach a song without read access")

	_, err = env.Songs.Share(bobID, bobSong.ID, &dto.ShareRequest{UserIDs: []string{aliceID}})
	require.NoError(t, err)

	updated, err := env.Setlists.AddSong(aliceID, setlist.ID, &dto.AddSongRequest{SongID: bobSong.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{bobSong.ID}, updated.Songs)
}

func TestSetlistRemoveSong(t *testing.T) {
	env := newTestEnv(t)
	aliceID := env.registerVerified(t, "alice@example.com", "Alice")

	setlist, songIDs := createSetlistWithSongs(t, env, aliceID, "So What", "Blue in Green")

	updated, err := env.Setlists.RemoveSong(aliceID, setlist.ID, songIDs[0])
	require.NoError(t, err)
	assert.Equal(t, []string{songIDs[1]}, updated.Songs)

	// Removing an absent id is a no-op.
	updated, err = env.Setlists.RemoveSong(aliceID, setlist.ID, songIDs[0])
	require.NoError(t, err)
	assert.Equal(t, []string{songIDs[1]}, updated.Songs)
}

func TestSetlistReorderSongs(t *testing.T) {
	env := newTestEnv(t)
	aliceID := env.registerVerified(t, "alice@example.com", "Alice")

	setlist, songIDs := createSetlistWithSongs(t, env, aliceID, "So What", "Blue in Green", "All Blues")

	reordered, err := env.Setlists.ReorderSongs(aliceID, setlist.ID, &dto.ReorderSongsRequest{
		SongIDs: []string{songIDs[2], songIDs[0], songIDs[1]},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{songIDs[2], songIDs[0], songIDs[1]}, reordered.Songs)
}

func TestSetlistReorderRejectsNonPermutations(t *testing.T) {
	env := newTestEnv(t)
	aliceID := env.registerVerified(t, "alice@example.com", "Alice")

	setlist, songIDs := createSetlistWithSongs(t, env, aliceID, "So What", "Blue in Green")

	cases := map[string][]string{
		"missing id":   {songIDs[0]},
		"extra id":     {songIDs[0], songIDs[1], "intruder"},
		"duplicate id": {songIDs[0], songIDs[0]},
		"foreign id":   {songIDs[0], "intruder"},
	}
	for name, order := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := env.Setlists.ReorderSongs(aliceID, setlist.ID, &dto.ReorderSongsRequest{SongIDs: order})
			assert.ErrorIs(t, err, appErrors.ErrInvalidSongOrder)

			// The stored order is untouched by the failed attempt.
			current, err := env.Setlists.Get(aliceID, setlist.ID)
			require.NoError(t, err)
			assert.Equal(t, songIDs, current.Songs)
		})
	}
}

func TestSetlistWritesAreOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	aliceID := env.registerVerified(t, "alice@example.com", "Alice")
	bobID := env.registerVerified(t, "bob@example.com", "Bob")
	env.makeFriends(t, aliceID, bobID)

	setlist, songIDs := createSetlistWithSongs(t, env, aliceID, "So What", "Blue in Green")
	_, err := env.Setlists.Share(aliceID, setlist.ID, &dto.ShareRequest{UserIDs: []string{bobID}})
	require.NoError(t, err)

	// A shared user can read but nothing beyond that.
	_, err = env.Setlists.Get(bobID, setlist.ID)
	require.NoError(t, err)

	newName := "Hijacked"
	_, err = env.Setlists.Update(bobID, setlist.ID, &dto.UpdateSetlistRequest{Name: &newName})
	assert.ErrorIs(t, err, appErrors.ErrNotResourceOwner)
	_, err = env.Setlists.ReorderSongs(bobID, setlist.ID, &dto.ReorderSongsRequest{
		SongIDs: []string{songIDs[1], songIDs[0]},
	})
	assert.ErrorIs(t, err, appErrors.ErrNotResourceOwner)
	_, err = env.Setlists.AddSong(bobID, setlist.ID, &dto.AddSongRequest{SongID: songIDs[0]})
	assert.ErrorIs(t, err, appErrors.ErrNotResourceOwner)
	err = env.Setlists.Delete(bobID, setlist.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotResourceOwner)
}

func TestSetlistShareRequiresFriendship(t *testing.T) {
	env := newTestEnv(t)
	aliceID := env.registerVerified(t, "alice@example.com", "Alice")
	bobID := env.registerVerified(t, "bob@example.com", "Bob")

	setlist, err := env.Setlists.Create(aliceID, &dto.CreateSetlistRequest{Name: "Friday Gig"})
	require.NoError(t, err)

	_, err = env.Setlists.Share(aliceID, setlist.ID, &dto.ShareRequest{UserIDs: []string{bobID}})
	assert.ErrorIs(t, err, appErrors.ErrShareTargetNotFriend)

	env.makeFriends(t, aliceID, bobID)
	shared, err := env.Setlists.Share(aliceID, setlist.ID, &dto.ShareRequest{UserIDs: []string{bobID}})
	require.NoError(t, err)
	assert.Equal(t, []string{bobID}, shared.SharedWith)
}

func TestSetlistUnshare(t *testing.T) {
	env := newTestEnv(t)
	aliceID := env.registerVerified(t, "alice@example.com", "Alice")
	bobID := env.registerVerified(t, "bob@example.com", "Bob")
	env.makeFriends(t, aliceID, bobID)

	setlist, err := env.Setlists.Create(aliceID, &dto.CreateSetlistRequest{Name: "Friday Gig"})
	require.NoError(t, err)

	_, err = env.Setlists.Unshare(aliceID, setlist.ID, bobID)
	assert.ErrorIs(t, err, appErrors.ErrShareNotFound)

	_, err = env.Setlists.Share(aliceID, setlist.ID, &dto.ShareRequest{UserIDs: []string{bobID}})
	require.NoError(t, err)
	unshared, err := env.Setlists.Unshare(aliceID, setlist.ID, bobID)
	require.NoError(t, err)
	assert.Empty(t, unshared.SharedWith)

	_, err = env.Setlists.Get(bobID, setlist.ID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestSetlistDelete(t *testing.T) {
	env := newTestEnv(t)
	aliceID := env.registerVerified(t, "alice@example.com", "Alice")

	setlist, _ := createSetlistWithSongs(t, env, aliceID, "So What")

	require.NoError(t, env.Setlists.Delete(aliceID, setlist.ID))
	_, err := env.Setlists.Get(aliceID, setlist.ID)
	assert.ErrorIs(t, err, appErrors.ErrSetlistNotFound)

	err = env.Setlists.Delete(aliceID, setlist.ID)
	assert.ErrorIs(t, err, appErrors.ErrSetlistNotFound)
}
