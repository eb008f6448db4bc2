package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"setlist_backend/internal/auth"
	"setlist_backend/internal/models"
	"setlist_backend/internal/push"
	"setlist_backend/internal/repositories"
	"setlist_backend/internal/services/dto"
	"setlist_backend/internal/store"
)

// recordedMail captures one outbound email.
type recordedMail struct {
	To    string
	Name  string
	Token string
}

// mailRecorder implements email.Provider and records instead of sending.
type mailRecorder struct {
	mu            sync.Mutex
	Verifications []recordedMail
	Welcomes      []recordedMail
	Resets        []recordedMail
	Changed       []recordedMail
}

func (m *mailRecorder) SendVerification(to, name, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Verifications = append(m.Verifications, recordedMail{To: to, Name: name, Token: token})
	return nil
}

func (m *mailRecorder) SendWelcome(to, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Welcomes = append(m.Welcomes, recordedMail{To: to, Name: name})
	return nil
}

func (m *mailRecorder) SendPasswordReset(to, name, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resets = append(m.Resets, recordedMail{To: to, Name: name, Token: token})
	return nil
}

func (m *mailRecorder) SendPasswordChanged(to, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Changed = append(m.Changed, recordedMail{To: to, Name: name})
	return nil
}

func (m *mailRecorder) lastVerificationToken(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.Verifications, "no verification email recorded")
	return m.Verifications[len(m.Verifications)-1].Token
}

func (m *mailRecorder) lastResetToken(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.Resets, "no password reset email recorded")
	return m.Resets[len(m.Resets)-1].Token
}

// pushRecorder implements push.Dispatcher and records every fan-out.
type pushRecorder struct {
	mu    sync.Mutex
	Sends []struct {
		Tokens       []string
		Notification push.Notification
	}
}

func (p *pushRecorder) Send(tokens []string, n *push.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sends = append(p.Sends, struct {
		Tokens       []string
		Notification push.Notification
	}{Tokens: tokens, Notification: *n})
	return nil
}

// testEnv wires the full service container over in-memory collections.
type testEnv struct {
	Users       repositories.UserRepository
	TokenRepo   repositories.TokenRepository
	Friendships repositories.FriendshipRepository
	SongRepo    repositories.SongRepository
	SetlistRepo repositories.SetlistRepository
	Devices     repositories.DeviceRepository

	Mail *mailRecorder
	Push *pushRecorder

	*ServiceContainer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		Users:       repositories.NewUserRepository(store.NewMemoryCollection[models.User]()),
		TokenRepo:   repositories.NewTokenRepository(store.NewMemoryCollection[models.AuthToken]()),
		Friendships: repositories.NewFriendshipRepository(store.NewMemoryCollection[models.Friendship]()),
		SongRepo:    repositories.NewSongRepository(store.NewMemoryCollection[models.Song]()),
		SetlistRepo: repositories.NewSetlistRepository(store.NewMemoryCollection[models.Setlist]()),
		Devices:     repositories.NewDeviceRepository(store.NewMemoryCollection[models.UserDevice]()),
		Mail:        &mailRecorder{},
		Push:        &pushRecorder{},
	}

	env.ServiceContainer = NewServiceContainer(ServiceDeps{
		Users:       env.Users,
		Tokens:      env.TokenRepo,
		Friendships: env.Friendships,
		Songs:       env.SongRepo,
		Setlists:    env.SetlistRepo,
		Devices:     env.Devices,
		Email:       env.Mail,
		Push:        env.Push,
		Sessions:    auth.NewTokenManager("test-secret", time.Hour),
	})
	return env
}

// registerVerified registers a user, completes email verification and returns
// the user id.
func (env *testEnv) registerVerified(t *testing.T, email, name string) string {
	t.Helper()

	resp, err := env.Auth.Register(&dto.RegisterRequest{
		Email:    email,
		Password: "secret123",
		Name:     name,
	})
	require.NoError(t, err)

	verified, err := env.Auth.VerifyEmail(&dto.VerifyEmailRequest{
		Token: env.Mail.lastVerificationToken(t),
	})
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, verified.User.ID)
	return verified.User.ID
}

// makeFriends sends a request from a to b's email, has b accept it and
// returns the friendship id.
func (env *testEnv) makeFriends(t *testing.T, aID, bID string) string {
	t.Helper()

	b, err := env.Users.FindByID(bID)
	require.NoError(t, err)

	_, err = env.Friends.SendRequest(aID, &dto.SendFriendRequestRequest{Identifier: b.Email})
	require.NoError(t, err)

	pending, err := env.Friends.ListPendingRequests(bID)
	require.NoError(t, err)
	require.NotEmpty(t, pending)

	accepted, err := env.Friends.RespondToRequest(bID, pending[0].ID, &dto.RespondFriendRequestRequest{Status: "accepted"})
	require.NoError(t, err)
	return accepted.ID
}
