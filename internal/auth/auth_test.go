package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/starford/notetodo/internal/apperr"
	"github.com/starford/notetodo/internal/models"
	"github.com/starford/notetodo/internal/testutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := testutil.TestDB(t)
	return NewService(db, Config{Secret: "test-secret", Issuer: "notetodo", BcryptCost: bcrypt.MinCost})
}

func TestRegister_FirstUserIsAdmin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	first, err := s.Register(ctx, "alice", "secret1", "")
	require.NoError(t, err)
	require.True(t, first.Identity.IsAdmin)
	require.Equal(t, models.DefaultAvatar, first.Identity.Avatar)
	require.NotEmpty(t, first.Token)

	second, err := s.Register(ctx, "bob", "secret2", "https://example.com/bob.png")
	require.NoError(t, err)
	require.False(t, second.Identity.IsAdmin)
	require.Equal(t, "https://example.com/bob.png", second.Identity.Avatar)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "secret1", "")
	require.NoError(t, err)
	_, err = s.Register(ctx, "alice", "another", "")
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name, username, password, avatar string
	}{
		{"short username", "al", "secret1", ""},
		{"blank username", "   ", "secret1", ""},
		{"short password", "alice", "123", ""},
		{"bad avatar", "alice", "secret1", "not a url"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Register(ctx, tc.username, tc.password, tc.avatar)
			require.ErrorIs(t, err, apperr.ErrBadRequest)
		})
	}
}

func TestAuthenticate_UniformMessage(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	_, err := s.Register(ctx, "alice", "secret1", "")
	require.NoError(t, err)

	_, errUnknown := s.Authenticate(ctx, "nobody", "secret1")
	_, errWrong := s.Authenticate(ctx, "alice", "wrong-pass")
	require.ErrorIs(t, errUnknown, apperr.ErrUnauthenticated)
	require.ErrorIs(t, errWrong, apperr.ErrUnauthenticated)
	require.Equal(t, errUnknown.Error(), errWrong.Error())

	g, err := s.Authenticate(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.Equal(t, "alice", g.Identity.Username)
}

func TestResolve(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	g, err := s.Register(ctx, "alice", "secret1", "")
	require.NoError(t, err)

	id, err := s.Resolve(ctx, g.Token)
	require.NoError(t, err)
	require.Equal(t, g.Identity, id)

	_, err = s.Resolve(ctx, g.Token+"x")
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)

	_, err = s.Resolve(ctx, "")
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestResolve_Expired(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	g, err := s.Register(ctx, "alice", "secret1", "")
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(31 * 24 * time.Hour) }
	_, err = s.Resolve(ctx, g.Token)
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestResolve_WrongSecret(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	g, err := s.Register(ctx, "alice", "secret1", "")
	require.NoError(t, err)

	other := NewService(s.repo, Config{Secret: "other-secret", Issuer: "notetodo"})
	_, err = other.Resolve(ctx, g.Token)
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestResolve_DeletedUser(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	g, err := s.Register(ctx, "alice", "secret1", "")
	require.NoError(t, err)

	require.NoError(t, s.repo.DeleteUser(ctx, g.Identity.ID))
	_, err = s.Resolve(ctx, g.Token)
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestUpdateAvatar(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	g, err := s.Register(ctx, "alice", "secret1", "")
	require.NoError(t, err)

	_, err = s.UpdateAvatar(ctx, g.Identity.ID, "ftp//broken")
	require.ErrorIs(t, err, apperr.ErrBadRequest)

	id, err := s.UpdateAvatar(ctx, g.Identity.ID, "https://example.com/a.png")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/a.png", id.Avatar)

	resolved, err := s.Resolve(ctx, g.Token)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/a.png", resolved.Avatar)
}
