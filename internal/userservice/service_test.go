package userservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starford/notetodo/internal/apperr"
	"github.com/starford/notetodo/internal/models"
	"github.com/starford/notetodo/internal/testutil"
	"github.com/starford/notetodo/internal/userservice"
	"github.com/starford/notetodo/pkg/idx"
)

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T) (*userservice.Service, models.Identity, models.Identity) {
	t.Helper()
	db := testutil.TestDB(t)
	admin := testutil.SeedUser(t, db, "admin", true)
	user := testutil.SeedUser(t, db, "user", false)
	return userservice.NewService(db), admin.Identity(), user.Identity()
}

func TestList_AdminOnly(t *testing.T) {
	svc, admin, user := setup(t)
	ctx := context.Background()

	_, err := svc.List(ctx, user)
	require.ErrorIs(t, err, apperr.ErrForbidden)

	users, err := svc.List(ctx, admin)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		require.Empty(t, u.PasswordHash)
	}
}

func TestGet_SelfOrAdmin(t *testing.T) {
	svc, admin, user := setup(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, user, admin.ID)
	require.ErrorIs(t, err, apperr.ErrForbidden)

	self, err := svc.Get(ctx, user, user.ID)
	require.NoError(t, err)
	require.Equal(t, "user", self.Username)

	other, err := svc.Get(ctx, admin, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, other.ID)

	_, err = svc.Get(ctx, admin, idx.New())
	require.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = svc.Get(ctx, admin, "bogus")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdate_NonAdminCannotPromote(t *testing.T) {
	svc, _, user := setup(t)
	ctx := context.Background()

	u, err := svc.Update(ctx, user, user.ID, userservice.Patch{Username: ptr("renamed"), IsAdmin: ptr(true)})
	require.NoError(t, err)
	require.Equal(t, "renamed", u.Username)
	require.False(t, u.IsAdmin)
}

func TestUpdate_AdminCanPromote(t *testing.T) {
	svc, admin, user := setup(t)
	u, err := svc.Update(context.Background(), admin, user.ID, userservice.Patch{IsAdmin: ptr(true)})
	require.NoError(t, err)
	require.True(t, u.IsAdmin)
}

func TestUpdate_Rules(t *testing.T) {
	svc, admin, user := setup(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, user, admin.ID, userservice.Patch{Username: ptr("hijack")})
	require.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.Update(ctx, user, user.ID, userservice.Patch{Username: ptr("admin")})
	require.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Update(ctx, user, user.ID, userservice.Patch{Username: ptr("x")})
	require.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestDelete(t *testing.T) {
	svc, admin, user := setup(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.Delete(ctx, user, admin.ID), apperr.ErrForbidden)
	require.ErrorIs(t, svc.Delete(ctx, admin, admin.ID), apperr.ErrBadRequest)
	require.NoError(t, svc.Delete(ctx, admin, user.ID))
	require.ErrorIs(t, svc.Delete(ctx, admin, user.ID), apperr.ErrNotFound)
}
