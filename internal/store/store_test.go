package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/starford/notetodo/internal/models"
	"github.com/starford/notetodo/internal/store"
	"github.com/starford/notetodo/internal/testutil"
	"github.com/starford/notetodo/pkg/idx"
)

func TestUsers_DuplicateUsername(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()

	testutil.SeedUser(t, db, "alice", true)
	err := db.CreateUser(ctx, models.User{ID: idx.New(), Username: "alice", PasswordHash: "h", CreatedAt: time.Now()})
	require.ErrorIs(t, err, store.ErrDuplicate)

	n, err := db.CountUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestUsers_HashOnlyOnCredentialRead(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, db, "bob", false)

	got, err := db.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, got.PasswordHash)

	byName, err := db.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, "x", byName.PasswordHash)

	_, err = db.GetUser(ctx, idx.New())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestNotes_ListOrderAndOwnerScope(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	alice := testutil.SeedUser(t, db, "alice", true)
	bob := testutil.SeedUser(t, db, "bob", false)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, owner := range []string{alice.ID, alice.ID, bob.ID} {
		ts := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.CreateNote(ctx, models.Note{
			ID: idx.New(), Owner: owner, Title: "n", CreatedAt: ts, UpdatedAt: ts,
		}))
	}

	notes, err := db.ListNotes(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.True(t, notes[0].CreatedAt.After(notes[1].CreatedAt))
	for _, n := range notes {
		require.Equal(t, alice.ID, n.Owner)
	}
}

func TestNotebooks_RoundTripAndClearRefs(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, db, "carol", false)
	now := time.Now().UTC()

	nb := models.Notebook{ID: idx.New(), Owner: u.ID, Title: "Ideas", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, db.CreateNotebook(ctx, nb))

	note := models.Note{ID: idx.New(), Owner: u.ID, Title: "a", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, db.CreateNote(ctx, note))

	err := db.WithTx(ctx, func(q *store.Queries) error {
		nb.Notes = append(nb.Notes, note.ID)
		if err := q.UpdateNotebook(ctx, nb); err != nil {
			return err
		}
		return q.SetNoteNotebook(ctx, note.ID, &nb.ID)
	})
	require.NoError(t, err)

	got, err := db.GetNotebook(ctx, nb.ID)
	require.NoError(t, err)
	require.Equal(t, []string{note.ID}, got.Notes)

	n, err := db.ClearNotebookRefs(ctx, nb.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	gotNote, err := db.GetNote(ctx, note.ID)
	require.NoError(t, err)
	require.Nil(t, gotNote.Notebook)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, db, "dave", false)
	now := time.Now().UTC()
	boom := errors.New("boom")

	err := db.WithTx(ctx, func(q *store.Queries) error {
		if err := q.CreateNote(ctx, models.Note{ID: idx.New(), Owner: u.ID, Title: "t", CreatedAt: now, UpdatedAt: now}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	notes, err := db.ListNotes(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, notes)
}

func TestWeights_SaveIsUpsert(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, db, "erin", false)
	now := time.Now().UTC()

	w := models.Weight{
		ID: idx.New(), Owner: u.ID, CreatedAt: now, UpdatedAt: now,
		Profile: models.WeightProfile{Height: 170, Weight: 70, Age: 30, Gender: models.GenderFemale, StartDate: now},
	}
	require.NoError(t, db.SaveWeight(ctx, w))

	w.Records = []models.WeightRecord{{ID: idx.New(), Date: now, Weight: 69.5, Note: "morning"}}
	require.NoError(t, db.SaveWeight(ctx, w))

	got, err := db.GetWeight(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, w.ID, got.ID)
	require.Len(t, got.Records, 1)
	require.Equal(t, 69.5, got.Records[0].Weight)

	require.NoError(t, db.DeleteWeight(ctx, u.ID))
	require.NoError(t, db.DeleteWeight(ctx, u.ID))
	_, err = db.GetWeight(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteUser_CascadesOwnedRows(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, db, "frank", false)
	now := time.Now().UTC()
	require.NoError(t, db.CreateNote(ctx, models.Note{ID: idx.New(), Owner: u.ID, Title: "t", CreatedAt: now, UpdatedAt: now}))

	require.NoError(t, db.DeleteUser(ctx, u.ID))
	notes, err := db.ListNotes(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, notes)
}
