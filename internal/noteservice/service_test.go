package noteservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/starford/notetodo/internal/apperr"
	"github.com/starford/notetodo/internal/models"
	"github.com/starford/notetodo/internal/noteservice"
	"github.com/starford/notetodo/internal/testutil"
	"github.com/starford/notetodo/pkg/idx"
)

type fixture struct {
	svc        *noteservice.Service
	alice, bob models.User
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testutil.TestDB(t)
	clock := testutil.Clock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	return fixture{
		svc:   noteservice.NewService(db, noteservice.WithClock(clock)),
		alice: testutil.SeedUser(t, db, "alice", true),
		bob:   testutil.SeedUser(t, db, "bob", false),
	}
}

func ptr[T any](v T) *T { return &v }

func TestCreateNote_RequiresTitle(t *testing.T) {
	f := setup(t)
	_, err := f.svc.CreateNote(context.Background(), f.alice.ID, noteservice.NoteInput{Title: "   "})
	require.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.svc.CreateNote(ctx, f.alice.ID, noteservice.NoteInput{Title: " Groceries ", Content: "milk"})
	require.NoError(t, err)
	require.Equal(t, "Groceries", created.Title)
	require.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := f.svc.GetNote(ctx, created.ID, f.alice.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "milk", got.Content)
	require.Nil(t, got.Notebook)
}

func TestCreateNote_CreatedAtOverride(t *testing.T) {
	f := setup(t)
	when := time.Date(2020, 5, 5, 0, 0, 0, 0, time.UTC)
	n, err := f.svc.CreateNote(context.Background(), f.alice.ID, noteservice.NoteInput{Title: "old", CreatedAt: &when})
	require.NoError(t, err)
	require.True(t, n.CreatedAt.Equal(when))
}

func TestNotes_OwnershipScoped(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	n, err := f.svc.CreateNote(ctx, f.alice.ID, noteservice.NoteInput{Title: "private"})
	require.NoError(t, err)

	_, err = f.svc.GetNote(ctx, n.ID, f.bob.ID)
	require.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = f.svc.UpdateNote(ctx, n.ID, f.bob.ID, models.NotePatch{Title: ptr("mine")})
	require.ErrorIs(t, err, apperr.ErrForbidden)
	require.ErrorIs(t, f.svc.DeleteNote(ctx, n.ID, f.bob.ID), apperr.ErrForbidden)

	list, err := f.svc.ListNotes(ctx, f.bob.ID)
	require.NoError(t, err)
	require.Empty(t, list)

	got, err := f.svc.GetNote(ctx, n.ID, f.alice.ID)
	require.NoError(t, err)
	require.Equal(t, "private", got.Title)
}

func TestNotebooks_OwnershipScoped(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	nb, err := f.svc.CreateNotebook(ctx, f.alice.ID, "Private", "alice only")
	require.NoError(t, err)
	n, err := f.svc.CreateNote(ctx, f.alice.ID, noteservice.NoteInput{Title: "member"})
	require.NoError(t, err)
	_, err = f.svc.AttachNote(ctx, nb.ID, n.ID, f.alice.ID)
	require.NoError(t, err)

	_, err = f.svc.GetNotebook(ctx, nb.ID, f.bob.ID)
	require.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = f.svc.UpdateNotebook(ctx, nb.ID, f.bob.ID, models.NotebookPatch{Title: ptr("mine")})
	require.ErrorIs(t, err, apperr.ErrForbidden)
	require.ErrorIs(t, f.svc.DeleteNotebook(ctx, nb.ID, f.bob.ID), apperr.ErrForbidden)

	list, err := f.svc.ListNotebooks(ctx, f.bob.ID)
	require.NoError(t, err)
	require.Empty(t, list)

	got, err := f.svc.GetNotebook(ctx, nb.ID, f.alice.ID)
	require.NoError(t, err)
	require.Equal(t, "Private", got.Title)
	require.Len(t, got.Notes, 1)
	require.Equal(t, n.ID, got.Notes[0].ID)

	member, err := f.svc.GetNote(ctx, n.ID, f.alice.ID)
	require.NoError(t, err)
	require.NotNil(t, member.Notebook)
	require.Equal(t, nb.ID, *member.Notebook)
}

func TestGetNote_MissingAndMalformed(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.svc.GetNote(ctx, idx.New(), f.alice.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = f.svc.GetNote(ctx, "not-an-id", f.alice.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListNotes_NewestFirst(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for _, title := range []string{"first", "second", "third"} {
		_, err := f.svc.CreateNote(ctx, f.alice.ID, noteservice.NoteInput{Title: title})
		require.NoError(t, err)
	}
	list, err := f.svc.ListNotes(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "third", list[0].Title)
	require.Equal(t, "first", list[2].Title)
}

func TestUpdateNote_MergesPresentFields(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	n, err := f.svc.CreateNote(ctx, f.alice.ID, noteservice.NoteInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	updated, err := f.svc.UpdateNote(ctx, n.ID, f.alice.ID, models.NotePatch{Completed: ptr(true)})
	require.NoError(t, err)
	require.Equal(t, "t", updated.Title)
	require.Equal(t, "c", updated.Content)
	require.True(t, updated.Completed)
	require.True(t, updated.UpdatedAt.After(n.UpdatedAt))

	_, err = f.svc.UpdateNote(ctx, n.ID, f.alice.ID, models.NotePatch{Title: ptr("")})
	require.ErrorIs(t, err, apperr.ErrBadRequest)

	got, err := f.svc.GetNote(ctx, n.ID, f.alice.ID)
	require.NoError(t, err)
	require.Equal(t, "t", got.Title)
}

func TestAttachDetach_RoundTrip(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	nb, err := f.svc.CreateNotebook(ctx, f.alice.ID, "Work", "")
	require.NoError(t, err)
	n, err := f.svc.CreateNote(ctx, f.alice.ID, noteservice.NoteInput{Title: "task"})
	require.NoError(t, err)

	attached, err := f.svc.AttachNote(ctx, nb.ID, n.ID, f.alice.ID)
	require.NoError(t, err)
	require.Equal(t, []string{n.ID}, attached.Notes)

	got, err := f.svc.GetNote(ctx, n.ID, f.alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Notebook)
	require.Equal(t, nb.ID, *got.Notebook)

	_, err = f.svc.AttachNote(ctx, nb.ID, n.ID, f.alice.ID)
	require.ErrorIs(t, err, apperr.ErrBadRequest)

	detail, err := f.svc.GetNotebook(ctx, nb.ID, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, detail.Notes, 1)
	require.Equal(t, "task", detail.Notes[0].Title)

	detached, err := f.svc.DetachNote(ctx, nb.ID, n.ID, f.alice.ID)
	require.NoError(t, err)
	require.Empty(t, detached.Notes)

	got, err = f.svc.GetNote(ctx, n.ID, f.alice.ID)
	require.NoError(t, err)
	require.Nil(t, got.Notebook)

	_, err = f.svc.DetachNote(ctx, nb.ID, n.ID, f.alice.ID)
	require.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestAttach_OwnershipAndMissing(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	nb, err := f.svc.CreateNotebook(ctx, f.alice.ID, "Mine", "")
	require.NoError(t, err)
	bobNote, err := f.svc.CreateNote(ctx, f.bob.ID, noteservice.NoteInput{Title: "bob's"})
	require.NoError(t, err)

	_, err = f.svc.AttachNote(ctx, nb.ID, bobNote.ID, f.alice.ID)
	require.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = f.svc.AttachNote(ctx, nb.ID, bobNote.ID, f.bob.ID)
	require.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = f.svc.AttachNote(ctx, nb.ID, idx.New(), f.alice.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := f.svc.GetNotebook(ctx, nb.ID, f.alice.ID)
	require.NoError(t, err)
	require.Empty(t, got.Notebook.Notes)
}

func TestAttach_MovesBetweenNotebooks(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a, err := f.svc.CreateNotebook(ctx, f.alice.ID, "A", "")
	require.NoError(t, err)
	b, err := f.svc.CreateNotebook(ctx, f.alice.ID, "B", "")
	require.NoError(t, err)
	n, err := f.svc.CreateNote(ctx, f.alice.ID, noteservice.NoteInput{Title: "wanderer"})
	require.NoError(t, err)

	_, err = f.svc.AttachNote(ctx, a.ID, n.ID, f.alice.ID)
	require.NoError(t, err)
	_, err = f.svc.AttachNote(ctx, b.ID, n.ID, f.alice.ID)
	require.NoError(t, err)

	gotA, err := f.svc.GetNotebook(ctx, a.ID, f.alice.ID)
	require.NoError(t, err)
	require.Empty(t, gotA.Notebook.Notes)
	gotB, err := f.svc.GetNotebook(ctx, b.ID, f.alice.ID)
	require.NoError(t, err)
	require.Equal(t, []string{n.ID}, gotB.Notebook.Notes)
}

func TestDeleteNotebook_KeepsNotes(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	nb, err := f.svc.CreateNotebook(ctx, f.alice.ID, "Temp", "")
	require.NoError(t, err)
	n, err := f.svc.CreateNote(ctx, f.alice.ID, noteservice.NoteInput{Title: "survivor"})
	require.NoError(t, err)
	_, err = f.svc.AttachNote(ctx, nb.ID, n.ID, f.alice.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteNotebook(ctx, nb.ID, f.alice.ID))

	got, err := f.svc.GetNote(ctx, n.ID, f.alice.ID)
	require.NoError(t, err)
	require.Nil(t, got.Notebook)

	_, err = f.svc.GetNotebook(ctx, nb.ID, f.alice.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteNote_LeavesNotebookConsistent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	nb, err := f.svc.CreateNotebook(ctx, f.alice.ID, "Box", "")
	require.NoError(t, err)
	n, err := f.svc.CreateNote(ctx, f.alice.ID, noteservice.NoteInput{Title: "gone"})
	require.NoError(t, err)
	_, err = f.svc.AttachNote(ctx, nb.ID, n.ID, f.alice.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteNote(ctx, n.ID, f.alice.ID))

	detail, err := f.svc.GetNotebook(ctx, nb.ID, f.alice.ID)
	require.NoError(t, err)
	require.Empty(t, detail.Notebook.Notes)
	require.Empty(t, detail.Notes)
}

func TestListNotebooks_RecentlyUpdatedFirst(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	first, err := f.svc.CreateNotebook(ctx, f.alice.ID, "first", "")
	require.NoError(t, err)
	_, err = f.svc.CreateNotebook(ctx, f.alice.ID, "second", "")
	require.NoError(t, err)

	_, err = f.svc.UpdateNotebook(ctx, first.ID, f.alice.ID, models.NotebookPatch{Description: ptr("touched")})
	require.NoError(t, err)

	list, err := f.svc.ListNotebooks(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "first", list[0].Title)
	require.Equal(t, "touched", list[0].Description)
}
