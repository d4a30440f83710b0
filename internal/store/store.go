package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/starford/notetodo/internal/models"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate")
)

// Repository lists the operations the services depend on.
// Consumers should depend on this interface rather than the concrete *Queries type.
type Repository interface {
	CountUsers(ctx context.Context) (int, error)
	CreateUser(ctx context.Context, u models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, u models.User) error
	DeleteUser(ctx context.Context, id string) error

	CreateNote(ctx context.Context, n models.Note) error
	GetNote(ctx context.Context, id string) (models.Note, error)
	ListNotes(ctx context.Context, ownerID string) ([]models.Note, error)
	NotesByID(ctx context.Context, ids []string) ([]models.Note, error)
	UpdateNote(ctx context.Context, n models.Note) error
	SetNoteNotebook(ctx context.Context, noteID string, notebookID *string) error
	ClearNotebookRefs(ctx context.Context, notebookID string) (int64, error)
	DeleteNote(ctx context.Context, id string) error

	CreateNotebook(ctx context.Context, nb models.Notebook) error
	GetNotebook(ctx context.Context, id string) (models.Notebook, error)
	ListNotebooks(ctx context.Context, ownerID string) ([]models.Notebook, error)
	UpdateNotebook(ctx context.Context, nb models.Notebook) error
	DeleteNotebook(ctx context.Context, id string) error

	GetWeight(ctx context.Context, ownerID string) (models.Weight, error)
	SaveWeight(ctx context.Context, w models.Weight) error
	DeleteWeight(ctx context.Context, ownerID string) error
}

// Verify *Queries satisfies Repository at compile time.
var _ Repository = (*Queries)(nil)

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func mapConstraint(err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicate
	}
	return err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
