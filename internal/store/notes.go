package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/starford/notetodo/internal/models"
)

const noteColumns = `id, owner_id, title, content, completed, notebook_id, created_at, updated_at`

func scanNote(row scanner) (models.Note, error) {
	var (
		n                models.Note
		notebook         sql.NullString
		created, updated time.Time
	)
	if err := row.Scan(&n.ID, &n.Owner, &n.Title, &n.Content, &n.Completed, &notebook, &created, &updated); err != nil {
		return models.Note{}, err
	}
	if notebook.Valid {
		v := notebook.String
		n.Notebook = &v
	}
	n.CreatedAt = created.UTC()
	n.UpdatedAt = updated.UTC()
	return n, nil
}

func collectNotes(rows *sql.Rows) ([]models.Note, error) {
	defer rows.Close()
	out := []models.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// CreateNote inserts n.
func (s *Queries) CreateNote(ctx context.Context, n models.Note) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO notes (id, owner_id, title, content, completed, notebook_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, n.ID, n.Owner, n.Title, n.Content, n.Completed, nullable(n.Notebook), n.CreatedAt.UTC(), n.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("store: create note: %w", err)
	}
	return nil
}

// GetNote returns the note with the given id regardless of owner.
func (s *Queries) GetNote(ctx context.Context, id string) (models.Note, error) {
	n, err := scanNote(s.q.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id))
	if err != nil {
		return models.Note{}, mapNotFound(err)
	}
	return n, nil
}

// ListNotes returns every note owned by ownerID, newest first.
func (s *Queries) ListNotes(ctx context.Context, ownerID string) ([]models.Note, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+noteColumns+` FROM notes
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("store: list notes: %w", err)
	}
	return collectNotes(rows)
}

// NotesByID returns the notes among ids that still exist, in the order of ids.
func (s *Queries) NotesByID(ctx context.Context, ids []string) ([]models.Note, error) {
	if len(ids) == 0 {
		return []models.Note{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("store: notes by id: %w", err)
	}
	found, err := collectNotes(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Note, len(found))
	for _, n := range found {
		byID[n.ID] = n
	}
	out := make([]models.Note, 0, len(found))
	for _, id := range ids {
		if n, ok := byID[id]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// UpdateNote writes the mutable fields of n. The notebook reference is not touched here.
func (s *Queries) UpdateNote(ctx context.Context, n models.Note) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE notes SET title = ?, content = ?, completed = ?, created_at = ?, updated_at = ?
		WHERE id = ?
	`, n.Title, n.Content, n.Completed, n.CreatedAt.UTC(), n.UpdatedAt.UTC(), n.ID)
	if err != nil {
		return fmt.Errorf("store: update note: %w", err)
	}
	return requireAffected(res)
}

// SetNoteNotebook sets or clears (nil) the notebook reference of a note.
func (s *Queries) SetNoteNotebook(ctx context.Context, noteID string, notebookID *string) error {
	res, err := s.q.ExecContext(ctx, `UPDATE notes SET notebook_id = ? WHERE id = ?`, nullable(notebookID), noteID)
	if err != nil {
		return fmt.Errorf("store: set note notebook: %w", err)
	}
	return requireAffected(res)
}

// ClearNotebookRefs clears the notebook reference of every note pointing at notebookID.
func (s *Queries) ClearNotebookRefs(ctx context.Context, notebookID string) (int64, error) {
	res, err := s.q.ExecContext(ctx, `UPDATE notes SET notebook_id = NULL WHERE notebook_id = ?`, notebookID)
	if err != nil {
		return 0, fmt.Errorf("store: clear notebook refs: %w", err)
	}
	return res.RowsAffected()
}

// DeleteNote removes a note.
func (s *Queries) DeleteNote(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete note: %w", err)
	}
	return requireAffected(res)
}
