package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/starford/notetodo/internal/models"
)

const notebookColumns = `id, owner_id, title, description, note_ids, created_at, updated_at`

func scanNotebook(row scanner) (models.Notebook, error) {
	var (
		nb               models.Notebook
		noteIDs          string
		created, updated time.Time
	)
	if err := row.Scan(&nb.ID, &nb.Owner, &nb.Title, &nb.Description, &noteIDs, &created, &updated); err != nil {
		return models.Notebook{}, err
	}
	if err := json.Unmarshal([]byte(noteIDs), &nb.Notes); err != nil {
		return models.Notebook{}, fmt.Errorf("store: decode note ids of %s: %w", nb.ID, err)
	}
	if nb.Notes == nil {
		nb.Notes = []string{}
	}
	nb.CreatedAt = created.UTC()
	nb.UpdatedAt = updated.UTC()
	return nb, nil
}

func encodeNoteIDs(ids []string) string {
	if ids == nil {
		ids = []string{}
	}
	b, _ := json.Marshal(ids)
	return string(b)
}

// CreateNotebook inserts nb.
func (s *Queries) CreateNotebook(ctx context.Context, nb models.Notebook) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO notebooks (id, owner_id, title, description, note_ids, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, nb.ID, nb.Owner, nb.Title, nb.Description, encodeNoteIDs(nb.Notes), nb.CreatedAt.UTC(), nb.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("store: create notebook: %w", err)
	}
	return nil
}

// GetNotebook returns the notebook with the given id regardless of owner.
func (s *Queries) GetNotebook(ctx context.Context, id string) (models.Notebook, error) {
	nb, err := scanNotebook(s.q.QueryRowContext(ctx, `SELECT `+notebookColumns+` FROM notebooks WHERE id = ?`, id))
	if err != nil {
		return models.Notebook{}, mapNotFound(err)
	}
	return nb, nil
}

// ListNotebooks returns every notebook owned by ownerID, most recently updated first.
func (s *Queries) ListNotebooks(ctx context.Context, ownerID string) ([]models.Notebook, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+notebookColumns+` FROM notebooks
		WHERE owner_id = ?
		ORDER BY updated_at DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("store: list notebooks: %w", err)
	}
	defer rows.Close()

	out := []models.Notebook{}
	for rows.Next() {
		nb, err := scanNotebook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, nb)
	}
	return out, rows.Err()
}

// UpdateNotebook replaces the whole notebook document, member list included.
func (s *Queries) UpdateNotebook(ctx context.Context, nb models.Notebook) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE notebooks SET title = ?, description = ?, note_ids = ?, updated_at = ?
		WHERE id = ?
	`, nb.Title, nb.Description, encodeNoteIDs(nb.Notes), nb.UpdatedAt.UTC(), nb.ID)
	if err != nil {
		return fmt.Errorf("store: update notebook: %w", err)
	}
	return requireAffected(res)
}

// DeleteNotebook removes a notebook. Member notes are not touched.
func (s *Queries) DeleteNotebook(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM notebooks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete notebook: %w", err)
	}
	return requireAffected(res)
}
