package noteservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/starford/notetodo/internal/apperr"
	"github.com/starford/notetodo/internal/models"
	"github.com/starford/notetodo/internal/store"
	"github.com/starford/notetodo/pkg/idx"
)

// ListNotebooks returns the notebooks of ownerID, most recently updated first.
func (s *Service) ListNotebooks(ctx context.Context, ownerID string) ([]models.Notebook, error) {
	return s.db.ListNotebooks(ctx, ownerID)
}

// GetNotebook returns a notebook with its member notes populated.
func (s *Service) GetNotebook(ctx context.Context, id, ownerID string) (models.NotebookDetail, error) {
	nb, err := getNotebook(ctx, s.db, id, ownerID)
	if err != nil {
		return models.NotebookDetail{}, err
	}
	notes, err := s.db.NotesByID(ctx, nb.Notes)
	if err != nil {
		return models.NotebookDetail{}, err
	}
	return models.NotebookDetail{Notebook: nb, Notes: notes}, nil
}

// CreateNotebook stores a new, empty notebook for ownerID.
func (s *Service) CreateNotebook(ctx context.Context, ownerID, title, description string) (models.Notebook, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Notebook{}, apperr.BadRequest("title is required")
	}
	now := s.stamp()
	nb := models.Notebook{
		ID:          idx.NewAt(now),
		Title:       title,
		Description: description,
		Owner:       ownerID,
		Notes:       []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.CreateNotebook(ctx, nb); err != nil {
		return models.Notebook{}, fmt.Errorf("create notebook: %w", err)
	}
	return nb, nil
}

// UpdateNotebook merges the present fields of p. Membership is changed only
// through AttachNote and DetachNote.
func (s *Service) UpdateNotebook(ctx context.Context, id, ownerID string, p models.NotebookPatch) (models.Notebook, error) {
	nb, err := getNotebook(ctx, s.db, id, ownerID)
	if err != nil {
		return models.Notebook{}, err
	}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return models.Notebook{}, apperr.BadRequest("title cannot be empty")
		}
		nb.Title = title
	}
	if p.Description != nil {
		nb.Description = *p.Description
	}
	nb.UpdatedAt = s.stamp()
	if err := s.db.UpdateNotebook(ctx, nb); err != nil {
		return models.Notebook{}, fmt.Errorf("update notebook: %w", err)
	}
	return nb, nil
}

// DeleteNotebook removes a notebook and detaches its notes. Notes survive.
func (s *Service) DeleteNotebook(ctx context.Context, id, ownerID string) error {
	return s.db.WithTx(ctx, func(q *store.Queries) error {
		nb, err := getNotebook(ctx, q, id, ownerID)
		if err != nil {
			return err
		}
		if _, err := cascadeOnNotebookDelete(ctx, q, nb.ID); err != nil {
			return err
		}
		return q.DeleteNotebook(ctx, nb.ID)
	})
}

// AttachNote adds a note to a notebook. A note filed in another notebook is
// moved, so it never belongs to two notebooks at once.
func (s *Service) AttachNote(ctx context.Context, notebookID, noteID, ownerID string) (models.Notebook, error) {
	var out models.Notebook
	err := s.db.WithTx(ctx, func(q *store.Queries) error {
		nb, err := getNotebook(ctx, q, notebookID, ownerID)
		if err != nil {
			return err
		}
		n, err := getNote(ctx, q, noteID, ownerID)
		if err != nil {
			return err
		}
		if nb.Contains(n.ID) {
			return apperr.BadRequest("note is already in this notebook")
		}
		if n.Notebook != nil && *n.Notebook != nb.ID {
			if err := s.removeMember(ctx, q, *n.Notebook, n.ID); err != nil {
				return err
			}
		}

		nb.Notes = append(nb.Notes, n.ID)
		nb.UpdatedAt = s.stamp()
		if err := q.UpdateNotebook(ctx, nb); err != nil {
			return err
		}
		if err := q.SetNoteNotebook(ctx, n.ID, &nb.ID); err != nil {
			return err
		}
		out = nb
		return nil
	})
	return out, err
}

// DetachNote removes a note from a notebook and clears its back-reference.
func (s *Service) DetachNote(ctx context.Context, notebookID, noteID, ownerID string) (models.Notebook, error) {
	var out models.Notebook
	err := s.db.WithTx(ctx, func(q *store.Queries) error {
		nb, err := getNotebook(ctx, q, notebookID, ownerID)
		if err != nil {
			return err
		}
		n, err := getNote(ctx, q, noteID, ownerID)
		if err != nil {
			return err
		}
		if !nb.Contains(n.ID) {
			return apperr.BadRequest("note is not in this notebook")
		}

		nb.Notes = without(nb.Notes, n.ID)
		nb.UpdatedAt = s.stamp()
		if err := q.UpdateNotebook(ctx, nb); err != nil {
			return err
		}
		if err := q.SetNoteNotebook(ctx, n.ID, nil); err != nil {
			return err
		}
		out = nb
		return nil
	})
	return out, err
}

// removeMember drops noteID from the member list of notebookID. A dangling
// notebook reference is ignored.
func (s *Service) removeMember(ctx context.Context, q *store.Queries, notebookID, noteID string) error {
	nb, err := q.GetNotebook(ctx, notebookID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	nb.Notes = without(nb.Notes, noteID)
	nb.UpdatedAt = s.stamp()
	return q.UpdateNotebook(ctx, nb)
}

// cascadeOnNotebookDelete clears the notebook reference on every note that points at notebookID.
func cascadeOnNotebookDelete(ctx context.Context, q *store.Queries, notebookID string) (int64, error) {
	return q.ClearNotebookRefs(ctx, notebookID)
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
