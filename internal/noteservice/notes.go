package noteservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/starford/notetodo/internal/apperr"
	"github.com/starford/notetodo/internal/models"
	"github.com/starford/notetodo/internal/store"
	"github.com/starford/notetodo/pkg/idx"
)

// NoteInput holds the fields accepted when creating a note.
type NoteInput struct {
	Title     string
	Content   string
	Completed bool
	// CreatedAt overrides the creation time when non-nil.
	CreatedAt *time.Time
}

// ListNotes returns the notes of ownerID, newest first.
func (s *Service) ListNotes(ctx context.Context, ownerID string) ([]models.Note, error) {
	return s.db.ListNotes(ctx, ownerID)
}

// GetNote returns a single note owned by ownerID.
func (s *Service) GetNote(ctx context.Context, id, ownerID string) (models.Note, error) {
	return getNote(ctx, s.db, id, ownerID)
}

// CreateNote stores a new note for ownerID.
func (s *Service) CreateNote(ctx context.Context, ownerID string, in NoteInput) (models.Note, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Note{}, apperr.BadRequest("title is required")
	}
	now := s.stamp()
	n := models.Note{
		ID:        idx.NewAt(now),
		Title:     title,
		Content:   in.Content,
		Completed: in.Completed,
		Owner:     ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.CreatedAt != nil {
		n.CreatedAt = in.CreatedAt.UTC()
	}
	if err := s.db.CreateNote(ctx, n); err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

// UpdateNote merges the present fields of p into the note and stamps updatedAt.
func (s *Service) UpdateNote(ctx context.Context, id, ownerID string, p models.NotePatch) (models.Note, error) {
	n, err := getNote(ctx, s.db, id, ownerID)
	if err != nil {
		return models.Note{}, err
	}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return models.Note{}, apperr.BadRequest("title cannot be empty")
		}
		n.Title = title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Completed != nil {
		n.Completed = *p.Completed
	}
	if p.CreatedAt != nil {
		n.CreatedAt = p.CreatedAt.UTC()
	}
	n.UpdatedAt = s.stamp()
	if err := s.db.UpdateNote(ctx, n); err != nil {
		return models.Note{}, fmt.Errorf("update note: %w", err)
	}
	return n, nil
}

// DeleteNote removes a note, dropping it from its notebook first.
func (s *Service) DeleteNote(ctx context.Context, id, ownerID string) error {
	return s.db.WithTx(ctx, func(q *store.Queries) error {
		n, err := getNote(ctx, q, id, ownerID)
		if err != nil {
			return err
		}
		if n.Notebook != nil {
			if err := s.removeMember(ctx, q, *n.Notebook, n.ID); err != nil {
				return err
			}
		}
		return q.DeleteNote(ctx, n.ID)
	})
}
