package client

import (
	"context"
	"net/http"
	"net/url"
)

// ListNotes returns the notes of the signed-in user, newest first.
func (s *Session) ListNotes(ctx context.Context) (*Envelope[[]Note], error) {
	return authCall[[]Note](ctx, s, http.MethodGet, "/notes", nil, http.StatusOK)
}

// GetNote returns one note. Another user's note fails with ErrForbidden.
func (s *Session) GetNote(ctx context.Context, id string) (*Envelope[Note], error) {
	return authCall[Note](ctx, s, http.MethodGet, "/notes/"+url.PathEscape(id), nil, http.StatusOK)
}

// CreateNote creates a note. Title is required.
func (s *Session) CreateNote(ctx context.Context, in NoteInput) (*Envelope[Note], error) {
	return authCall[Note](ctx, s, http.MethodPost, "/notes", in, http.StatusCreated)
}

// UpdateNote changes the non-nil fields of in.
func (s *Session) UpdateNote(ctx context.Context, id string, in NoteInput) (*Envelope[Note], error) {
	return authCall[Note](ctx, s, http.MethodPut, "/notes/"+url.PathEscape(id), in, http.StatusOK)
}

// DeleteNote deletes a note and removes it from its notebook.
func (s *Session) DeleteNote(ctx context.Context, id string) (*Envelope[Empty], error) {
	return authCall[Empty](ctx, s, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, http.StatusOK)
}

// ListNotebooks returns the notebooks of the signed-in user, most recently updated first.
func (s *Session) ListNotebooks(ctx context.Context) (*Envelope[[]Notebook], error) {
	return authCall[[]Notebook](ctx, s, http.MethodGet, "/notebooks", nil, http.StatusOK)
}

// GetNotebook returns the notebook with its notes populated.
func (s *Session) GetNotebook(ctx context.Context, id string) (*Envelope[NotebookDetail], error) {
	return authCall[NotebookDetail](ctx, s, http.MethodGet, "/notebooks/"+url.PathEscape(id), nil, http.StatusOK)
}

// CreateNotebook creates an empty notebook. Title is required.
func (s *Session) CreateNotebook(ctx context.Context, in NotebookInput) (*Envelope[Notebook], error) {
	return authCall[Notebook](ctx, s, http.MethodPost, "/notebooks", in, http.StatusCreated)
}

// UpdateNotebook changes the non-nil fields of in.
func (s *Session) UpdateNotebook(ctx context.Context, id string, in NotebookInput) (*Envelope[Notebook], error) {
	return authCall[Notebook](ctx, s, http.MethodPut, "/notebooks/"+url.PathEscape(id), in, http.StatusOK)
}

// DeleteNotebook deletes a notebook. Its notes are kept and unfiled.
func (s *Session) DeleteNotebook(ctx context.Context, id string) (*Envelope[Empty], error) {
	return authCall[Empty](ctx, s, http.MethodDelete, "/notebooks/"+url.PathEscape(id), nil, http.StatusOK)
}

// AttachNote adds a note to a notebook and returns the updated notebook.
func (s *Session) AttachNote(ctx context.Context, notebookID, noteID string) (*Envelope[Notebook], error) {
	return authCall[Notebook](ctx, s, http.MethodPut, membershipPath(notebookID, noteID), nil, http.StatusOK)
}

// DetachNote removes a note from a notebook and returns the updated notebook.
func (s *Session) DetachNote(ctx context.Context, notebookID, noteID string) (*Envelope[Notebook], error) {
	return authCall[Notebook](ctx, s, http.MethodDelete, membershipPath(notebookID, noteID), nil, http.StatusOK)
}

func membershipPath(notebookID, noteID string) string {
	return "/notebooks/" + url.PathEscape(notebookID) + "/notes/" + url.PathEscape(noteID)
}
