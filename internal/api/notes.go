package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/notetodo/internal/models"
	"github.com/starford/notetodo/internal/noteservice"
)

// ListNotes handles GET /api/notes.
//
//	@Summary		List own notes, newest first
//	@Tags			notes
//	@Produce		json
//	@Success		200	{object}	envelope{data=[]models.Note}
//	@Failure		401	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.ListNotes(r.Context(), identity(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	list(w, notes)
}

// GetNote handles GET /api/notes/{id}.
//
//	@Summary		Get a single note
//	@Tags			notes
//	@Produce		json
//	@Param			id	path		string	true	"Note id"
//	@Success		200	{object}	envelope{data=models.Note}
//	@Failure		403	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [get]
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	n, err := h.notes.GetNote(r.Context(), chi.URLParam(r, "id"), identity(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusOK, n)
}

// CreateNote handles POST /api/notes.
//
//	@Summary		Create a note
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		NoteRequest	true	"Note to create"
//	@Success		201		{object}	envelope{data=models.Note}
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	in := noteservice.NoteInput{CreatedAt: optionalTime(req.CreatedAt)}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Content != nil {
		in.Content = *req.Content
	}
	if req.Completed != nil {
		in.Completed = *req.Completed
	}
	n, err := h.notes.CreateNote(r.Context(), identity(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusCreated, n)
}

// UpdateNote handles PUT /api/notes/{id}.
//
//	@Summary		Update a note; absent fields are kept
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Note id"
//	@Param			body	body		NoteRequest	true	"Fields to change"
//	@Success		200		{object}	envelope{data=models.Note}
//	@Failure		400		{object}	errResponse
//	@Failure		403		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [put]
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	patch := models.NotePatch{
		Title:     req.Title,
		Content:   req.Content,
		Completed: req.Completed,
		CreatedAt: optionalTime(req.CreatedAt),
	}
	n, err := h.notes.UpdateNote(r.Context(), chi.URLParam(r, "id"), identity(r).ID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusOK, n)
}

// DeleteNote handles DELETE /api/notes/{id}.
//
//	@Summary		Delete a note
//	@Tags			notes
//	@Produce		json
//	@Param			id	path		string	true	"Note id"
//	@Success		200	{object}	envelope
//	@Failure		403	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [delete]
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.notes.DeleteNote(r.Context(), chi.URLParam(r, "id"), identity(r).ID); err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusOK, struct{}{})
}
