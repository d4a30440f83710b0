package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/notetodo/internal/models"
)

// ListNotebooks handles GET /api/notebooks.
//
//	@Summary		List own notebooks, most recently updated first
//	@Tags			notebooks
//	@Produce		json
//	@Success		200	{object}	envelope{data=[]models.Notebook}
//	@Security		BearerAuth
//	@Router			/notebooks [get]
func (h *Handler) ListNotebooks(w http.ResponseWriter, r *http.Request) {
	nbs, err := h.notes.ListNotebooks(r.Context(), identity(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	list(w, nbs)
}

// GetNotebook handles GET /api/notebooks/{id}.
//
//	@Summary		Get a notebook with its notes
//	@Tags			notebooks
//	@Produce		json
//	@Param			id	path		string	true	"Notebook id"
//	@Success		200	{object}	envelope{data=models.NotebookDetail}
//	@Failure		403	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notebooks/{id} [get]
func (h *Handler) GetNotebook(w http.ResponseWriter, r *http.Request) {
	nb, err := h.notes.GetNotebook(r.Context(), chi.URLParam(r, "id"), identity(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusOK, nb)
}

// CreateNotebook handles POST /api/notebooks.
//
//	@Summary		Create a notebook
//	@Tags			notebooks
//	@Accept			json
//	@Produce		json
//	@Param			body	body		NotebookRequest	true	"Notebook to create"
//	@Success		201		{object}	envelope{data=models.Notebook}
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notebooks [post]
func (h *Handler) CreateNotebook(w http.ResponseWriter, r *http.Request) {
	var req NotebookRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	var title, desc string
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		desc = *req.Description
	}
	nb, err := h.notes.CreateNotebook(r.Context(), identity(r).ID, title, desc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusCreated, nb)
}

// UpdateNotebook handles PUT /api/notebooks/{id}.
//
//	@Summary		Update a notebook's title or description
//	@Tags			notebooks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Notebook id"
//	@Param			body	body		NotebookRequest	true	"Fields to change"
//	@Success		200		{object}	envelope{data=models.Notebook}
//	@Failure		400		{object}	errResponse
//	@Failure		403		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notebooks/{id} [put]
func (h *Handler) UpdateNotebook(w http.ResponseWriter, r *http.Request) {
	var req NotebookRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	patch := models.NotebookPatch{Title: req.Title, Description: req.Description}
	nb, err := h.notes.UpdateNotebook(r.Context(), chi.URLParam(r, "id"), identity(r).ID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusOK, nb)
}

// DeleteNotebook handles DELETE /api/notebooks/{id}.
//
//	@Summary		Delete a notebook; its notes are kept and unfiled
//	@Tags			notebooks
//	@Produce		json
//	@Param			id	path		string	true	"Notebook id"
//	@Success		200	{object}	envelope
//	@Failure		403	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notebooks/{id} [delete]
func (h *Handler) DeleteNotebook(w http.ResponseWriter, r *http.Request) {
	if err := h.notes.DeleteNotebook(r.Context(), chi.URLParam(r, "id"), identity(r).ID); err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusOK, struct{}{})
}

// AttachNote handles PUT /api/notebooks/{id}/notes/{noteId}.
//
//	@Summary		Add a note to a notebook
//	@Tags			notebooks
//	@Produce		json
//	@Param			id		path		string	true	"Notebook id"
//	@Param			noteId	path		string	true	"Note id"
//	@Success		200		{object}	envelope{data=models.Notebook}
//	@Failure		400		{object}	errResponse
//	@Failure		403		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notebooks/{id}/notes/{noteId} [put]
func (h *Handler) AttachNote(w http.ResponseWriter, r *http.Request) {
	nb, err := h.notes.AttachNote(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "noteId"), identity(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusOK, nb)
}

// DetachNote handles DELETE /api/notebooks/{id}/notes/{noteId}.
//
//	@Summary		Remove a note from a notebook
//	@Tags			notebooks
//	@Produce		json
//	@Param			id		path		string	true	"Notebook id"
//	@Param			noteId	path		string	true	"Note id"
//	@Success		200		{object}	envelope{data=models.Notebook}
//	@Failure		400		{object}	errResponse
//	@Failure		403		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notebooks/{id}/notes/{noteId} [delete]
func (h *Handler) DetachNote(w http.ResponseWriter, r *http.Request) {
	nb, err := h.notes.DetachNote(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "noteId"), identity(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusOK, nb)
}
