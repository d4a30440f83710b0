package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/notetodo/internal/userservice"
)

// ListUsers handles GET /api/users.
//
//	@Summary		List all users (admin)
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	envelope{data=[]models.User}
//	@Failure		403	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context(), identity(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	list(w, users)
}

// GetUser handles GET /api/users/{id}.
//
//	@Summary		Get a user (self or admin)
//	@Tags			users
//	@Produce		json
//	@Param			id	path		string	true	"User id"
//	@Success		200	{object}	envelope{data=models.User}
//	@Failure		403	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/users/{id} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), identity(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusOK, u)
}

// UpdateUser handles PUT /api/users/{id}.
//
//	@Summary		Update username or admin flag (self or admin)
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"User id"
//	@Param			body	body		UserUpdateRequest	true	"Fields to change"
//	@Success		200		{object}	envelope{data=models.User}
//	@Failure		400		{object}	errResponse
//	@Failure		403		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/users/{id} [put]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UserUpdateRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	patch := userservice.Patch{Username: req.Username, IsAdmin: req.IsAdmin}
	u, err := h.users.Update(r.Context(), identity(r), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusOK, u)
}

// DeleteUser handles DELETE /api/users/{id}.
//
//	@Summary		Delete a user and everything they own (admin, not self)
//	@Tags			users
//	@Produce		json
//	@Param			id	path		string	true	"User id"
//	@Success		200	{object}	envelope
//	@Failure		400	{object}	errResponse
//	@Failure		403	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/users/{id} [delete]
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), identity(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusOK, struct{}{})
}
