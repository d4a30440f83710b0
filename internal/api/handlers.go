package api

import (
	"net/http"

	"github.com/starford/notetodo/internal/auth"
	"github.com/starford/notetodo/internal/noteservice"
	"github.com/starford/notetodo/internal/userservice"
	"github.com/starford/notetodo/internal/weightservice"
)

// Handler holds API route handlers.
type Handler struct {
	auth    *auth.Service
	notes   *noteservice.Service
	weights *weightservice.Service
	users   *userservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(a *auth.Service, n *noteservice.Service, w *weightservice.Service, u *userservice.Service) *Handler {
	return &Handler{auth: a, notes: n, weights: w, users: u}
}

// Register handles POST /api/auth/register.
//
//	@Summary		Create an account
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		RegisterRequest	true	"Credentials"
//	@Success		201		{object}	AuthResponse
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Failure		429		{object}	errResponse
//	@Router			/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	g, err := h.auth.Register(r.Context(), req.Username, req.Password, req.Avatar)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{Success: true, Token: g.Token, Data: g.Identity})
}

// Login handles POST /api/auth/login.
//
//	@Summary		Log in
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	AuthResponse
//	@Failure		400		{object}	errResponse
//	@Failure		401		{object}	errResponse
//	@Failure		429		{object}	errResponse
//	@Router			/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	g, err := h.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Token: g.Token, Data: g.Identity})
}

// Me handles GET /api/auth/me.
//
//	@Summary		Current user
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	envelope{data=models.Identity}
//	@Failure		401	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ok(w, http.StatusOK, identity(r))
}

// UpdateAvatar handles PUT /api/auth/avatar.
//
//	@Summary		Change avatar URL
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		AvatarRequest	true	"Avatar URL"
//	@Success		200		{object}	envelope{data=models.Identity}
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/auth/avatar [put]
func (h *Handler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	var req AvatarRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id, err := h.auth.UpdateAvatar(r.Context(), identity(r).ID, req.Avatar)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusOK, id)
}
