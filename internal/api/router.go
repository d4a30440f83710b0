package api

import (
	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// Register and login are rate limited per client IP by authLimit.
func NewRouter(h *Handler, authLimit RateLimitConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(Recover)

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(RateLimitByIP(authLimit))
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})
		r.Group(func(r chi.Router) {
			r.Use(Authenticate(h.auth))
			r.Get("/me", h.Me)
			r.Put("/avatar", h.UpdateAvatar)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(Authenticate(h.auth))

		r.Get("/notes", h.ListNotes)
		r.Post("/notes", h.CreateNote)
		r.Get("/notes/{id}", h.GetNote)
		r.Put("/notes/{id}", h.UpdateNote)
		r.Delete("/notes/{id}", h.DeleteNote)

		r.Get("/notebooks", h.ListNotebooks)
		r.Post("/notebooks", h.CreateNotebook)
		r.Get("/notebooks/{id}", h.GetNotebook)
		r.Put("/notebooks/{id}", h.UpdateNotebook)
		r.Delete("/notebooks/{id}", h.DeleteNotebook)
		r.Put("/notebooks/{id}/notes/{noteId}", h.AttachNote)
		r.Delete("/notebooks/{id}/notes/{noteId}", h.DetachNote)

		r.With(RequireAdmin).Get("/users", h.ListUsers)
		r.Get("/users/{id}", h.GetUser)
		r.Put("/users/{id}", h.UpdateUser)
		r.With(RequireAdmin).Delete("/users/{id}", h.DeleteUser)

		r.Get("/weights", h.GetWeights)
		r.Post("/weights", h.UpsertWeights)
		r.Delete("/weights", h.ResetWeights)
		r.Post("/weights/record", h.AddWeightRecord)
		r.Delete("/weights/record/{id}", h.DeleteWeightRecord)
	})

	return r
}
