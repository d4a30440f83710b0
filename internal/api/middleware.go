// Package api implements the notetodo REST API using chi.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/starford/notetodo/internal/apperr"
	"github.com/starford/notetodo/internal/models"
)

// Resolver turns a bearer token into the acting identity.
type Resolver interface {
	Resolve(ctx context.Context, token string) (models.Identity, error)
}

type ctxKey struct{}

// IdentityFrom returns the identity stored by Authenticate.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(models.Identity)
	return id, ok
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// Authenticate requires an "Authorization: Bearer <token>" header that resolves
// to a live user, and stores that user's identity in the request context.
func Authenticate(res Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			token = strings.TrimSpace(token)
			if !found || token == "" {
				writeError(w, r, apperr.Unauthenticated("not authorized to access this route"))
				return
			}
			id, err := res.Resolve(r.Context(), token)
			if err != nil {
				writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAdmin rejects requests whose identity is not an admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok {
			writeError(w, r, apperr.Unauthenticated("not authorized to access this route"))
			return
		}
		if !id.IsAdmin {
			writeError(w, r, apperr.Forbidden("admin privileges required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Recover turns a panic into a 500 error envelope.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.Error("panic recovered",
				slog.String("path", r.URL.Path),
				slog.String("panic", fmt.Sprint(rec)),
				slog.String("stack", string(debug.Stack())))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal server error"))
		}()
		next.ServeHTTP(w, r)
	})
}

// identity returns the acting identity. Routes using it sit behind Authenticate.
func identity(r *http.Request) models.Identity {
	id, _ := IdentityFrom(r.Context())
	return id
}
