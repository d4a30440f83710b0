// Package noteservice implements the owner-scoped note and notebook
// repositories and keeps the two sides of their relationship in sync.
package noteservice

import (
	"context"
	"errors"
	"time"

	"github.com/starford/notetodo/internal/apperr"
	"github.com/starford/notetodo/internal/models"
	"github.com/starford/notetodo/internal/store"
	"github.com/starford/notetodo/pkg/idx"
)

// Store is the persistence surface the service needs; *store.DB satisfies it.
type Store interface {
	store.Repository
	WithTx(ctx context.Context, fn func(q *store.Queries) error) error
}

// Service coordinates note and notebook operations.
type Service struct {
	db  Store
	now func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new note service.
func NewService(db Store, opts ...Option) *Service {
	s := &Service{db: db, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) stamp() time.Time {
	return s.now().UTC()
}

// owned turns a store lookup into the caller-facing result: missing or
// malformed ids are NotFound, someone else's entity is Forbidden.
func owned[T models.Owned](v T, err error, ownerID, kind string) (T, error) {
	var zero T
	if errors.Is(err, store.ErrNotFound) {
		return zero, apperr.NotFound(kind + " not found")
	}
	if err != nil {
		return zero, err
	}
	if v.OwnerID() != ownerID {
		return zero, apperr.Forbidden("not authorized to access this " + kind)
	}
	return v, nil
}

func getNote(ctx context.Context, r store.Repository, id, ownerID string) (models.Note, error) {
	if !idx.Valid(id) {
		return models.Note{}, apperr.NotFound("note not found")
	}
	n, err := r.GetNote(ctx, id)
	return owned(n, err, ownerID, "note")
}

func getNotebook(ctx context.Context, r store.Repository, id, ownerID string) (models.Notebook, error) {
	if !idx.Valid(id) {
		return models.Notebook{}, apperr.NotFound("notebook not found")
	}
	nb, err := r.GetNotebook(ctx, id)
	return owned(nb, err, ownerID, "notebook")
}
