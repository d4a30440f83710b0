// Package userservice implements account administration: listing, reading,
// updating and deleting users on behalf of an authenticated actor.
package userservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/notetodo/internal/apperr"
	"github.com/starford/notetodo/internal/models"
	"github.com/starford/notetodo/internal/store"
	"github.com/starford/notetodo/pkg/idx"
)

// Patch holds the updatable user fields. Password and avatar have their own flows.
type Patch struct {
	Username *string
	IsAdmin  *bool
}

// Service performs user operations with role checks against the actor.
type Service struct {
	repo store.Repository
}

// NewService creates a user service.
func NewService(repo store.Repository) *Service {
	return &Service{repo: repo}
}

// List returns every user. Admin only.
func (s *Service) List(ctx context.Context, actor models.Identity) ([]models.User, error) {
	if !actor.IsAdmin {
		return nil, apperr.Forbidden("admin privileges required")
	}
	return s.repo.ListUsers(ctx)
}

// Get returns a user. Non-admins may only read themselves.
func (s *Service) Get(ctx context.Context, actor models.Identity, id string) (models.User, error) {
	if !actor.IsAdmin && actor.ID != id {
		return models.User{}, apperr.Forbidden("not allowed to view other users")
	}
	return s.find(ctx, id)
}

// Update applies p to a user. Non-admins may only update themselves and
// cannot change the admin flag; such a change is silently dropped.
func (s *Service) Update(ctx context.Context, actor models.Identity, id string, p Patch) (models.User, error) {
	if !actor.IsAdmin && actor.ID != id {
		return models.User{}, apperr.Forbidden("only your own account can be updated")
	}
	u, err := s.find(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if p.Username != nil {
		name := strings.TrimSpace(*p.Username)
		if err := validation.Validate(name,
			validation.Required.Error("username is required"),
			validation.RuneLength(3, 0).Error("username must be at least 3 characters"),
		); err != nil {
			return models.User{}, apperr.BadRequest(err.Error())
		}
		u.Username = name
	}
	if p.IsAdmin != nil && actor.IsAdmin {
		u.IsAdmin = *p.IsAdmin
	}
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.User{}, apperr.Conflict("username already exists")
		}
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// Delete removes a user together with everything they own. Admin only, and
// an admin cannot delete their own account.
func (s *Service) Delete(ctx context.Context, actor models.Identity, id string) error {
	if !actor.IsAdmin {
		return apperr.Forbidden("admin privileges required")
	}
	u, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if u.ID == actor.ID {
		return apperr.BadRequest("you cannot delete your own account")
	}
	return s.repo.DeleteUser(ctx, u.ID)
}

func (s *Service) find(ctx context.Context, id string) (models.User, error) {
	if !idx.Valid(id) {
		return models.User{}, apperr.NotFound("user not found")
	}
	u, err := s.repo.GetUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, apperr.NotFound("user not found")
	}
	return u, err
}
