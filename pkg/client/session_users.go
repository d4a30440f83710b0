package client

import (
	"context"
	"net/http"
	"net/url"
)

// ListUsers returns every account. Admin only.
func (s *Session) ListUsers(ctx context.Context) (*Envelope[[]User], error) {
	return authCall[[]User](ctx, s, http.MethodGet, "/users", nil, http.StatusOK)
}

// GetUser returns an account. Non-admins may only read their own.
func (s *Session) GetUser(ctx context.Context, id string) (*Envelope[User], error) {
	return authCall[User](ctx, s, http.MethodGet, "/users/"+url.PathEscape(id), nil, http.StatusOK)
}

// UpdateUser changes username or admin flag. Only admins can change IsAdmin.
func (s *Session) UpdateUser(ctx context.Context, id string, in UserUpdate) (*Envelope[User], error) {
	env, err := authCall[User](ctx, s, http.MethodPut, "/users/"+url.PathEscape(id), in, http.StatusOK)
	if err != nil {
		return env, err
	}
	if cur := s.Identity(); cur.ID == env.Data.ID {
		s.setIdentity(Identity{
			ID:       env.Data.ID,
			Username: env.Data.Username,
			Avatar:   env.Data.Avatar,
			IsAdmin:  env.Data.IsAdmin,
		})
	}
	return env, nil
}

// DeleteUser removes an account and everything it owns. Admin only.
func (s *Session) DeleteUser(ctx context.Context, id string) (*Envelope[Empty], error) {
	return authCall[Empty](ctx, s, http.MethodDelete, "/users/"+url.PathEscape(id), nil, http.StatusOK)
}
