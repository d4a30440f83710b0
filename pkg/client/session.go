package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// Session holds the bearer token and identity of a signed-in user.
// It is safe for concurrent use.
type Session struct {
	client *Client

	mu       sync.RWMutex
	token    string
	identity Identity
}

func newSession(c *Client, token string, id Identity) *Session {
	return &Session{client: c, token: token, identity: id}
}

// Token returns the bearer token, or "" once the session is cleared.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns the signed-in user as last seen by the session.
func (s *Session) Identity() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Avatar returns the avatar URL of the signed-in user.
func (s *Session) Avatar() string { return s.Identity().Avatar }

// IsAdmin reports whether the signed-in user is an admin.
func (s *Session) IsAdmin() bool { return s.Identity().IsAdmin }

// Active reports whether the session still holds a token.
func (s *Session) Active() bool {
	return s.Token() != ""
}

// Logout clears the session. Tokens are stateless, so there is no server call.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.identity = Identity{}
	s.mu.Unlock()
}

func (s *Session) setIdentity(id Identity) {
	s.mu.Lock()
	if s.token != "" {
		s.identity = id
	}
	s.mu.Unlock()
}

// authCall runs an authenticated request. A 401 clears the session.
func authCall[T any](ctx context.Context, s *Session, method, path string, body any, want int) (*Envelope[T], error) {
	token := s.Token()
	if token == "" {
		return nil, ErrNoSession
	}
	env, err := call[T](ctx, s.client, method, path, token, body, want)
	if errors.Is(err, ErrUnauthenticated) {
		s.Logout()
	}
	return env, err
}

// Me fetches the signed-in user and refreshes the cached identity.
func (s *Session) Me(ctx context.Context) (*Envelope[Identity], error) {
	env, err := authCall[Identity](ctx, s, http.MethodGet, "/auth/me", nil, http.StatusOK)
	if err != nil {
		return env, err
	}
	s.setIdentity(env.Data)
	return env, nil
}

// UpdateAvatar changes the avatar URL of the signed-in user.
func (s *Session) UpdateAvatar(ctx context.Context, avatar string) (*Envelope[Identity], error) {
	env, err := authCall[Identity](ctx, s, http.MethodPut, "/auth/avatar", avatarRequest{Avatar: avatar}, http.StatusOK)
	if err != nil {
		return env, err
	}
	s.setIdentity(env.Data)
	return env, nil
}
