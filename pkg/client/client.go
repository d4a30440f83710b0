package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client performs unauthenticated API calls and opens Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a Client for the API rooted at baseURL, e.g.
// "http://localhost:8080/api".
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an account and returns a Session for it. An empty avatar
// lets the server pick its default.
func (c *Client) Register(ctx context.Context, username, password, avatar string) (*Session, error) {
	env, err := call[Identity](ctx, c, http.MethodPost, "/auth/register", "",
		credentials{Username: username, Password: password, Avatar: avatar}, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return newSession(c, env.Token, env.Data), nil
}

// Login authenticates and returns a Session.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	env, err := call[Identity](ctx, c, http.MethodPost, "/auth/login", "",
		credentials{Username: username, Password: password}, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return newSession(c, env.Token, env.Data), nil
}

// Resume opens a Session from a previously issued token. The identity is
// fetched from the server, so an expired or revoked token fails here.
func (c *Client) Resume(ctx context.Context, token string) (*Session, error) {
	s := newSession(c, token, Identity{})
	if _, err := s.Me(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// call sends body as JSON and decodes the envelope. A status other than want
// yields an *APIError alongside the decoded envelope.
func call[T any](ctx context.Context, c *Client, method, path, token string, body any, want int) (*Envelope[T], error) {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), r)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return decodeEnvelope[T](resp, want)
}

func decodeEnvelope[T any](resp *http.Response, want int) (*Envelope[T], error) {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var env Envelope[T]
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode != want {
		msg := env.Error
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		env.Success = false
		env.Error = msg
		return &env, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	return &env, nil
}
