// Package auth is the credential store: it registers and authenticates users,
// issues signed session tokens and resolves them back to identities.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/crypto/bcrypt"

	"github.com/starford/notetodo/internal/apperr"
	"github.com/starford/notetodo/internal/models"
	"github.com/starford/notetodo/internal/store"
	"github.com/starford/notetodo/pkg/idx"
)

const invalidCredentials = "invalid username or password"

// Config holds the token and hashing parameters.
type Config struct {
	Secret     string
	TTL        time.Duration
	Issuer     string
	BcryptCost int
}

// Grant is returned by Register and Authenticate.
type Grant struct {
	Identity models.Identity
	Token    string
}

// Service implements the credential store on top of a store.Repository.
type Service struct {
	repo   store.Repository
	secret []byte
	ttl    time.Duration
	issuer string
	cost   int
	now    func() time.Time
}

// NewService creates a credential store. Zero TTL and cost fall back to 30 days and bcrypt.DefaultCost.
func NewService(repo store.Repository, cfg Config) *Service {
	s := &Service{
		repo:   repo,
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		cost:   cfg.BcryptCost,
		now:    time.Now,
	}
	if s.ttl <= 0 {
		s.ttl = 30 * 24 * time.Hour
	}
	if s.cost == 0 {
		s.cost = bcrypt.DefaultCost
	}
	return s
}

// Register creates a user and returns its identity with a fresh token.
// The first user ever registered becomes an admin.
func (s *Service) Register(ctx context.Context, username, password, avatar string) (Grant, error) {
	username = strings.TrimSpace(username)
	avatar = strings.TrimSpace(avatar)
	if err := validateCredentials(username, password); err != nil {
		return Grant{}, err
	}
	if avatar == "" {
		avatar = models.DefaultAvatar
	} else if err := validateAvatar(avatar); err != nil {
		return Grant{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return Grant{}, fmt.Errorf("hash password: %w", err)
	}
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return Grant{}, err
	}

	u := models.User{
		ID:           idx.New(),
		Username:     username,
		PasswordHash: string(hash),
		Avatar:       avatar,
		IsAdmin:      count == 0,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return Grant{}, apperr.Conflict("username already exists")
		}
		return Grant{}, fmt.Errorf("create user: %w", err)
	}
	return s.grant(u)
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords produce the same error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Grant, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Grant{}, apperr.BadRequest("username and password are required")
	}
	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Grant{}, apperr.Unauthenticated(invalidCredentials)
		}
		return Grant{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Grant{}, apperr.Unauthenticated(invalidCredentials)
	}
	return s.grant(u)
}

// Resolve verifies token and re-reads the user it names, so deleted users
// are rejected immediately and the admin flag is always current.
func (s *Service) Resolve(ctx context.Context, token string) (models.Identity, error) {
	claims, err := s.parse(token)
	if err != nil {
		return models.Identity{}, apperr.Unauthenticated("not authorized to access this route")
	}
	u, err := s.repo.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Identity{}, apperr.Unauthenticated("user no longer exists")
		}
		return models.Identity{}, err
	}
	return u.Identity(), nil
}

// UpdateAvatar replaces the avatar URL of the given user.
func (s *Service) UpdateAvatar(ctx context.Context, userID, avatar string) (models.Identity, error) {
	avatar = strings.TrimSpace(avatar)
	if avatar == "" {
		return models.Identity{}, apperr.BadRequest("avatar URL is required")
	}
	if err := validateAvatar(avatar); err != nil {
		return models.Identity{}, err
	}
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Identity{}, apperr.NotFound("user not found")
		}
		return models.Identity{}, err
	}
	u.Avatar = avatar
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return models.Identity{}, fmt.Errorf("update avatar: %w", err)
	}
	return u.Identity(), nil
}

func (s *Service) grant(u models.User) (Grant, error) {
	id := u.Identity()
	token, err := s.IssueToken(id)
	if err != nil {
		return Grant{}, err
	}
	return Grant{Identity: id, Token: token}, nil
}

func validateCredentials(username, password string) error {
	if err := validation.Validate(username,
		validation.Required.Error("username is required"),
		validation.RuneLength(3, 0).Error("username must be at least 3 characters"),
	); err != nil {
		return apperr.BadRequest(err.Error())
	}
	if err := validation.Validate(password,
		validation.Required.Error("password is required"),
		validation.Length(6, 72).Error("password must be between 6 and 72 characters"),
	); err != nil {
		return apperr.BadRequest(err.Error())
	}
	return nil
}

func validateAvatar(avatar string) error {
	if err := validation.Validate(avatar, is.URL.Error("avatar must be a valid URL")); err != nil {
		return apperr.BadRequest(err.Error())
	}
	return nil
}
