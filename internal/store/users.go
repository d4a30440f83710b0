package store

import (
	"context"
	"fmt"
	"time"

	"github.com/starford/notetodo/internal/models"
)

// userColumns deliberately omits password_hash; only GetUserByUsername selects it.
const userColumns = `id, username, avatar, is_admin, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner, withHash bool) (models.User, error) {
	var (
		u       models.User
		created time.Time
	)
	dest := []any{&u.ID, &u.Username, &u.Avatar, &u.IsAdmin, &created}
	if withHash {
		dest = append(dest, &u.PasswordHash)
	}
	if err := row.Scan(dest...); err != nil {
		return models.User{}, err
	}
	u.CreatedAt = created.UTC()
	return u, nil
}

// CountUsers returns the number of registered users.
func (s *Queries) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count users: %w", err)
	}
	return n, nil
}

// CreateUser inserts u. A taken username yields ErrDuplicate.
func (s *Queries) CreateUser(ctx context.Context, u models.User) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, avatar, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.ID, u.Username, u.PasswordHash, u.Avatar, u.IsAdmin, u.CreatedAt.UTC())
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

// GetUser returns the user with the given id, without the password hash.
func (s *Queries) GetUser(ctx context.Context, id string) (models.User, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row, false)
	if err != nil {
		return models.User{}, mapNotFound(err)
	}
	return u, nil
}

// GetUserByUsername returns the user including the password hash, for credential checks.
func (s *Queries) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+userColumns+`, password_hash FROM users WHERE username = ?`, username)
	u, err := scanUser(row, true)
	if err != nil {
		return models.User{}, mapNotFound(err)
	}
	return u, nil
}

// ListUsers returns every user ordered by registration time.
func (s *Queries) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("store: list users: %w", err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows, false)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateUser writes username, avatar and admin flag. The password hash is untouched.
func (s *Queries) UpdateUser(ctx context.Context, u models.User) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE users SET username = ?, avatar = ?, is_admin = ? WHERE id = ?
	`, u.Username, u.Avatar, u.IsAdmin, u.ID)
	if err != nil {
		return mapConstraint(err)
	}
	return requireAffected(res)
}

// DeleteUser removes a user; owned notes, notebooks and weights cascade.
func (s *Queries) DeleteUser(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete user: %w", err)
	}
	return requireAffected(res)
}
