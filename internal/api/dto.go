package api

import (
	"strings"
	"time"

	"github.com/starford/notetodo/internal/models"
)

// RegisterRequest is the request body for creating an account.
type RegisterRequest struct {
	Username string `json:"username" example:"alice" validate:"required"`
	Password string `json:"password" example:"s3cret!" validate:"required"`
	Avatar   string `json:"avatar,omitempty" example:"https://example.com/a.png"`
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Username string `json:"username" example:"alice" validate:"required"`
	Password string `json:"password" example:"s3cret!" validate:"required"`
}

// AvatarRequest is the request body for changing the avatar.
type AvatarRequest struct {
	Avatar string `json:"avatar" example:"https://example.com/a.png" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Success bool            `json:"success" example:"true"`
	Token   string          `json:"token"`
	Data    models.Identity `json:"data"`
}

// NoteRequest is the request body for creating or updating a note.
// Absent fields are left untouched on update.
type NoteRequest struct {
	Title     *string `json:"title,omitempty" example:"Groceries"`
	Content   *string `json:"content,omitempty" example:"milk, eggs"`
	Completed *bool   `json:"completed,omitempty" example:"false"`
	CreatedAt *string `json:"createdAt,omitempty" example:"2024-06-01T08:00:00Z"`
}

// NotebookRequest is the request body for creating or updating a notebook.
type NotebookRequest struct {
	Title       *string `json:"title,omitempty" example:"Work"`
	Description *string `json:"description,omitempty" example:"Things to do at work"`
}

// UserUpdateRequest is the request body for updating a user.
type UserUpdateRequest struct {
	Username *string `json:"username,omitempty" example:"alice"`
	IsAdmin  *bool   `json:"isAdmin,omitempty" example:"false"`
}

// ProfileRequest is the profile part of a weight upsert.
type ProfileRequest struct {
	Height    *float64 `json:"height,omitempty" example:"175"`
	Weight    *float64 `json:"weight,omitempty" example:"140"`
	Age       *int     `json:"age,omitempty" example:"30"`
	Gender    *string  `json:"gender,omitempty" example:"male" enums:"male,female"`
	StartDate *string  `json:"startDate,omitempty" example:"2024-06-01"`
}

// WeightRequest is the request body for creating or updating the weight log.
// When Records is present it replaces every stored record.
type WeightRequest struct {
	Profile *ProfileRequest  `json:"profile"`
	Records *[]RecordRequest `json:"records,omitempty"`
}

// RecordRequest is the request body for logging a weight measurement.
type RecordRequest struct {
	Date   *string  `json:"date" example:"2024-06-01T08:00:00Z" validate:"required"`
	Weight *float64 `json:"weight" example:"139.5" validate:"required"`
	Note   *string  `json:"note,omitempty" example:"after run"`
}

// parseTime accepts RFC 3339 timestamps and plain dates.
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// optionalTime parses s when present. Unparsable values are treated as absent.
func optionalTime(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, ok := parseTime(*s)
	if !ok {
		return nil
	}
	return &t
}
