package client

import "time"

// Envelope is the body of every API response.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

// Empty is the payload of delete responses.
type Empty struct{}

// Identity is the signed-in user as returned by the auth routes.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	IsAdmin  bool   `json:"isAdmin"`
}

// User is an account as returned by the user routes.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Completed bool      `json:"completed"`
	Owner     string    `json:"owner"`
	Notebook  *string   `json:"notebook"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Notebook struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	Notes       []string  `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NotebookDetail is a notebook with its notes populated.
type NotebookDetail struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	Notes       []Note    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type WeightProfile struct {
	Height    float64   `json:"height"`
	Weight    float64   `json:"weight"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	StartDate time.Time `json:"startDate"`
}

type WeightRecord struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
	Note   string    `json:"note,omitempty"`
}

// Weight is the weight log of one user. Records are newest first.
type Weight struct {
	ID        string         `json:"id"`
	Owner     string         `json:"owner"`
	Profile   WeightProfile  `json:"profile"`
	Records   []WeightRecord `json:"records"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// NoteInput holds note fields to create or change. Nil fields are omitted.
type NoteInput struct {
	Title     *string    `json:"title,omitempty"`
	Content   *string    `json:"content,omitempty"`
	Completed *bool      `json:"completed,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type NotebookInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	IsAdmin  *bool   `json:"isAdmin,omitempty"`
}

// ProfileInput holds weight profile fields to set. Nil fields are left as is.
type ProfileInput struct {
	Height    *float64   `json:"height,omitempty"`
	Weight    *float64   `json:"weight,omitempty"`
	Age       *int       `json:"age,omitempty"`
	Gender    *string    `json:"gender,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
}

type RecordInput struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
	Note   string    `json:"note,omitempty"`
}

// Ptr returns a pointer to v, for filling optional input fields.
func Ptr[T any](v T) *T {
	return &v
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Avatar   string `json:"avatar,omitempty"`
}

type avatarRequest struct {
	Avatar string `json:"avatar"`
}

type weightRequest struct {
	Profile ProfileInput   `json:"profile"`
	Records *[]RecordInput `json:"records,omitempty"`
}
