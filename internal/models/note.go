package models

import "time"

// Note is a single owned note. Notebook is empty when the note is unfiled.
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

// OwnerID implements Owned.
func (n Note) OwnerID() string { return n.Owner }

// NotePatch holds the fields of a partial note update; nil means "leave as is".
type NotePatch struct {
	Title     *string
	Content   *string
	Completed *bool
	CreatedAt *time.Time
}

// Owned is implemented by every owner-scoped entity.
type Owned interface {
	OwnerID() string
}
