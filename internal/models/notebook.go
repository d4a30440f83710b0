package models

import "time"

// Notebook groups notes. Notes holds note ids in insertion order.
type Notebook struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	Notes       []string  `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OwnerID implements Owned.
func (n Notebook) OwnerID() string { return n.Owner }

// Contains reports whether noteID is a member of the notebook.
func (n Notebook) Contains(noteID string) bool {
	for _, id := range n.Notes {
		if id == noteID {
			return true
		}
	}
	return false
}

// NotebookPatch holds the fields of a partial notebook update.
type NotebookPatch struct {
	Title       *string
	Description *string
}

// NotebookDetail is a notebook with its member notes populated.
type NotebookDetail struct {
	Notebook
	Notes []Note `json:"notes"`
}
