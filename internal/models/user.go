// Package models defines the domain types for notetodo.
package models

import "time"

// DefaultAvatar is assigned to users who register without an avatar URL.
const DefaultAvatar = "https://randomuser.me/api/portraits/lego/1.jpg"

// User is an account. PasswordHash is never serialised.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the resolved actor of a request.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Identity returns the public view of u.
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username, Avatar: u.Avatar, IsAdmin: u.IsAdmin}
}
