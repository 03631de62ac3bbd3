// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is the stored account record. PasswordHash never leaves the server.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the only user shape returned to clients.
type PublicUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Public projects u onto the fields that may be exposed.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, FullName: u.FullName}
}

// Identity is the authenticated caller, taken from a verified access token.
type Identity struct {
	UserID string
	Email  string
}

// SigninResult is returned by a successful sign-in.
type SigninResult struct {
	AccessToken string     `json:"access_token"`
	User        PublicUser `json:"user"`
}
