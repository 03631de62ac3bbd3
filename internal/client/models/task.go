// Package models holds the client-side view of the task manager API payloads
// and the locally persisted session.
package models

import "time"

// User is the public projection of an account as returned by the server.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Task mirrors the server's task representation.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskUpdate is the body of a partial update; nil fields are omitted and
// left unchanged by the server.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// SigninResult is the body of a successful signin.
type SigninResult struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// Session is what the client remembers between runs.
type Session struct {
	AccessToken string
	User        User
	SavedAt     time.Time
}
