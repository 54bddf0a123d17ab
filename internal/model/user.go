package model

import "time"

// User is a registered dashboard user. Every persisted entity is scoped to
// exactly one user; identity is resolved by the auth middleware before any
// storage call.
type User struct {
	CreatedAt    time.Time `json:"created_at"`
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
}
