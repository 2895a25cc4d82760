// Package models defines server-side data models persisted in the store.
package models

import "time"

// User is an account record. PasswordHash is the bcrypt hash of the signup
// password and must never reach the presentation layer; the json tag keeps
// it out of API responses.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatarUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
