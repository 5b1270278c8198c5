package models

import "time"

type UserRole string

const (
	RoleCreator UserRole = "creator"
	RoleAdmin   UserRole = "admin"
)

// User is a creator account. DisplayName is what slots and matching queries
// reference; it is not required to be unique.
type User struct {
	ID           int       `json:"id"`
	DisplayName  string    `json:"display_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
