package domain

import "time" // Timestamps

// User Model
type User struct {
	ID           string    `json:"id"`         // Lowercase username, unique
	Username     string    `json:"username"`   // Username as typed at registration
	PasswordHash string    `json:"-"`          // Bcrypt hash, never serialized
	CreatedAt    time.Time `json:"created_at"` // Registration time
}
