package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`                   // Unique identifier for the user
	Nickname     string    `json:"nickname" db:"nickname" example:"quizfox"` // Display name chosen at registration
	PasswordHash *string   `json:"-" db:"password_hash"`                     // Optional hashed password (excluded from JSON)
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`                // Timestamp when the user was created
}
