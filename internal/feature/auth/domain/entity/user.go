// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"simpeg_backend/internal/shared/access"
)

// User represents an account that can sign in to the service.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the display name.
	Name string `gorm:"size:255;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users and is stored lower-cased.
	Email string `gorm:"uniqueIndex:users_email_unique;size:255;not null"`

	// Role decides which employee operations the user may perform.
	Role access.Role `gorm:"size:20;not null;default:user"`

	// Password is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// TableName specifies the table name for User.
func (User) TableName() string {
	return "users"
}
