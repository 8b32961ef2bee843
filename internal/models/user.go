package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user in the system.
type User struct {
	gorm.Model
	Username     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	FirstName string `gorm:"size:255"`
	LastName  string `gorm:"size:255"`
	Bio       string `gorm:"size:1024"`
	AvatarURL string `gorm:"size:512"`
	CoverURL  string `gorm:"size:512"`
	Birthday  *time.Time
	Gender    string `gorm:"size:50"`

	// IsPrivate gates follow behavior: follows of a private account stay
	// pending until the account owner approves them.
	IsPrivate bool `gorm:"not null;default:false"`

	// Verified is set once the user confirms their email address.
	Verified bool `gorm:"not null;default:false"`
}

// FullName returns the user's display name, empty if neither part is set.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
