package models

import "gorm.io/gorm"

// Message represents a direct message between two users.
type Message struct {
	gorm.Model
	SenderID    uint   `gorm:"not null;index"`
	RecipientID uint   `gorm:"not null;index"`
	Content     string `gorm:"size:4096;not null"`
	Read        bool   `gorm:"not null;default:false"`

	Sender User `gorm:"foreignKey:SenderID"` // Belongs to User
}
