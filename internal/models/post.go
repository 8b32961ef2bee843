package models

import "gorm.io/gorm"

// Post represents a user post.
type Post struct {
	gorm.Model
	UserID   uint   `gorm:"not null;index"`
	Caption  string `gorm:"size:2048"`
	ImageURL string `gorm:"size:512"`

	User      User       `gorm:"foreignKey:UserID"`
	Comments  []Comment  `gorm:"foreignKey:PostID"`
	Reactions []Reaction `gorm:"foreignKey:PostID"`
}

// Comment represents a comment on a post.
type Comment struct {
	gorm.Model
	PostID  uint   `gorm:"not null;index"`
	UserID  uint   `gorm:"not null;index"`
	Content string `gorm:"size:2048;not null"`

	User User `gorm:"foreignKey:UserID"`
}

// Reaction represents a reaction to a post. One per user per post; reacting
// again replaces the type.
type Reaction struct {
	PostID uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"primaryKey"`
	Type   string `gorm:"size:50;not null;default:'like'"`

	User User `gorm:"foreignKey:UserID"`
}
