package models

import "gorm.io/gorm"

// FriendshipStatus defines the state of a friendship between two users.
type FriendshipStatus string

const (
	// StatusPending means a friend request has been sent but not yet accepted.
	StatusPending FriendshipStatus = "pending"

	// StatusAccepted means the friend request was accepted, and the users are now friends.
	StatusAccepted FriendshipStatus = "accepted"
)

// Friendship represents a friend request and, once accepted, the friendship
// itself. Stored directed (UserID sent the request to FriendID) but undirected
// in meaning: queries must check both orderings.
type Friendship struct {
	gorm.Model
	UserID   uint             `gorm:"not null;index:idx_friendship_pair,unique"`
	FriendID uint             `gorm:"not null;index:idx_friendship_pair,unique"`
	Status   FriendshipStatus `gorm:"type:varchar(20);not null"`

	// Define foreign key relationships
	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Friend User `gorm:"foreignKey:FriendID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
