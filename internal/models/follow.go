package models

import "time"

// FollowStatus defines the state of a follow edge.
type FollowStatus string

const (
	// FollowPending means the target account is private and has not yet
	// approved the follow. A pending edge does not count as following.
	FollowPending FollowStatus = "pending"

	// FollowAccepted means the follow is live.
	FollowAccepted FollowStatus = "accepted"
)

// Follow represents a directed follow edge between two users.
// The primary key is a composite of (FollowerID, FollowingID) to ensure uniqueness.
type Follow struct {
	FollowerID  uint         `gorm:"primaryKey"`
	FollowingID uint         `gorm:"primaryKey"`
	Status      FollowStatus `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Define foreign key relationships
	Follower  User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Following User `gorm:"foreignKey:FollowingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
