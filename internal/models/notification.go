package models

import "gorm.io/gorm"

// NotificationType tags the event that produced a notification.
type NotificationType string

const (
	NotificationFriendRequest         NotificationType = "friend_request"
	NotificationFriendRequestAccepted NotificationType = "friend_request_accepted"
	NotificationFollow                NotificationType = "follow"
	NotificationFollowRequest         NotificationType = "follow_request"
	NotificationLike                  NotificationType = "like"
	NotificationComment               NotificationType = "comment"
	NotificationMessage               NotificationType = "message"
)

// Notification is a denormalized event record. The sender's display fields are
// snapshotted at creation time and do not update if the sender later edits
// their profile, so historical notifications stay stable.
type Notification struct {
	gorm.Model
	Type   NotificationType `gorm:"type:varchar(40);not null;index"`
	UserID uint             `gorm:"not null;index"` // recipient
	SenderID *uint          `gorm:"index"`

	// Sender snapshot, captured at emit time.
	SenderName      string `gorm:"size:255"`
	SenderUsername  string `gorm:"size:255"`
	SenderAvatarURL string `gorm:"size:512"`

	Text string `gorm:"size:512;not null"`

	// RelatedID points at the entity the notification is about: the
	// friendship id for friend requests, the post id for likes and comments.
	RelatedID *uint

	Read bool `gorm:"not null;default:false;index"`
}
