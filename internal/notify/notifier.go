package notify

import (
	"fmt"
	"log"
	"time"

	"memoria/backend/internal/hub"
	"memoria/backend/internal/models"

	"gorm.io/gorm"
)

// Publisher pushes an event to a user's live connections. Implementations
// must be non-blocking and must not return delivery errors to the caller;
// the persisted notification row is the durable source of truth.
type Publisher interface {
	Publish(userID uint, event hub.Event)
}

// Payload is the wire shape of a ReceiveNotification event. It matches the
// JSON the notifications listing returns, so clients decode one structure for
// both the live channel and polling.
type Payload struct {
	ID              uint                    `json:"id"`
	Type            models.NotificationType `json:"type"`
	SenderID        *uint                   `json:"sender_id,omitempty"`
	SenderName      string                  `json:"sender_name"`
	SenderUsername  string                  `json:"sender_username"`
	SenderAvatarURL string                  `json:"sender_avatar_url,omitempty"`
	Text            string                  `json:"text"`
	RelatedID       *uint                   `json:"related_id,omitempty"`
	Read            bool                    `json:"read"`
	CreatedAt       time.Time               `json:"created_at"`
}

func newPayload(n models.Notification) Payload {
	return Payload{
		ID:              n.ID,
		Type:            n.Type,
		SenderID:        n.SenderID,
		SenderName:      n.SenderName,
		SenderUsername:  n.SenderUsername,
		SenderAvatarURL: n.SenderAvatarURL,
		Text:            n.Text,
		RelatedID:       n.RelatedID,
		Read:            n.Read,
		CreatedAt:       n.CreatedAt,
	}
}

// Notifier constructs and persists denormalized notifications and pushes them
// best-effort over the live channel.
type Notifier struct {
	DB        *gorm.DB
	Publisher Publisher
}

// New creates a Notifier.
func New(db *gorm.DB, pub Publisher) *Notifier {
	return &Notifier{DB: db, Publisher: pub}
}

// Emit creates a notification of the given type for recipientID, snapshotting
// the sender's display fields at write time, and publishes it. relatedID ties
// the notification to the entity it is about (friendship id, post id) and may
// be nil.
func (n *Notifier) Emit(typ models.NotificationType, recipientID, senderID uint, relatedID *uint) (*models.Notification, error) {
	var sender models.User
	if err := n.DB.First(&sender, senderID).Error; err != nil {
		return nil, fmt.Errorf("load sender %d: %w", senderID, err)
	}

	name := sender.FullName()
	if name == "" {
		name = "Unknown"
	}
	username := sender.Username
	if username == "" {
		username = "unknown"
	}

	sid := senderID
	notification := models.Notification{
		Type:            typ,
		UserID:          recipientID,
		SenderID:        &sid,
		SenderName:      name,
		SenderUsername:  username,
		SenderAvatarURL: sender.AvatarURL,
		Text:            renderText(typ, name),
		RelatedID:       relatedID,
	}

	if err := n.DB.Create(&notification).Error; err != nil {
		return nil, err
	}

	if n.Publisher != nil {
		n.Publisher.Publish(recipientID, hub.Event{
			Type:    hub.EventReceiveNotification,
			Payload: newPayload(notification),
		})
	}

	return &notification, nil
}

// DeleteFriendRequestNotification removes the pending friend_request
// notification tied to a friendship, if one exists. Called when the request
// is resolved so the recipient's feed does not keep a stale actionable item.
func (n *Notifier) DeleteFriendRequestNotification(friendshipID uint) {
	err := n.DB.Where("type = ? AND related_id = ?", models.NotificationFriendRequest, friendshipID).
		Delete(&models.Notification{}).Error
	if err != nil {
		log.Printf("notify: delete friend_request notification for friendship %d failed: %v", friendshipID, err)
	}
}

func renderText(typ models.NotificationType, senderName string) string {
	switch typ {
	case models.NotificationFriendRequest:
		return fmt.Sprintf("%s sent you a friend request", senderName)
	case models.NotificationFriendRequestAccepted:
		return fmt.Sprintf("%s accepted your friend request", senderName)
	case models.NotificationFollow:
		return fmt.Sprintf("%s started following you", senderName)
	case models.NotificationFollowRequest:
		return fmt.Sprintf("%s requested to follow you", senderName)
	case models.NotificationLike:
		return fmt.Sprintf("%s liked your post", senderName)
	case models.NotificationComment:
		return fmt.Sprintf("%s commented on your post", senderName)
	case models.NotificationMessage:
		return fmt.Sprintf("%s sent you a message", senderName)
	}
	return fmt.Sprintf("%s sent you a notification", senderName)
}
