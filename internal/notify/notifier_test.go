package notify

import (
	"encoding/json"
	"fmt"
	"testing"

	"memoria/backend/internal/database"
	"memoria/backend/internal/hub"
	"memoria/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type capturingPublisher struct {
	userIDs []uint
	events  []hub.Event
}

func (p *capturingPublisher) Publish(userID uint, event hub.Event) {
	p.userIDs = append(p.userIDs, userID)
	p.events = append(p.events, event)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, firstName, lastName string) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		FirstName:    firstName,
		LastName:     lastName,
		Verified:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestEmitSnapshotsSenderAndPublishes(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice", "Alice", "Smith")
	bob := seedUser(t, db, "bob", "Bob", "Jones")

	pub := &capturingPublisher{}
	n := New(db, pub)

	relatedID := uint(7)
	created, err := n.Emit(models.NotificationFollow, alice.ID, bob.ID, &relatedID)
	require.NoError(t, err)

	assert.Equal(t, alice.ID, created.UserID)
	assert.Equal(t, "Bob Jones", created.SenderName)
	assert.Equal(t, "bob", created.SenderUsername)
	assert.Equal(t, "Bob Jones started following you", created.Text)
	require.NotNil(t, created.RelatedID)
	assert.Equal(t, uint(7), *created.RelatedID)
	assert.False(t, created.Read)

	require.Len(t, pub.events, 1)
	assert.Equal(t, alice.ID, pub.userIDs[0])
	assert.Equal(t, hub.EventReceiveNotification, pub.events[0].Type)

	// The pushed payload serializes exactly like the REST listing does.
	payload, ok := pub.events[0].Payload.(Payload)
	require.True(t, ok)
	assert.Equal(t, created.ID, payload.ID)
	raw, err := json.Marshal(pub.events[0].Payload)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"sender_id":`)
	assert.Contains(t, string(raw), `"sender_name":"Bob Jones"`)
	assert.NotContains(t, string(raw), `"SenderID"`)

	// The sender renaming afterwards must not change the stored snapshot.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", bob.ID).
		Update("first_name", "Robert").Error)
	var stored models.Notification
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.Equal(t, "Bob Jones", stored.SenderName)
}

func TestEmitFallsBackForEmptyDisplayFields(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice", "Alice", "Smith")

	ghost := models.User{Email: "ghost@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&ghost).Error)

	n := New(db, nil)
	created, err := n.Emit(models.NotificationMessage, alice.ID, ghost.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, "Unknown", created.SenderName)
	assert.Equal(t, "unknown", created.SenderUsername)
	assert.Equal(t, "Unknown sent you a message", created.Text)
}

func TestEmitFailsForMissingSender(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice", "Alice", "Smith")

	pub := &capturingPublisher{}
	n := New(db, pub)

	_, err := n.Emit(models.NotificationLike, alice.ID, 9999, nil)
	require.Error(t, err)
	assert.Empty(t, pub.events)

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestDeleteFriendRequestNotification(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice", "Alice", "Smith")
	bob := seedUser(t, db, "bob", "Bob", "Jones")

	n := New(db, nil)

	friendshipID := uint(3)
	_, err := n.Emit(models.NotificationFriendRequest, alice.ID, bob.ID, &friendshipID)
	require.NoError(t, err)

	otherID := uint(4)
	_, err = n.Emit(models.NotificationFriendRequest, alice.ID, bob.ID, &otherID)
	require.NoError(t, err)

	n.DeleteFriendRequestNotification(friendshipID)

	var remaining []models.Notification
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, uint(4), *remaining[0].RelatedID)
}
