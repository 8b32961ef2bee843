package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"memoria/backend/internal/database"
	"memoria/backend/internal/models"
	"memoria/backend/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emitTestNotification(t *testing.T, typ models.NotificationType, recipientID, senderID uint) *models.Notification {
	t.Helper()

	n, err := notify.New(database.DB, nil).Emit(typ, recipientID, senderID, nil)
	require.NoError(t, err)
	return n
}

func TestMyNotifications_NewestFirst(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	alice := createUser(t, "alice", false)
	bob := createUser(t, "bob", false)

	emitTestNotification(t, models.NotificationFollow, alice.ID, bob.ID)
	emitTestNotification(t, models.NotificationLike, alice.ID, bob.ID)
	emitTestNotification(t, models.NotificationComment, alice.ID, bob.ID)
	// Not Alice's; must not appear.
	emitTestNotification(t, models.NotificationFollow, bob.ID, alice.ID)

	w := doRequest(t, router, "GET", "/api/notifications/me", alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page PaginatedResponse[NotificationResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Data, 3)
	assert.EqualValues(t, 3, page.Meta.TotalItems)
	assert.Equal(t, models.NotificationComment, page.Data[0].Type)
	assert.Equal(t, models.NotificationLike, page.Data[1].Type)
	assert.Equal(t, models.NotificationFollow, page.Data[2].Type)
}

func TestMarkNotificationRead(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	alice := createUser(t, "alice", false)
	bob := createUser(t, "bob", false)

	n := emitTestNotification(t, models.NotificationFollow, alice.ID, bob.ID)

	// Only the recipient can mark it.
	w := doRequest(t, router, "PUT", urlf("/api/notifications/%d/read", n.ID), bob.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, "PUT", urlf("/api/notifications/%d/read", n.ID), alice.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var stored models.Notification
	require.NoError(t, database.DB.First(&stored, n.ID).Error)
	assert.True(t, stored.Read)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	alice := createUser(t, "alice", false)
	bob := createUser(t, "bob", false)

	emitTestNotification(t, models.NotificationFollow, alice.ID, bob.ID)
	emitTestNotification(t, models.NotificationLike, alice.ID, bob.ID)
	emitTestNotification(t, models.NotificationFollow, bob.ID, alice.ID)

	w := doRequest(t, router, "PUT", "/api/notifications/read-all", alice.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var unreadAlice, unreadBob int64
	database.DB.Model(&models.Notification{}).Where("user_id = ? AND `read` = ?", alice.ID, false).Count(&unreadAlice)
	database.DB.Model(&models.Notification{}).Where("user_id = ? AND `read` = ?", bob.ID, false).Count(&unreadBob)
	assert.EqualValues(t, 0, unreadAlice)
	assert.EqualValues(t, 1, unreadBob)
}
