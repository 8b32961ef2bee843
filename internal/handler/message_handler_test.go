package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"memoria/backend/internal/database"
	"memoria/backend/internal/hub"
	"memoria/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage_DeliversAndPersists(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	alice := createUser(t, "alice", false)
	bob := createUser(t, "bob", false)

	client := make(hub.Client, 8)
	hub.GlobalHub.Subscribe(bob.ID, client)
	defer hub.GlobalHub.Unsubscribe(bob.ID, client)

	w := doRequest(t, router, "POST", "/api/messages", alice.ID,
		gin.H{"recipient_id": bob.ID, "content": "hey"})
	require.Equal(t, http.StatusCreated, w.Code)

	var sent MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))
	assert.Equal(t, alice.ID, sent.SenderID)
	assert.False(t, sent.Read)

	select {
	case raw := <-client:
		var event hub.Event
		require.NoError(t, json.Unmarshal(raw, &event))
		assert.Equal(t, hub.EventReceiveMessage, event.Type)
	default:
		t.Fatal("expected a pushed message event")
	}
}

func TestSendMessage_Rejections(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	alice := createUser(t, "alice", false)
	bob := createUser(t, "bob", false)

	w := doRequest(t, router, "POST", "/api/messages", alice.ID,
		gin.H{"recipient_id": alice.ID, "content": "hi me"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, "POST", "/api/messages", alice.ID,
		gin.H{"recipient_id": 9999, "content": "hello?"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A block in either direction forbids messaging.
	w = doRequest(t, router, "POST", urlf("/api/users/%d/block", alice.ID), bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "POST", "/api/messages", alice.ID,
		gin.H{"recipient_id": bob.ID, "content": "hey"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doRequest(t, router, "POST", "/api/messages", bob.ID,
		gin.H{"recipient_id": alice.ID, "content": "hey"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetConversation_MarksInboundRead(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	alice := createUser(t, "alice", false)
	bob := createUser(t, "bob", false)

	for _, content := range []string{"one", "two"} {
		w := doRequest(t, router, "POST", "/api/messages", alice.ID,
			gin.H{"recipient_id": bob.ID, "content": content})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := doRequest(t, router, "POST", "/api/messages", bob.ID,
		gin.H{"recipient_id": alice.ID, "content": "three"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, router, "GET", urlf("/api/messages/%d", alice.ID), bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var conversation []MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conversation))
	require.Len(t, conversation, 3)
	assert.Equal(t, "one", conversation[0].Content)
	assert.Equal(t, "three", conversation[2].Content)

	var unread int64
	database.DB.Model(&models.Message{}).
		Where("recipient_id = ? AND `read` = ?", bob.ID, false).
		Count(&unread)
	assert.EqualValues(t, 0, unread)

	// Alice's copy of bob's message stays unread until she opens the conversation.
	database.DB.Model(&models.Message{}).
		Where("recipient_id = ? AND `read` = ?", alice.ID, false).
		Count(&unread)
	assert.EqualValues(t, 1, unread)
}
