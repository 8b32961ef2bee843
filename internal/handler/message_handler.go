package handler

import (
	"net/http"
	"strconv"
	"time"

	"memoria/backend/internal/database"
	"memoria/backend/internal/hub"
	"memoria/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// MessageInput defines the request body for sending a direct message.
type MessageInput struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

// MessageResponse defines the structure for a direct message.
type MessageResponse struct {
	ID          uint      `json:"id"`
	SenderID    uint      `json:"sender_id"`
	RecipientID uint      `json:"recipient_id"`
	Content     string    `json:"content"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

func newMessageResponse(m models.Message) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
	}
}

// endregion

// SendMessage godoc
// @Summary      Send a direct message
// @Description  Persists the message and pushes it to the recipient's live connections. Blocked pairs cannot message each other.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MessageInput true "Message"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Blocked"
// @Failure      404  {object}  ErrorResponse "Recipient not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /messages [post]
func SendMessage(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.RecipientID == viewerID.(uint) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot message yourself"})
		return
	}

	var recipient models.User
	if err := database.DB.First(&recipient, input.RecipientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		return
	}

	var blocks int64
	database.DB.Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			viewerID, recipient.ID, recipient.ID, viewerID).
		Count(&blocks)
	if blocks > 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "Messaging is not available for this user"})
		return
	}

	message := models.Message{
		SenderID:    viewerID.(uint),
		RecipientID: recipient.ID,
		Content:     input.Content,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	response := newMessageResponse(message)
	hub.GlobalHub.Publish(recipient.ID, hub.Event{
		Type:    hub.EventReceiveMessage,
		Payload: response,
	})

	c.JSON(http.StatusCreated, response)
}

// GetConversation godoc
// @Summary      Get the conversation with a user
// @Description  Returns the messages exchanged with the given user, oldest first, and marks the inbound ones as read.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Other User ID"
// @Success      200  {array}   MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /messages/{id} [get]
func GetConversation(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	otherUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var messages []models.Message
	err = database.DB.Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		viewerID, uint(otherUserID), uint(otherUserID), viewerID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	database.DB.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND `read` = ?", uint(otherUserID), viewerID, false).
		Update("read", true)

	responses := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, newMessageResponse(m))
	}

	c.JSON(http.StatusOK, responses)
}
