package handler

import (
	"net/http"
	"strconv"
	"time"

	"memoria/backend/internal/database"
	"memoria/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// NotificationResponse defines the structure for a notification.
type NotificationResponse struct {
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

func newNotificationResponse(n models.Notification) NotificationResponse {
	return NotificationResponse{
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

// endregion

// MyNotifications godoc
// @Summary      List the viewer's notifications
// @Description  Returns the authenticated user's notifications, newest first, paginated.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        page  query  int  false  "Page number" default(1)
// @Param        limit query  int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[NotificationResponse]
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications/me [get]
func MyNotifications(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	page, limit := pageParams(c)

	result, err := Paginate[models.Notification](
		database.DB.Where("user_id = ?", viewerID).Order("created_at DESC, id DESC"),
		page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	responses := make([]NotificationResponse, 0, len(result.Data))
	for _, n := range result.Data {
		responses = append(responses, newNotificationResponse(n))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, result.Meta.TotalItems, page, limit))
}

// MarkNotificationRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Notification ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Notification not found"
// @Router       /notifications/{id}/read [put]
func MarkNotificationRead(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", uint(notificationID), viewerID).
		Update("read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkAllNotificationsRead godoc
// @Summary      Mark all notifications as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications/read-all [put]
func MarkAllNotificationsRead(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND `read` = ?", viewerID, false).
		Update("read", true).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.Status(http.StatusNoContent)
}
