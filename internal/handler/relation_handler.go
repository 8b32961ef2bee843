package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"memoria/backend/internal/database"
	"memoria/backend/internal/hub"
	"memoria/backend/internal/models"
	"memoria/backend/internal/notify"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// CreateFriendshipInput defines the request body for sending a friend request.
type CreateFriendshipInput struct {
	UserID   uint `json:"user_id" binding:"required"`
	FriendID uint `json:"friend_id" binding:"required"`
}

// RespondFriendshipInput defines the request body for answering a friend request.
type RespondFriendshipInput struct {
	Accept *bool `json:"accept" binding:"required"`
}

// FriendshipResponse defines the structure for a friendship with the
// counterpart user embedded.
type FriendshipResponse struct {
	ID        uint                    `json:"id"`
	Status    models.FriendshipStatus `json:"status"`
	CreatedAt time.Time               `json:"created_at"`
	User      PublicUserResponse      `json:"user"`
}

// RelationshipResponse summarizes the viewer's relationship to a target user.
type RelationshipResponse struct {
	IsFollowing bool `json:"is_following"`
	IsFriend    bool `json:"is_friend"`
	IsBlocked   bool `json:"is_blocked"`
	HasBlocked  bool `json:"has_blocked"`
}

// FollowRequestResponse defines a pending follow of the viewer's private account.
type FollowRequestResponse struct {
	Follower  PublicUserResponse `json:"follower"`
	CreatedAt time.Time          `json:"created_at"`
}

// endregion

func newNotifier() *notify.Notifier {
	return notify.New(database.DB, hub.GlobalHub)
}

// region --- Friendship Handlers ---

// CreateFriendship godoc
// @Summary      Send friend request
// @Description  Creates a pending friendship and notifies the target user. Fails if any friendship already exists between the pair, in either direction.
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreateFriendshipInput true "Friend request"
// @Success      201  {object}  FriendshipResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Sender is not the authenticated user"
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Friendship already exists"
// @Failure      500  {object}  ErrorResponse
// @Router       /friendships [post]
func CreateFriendship(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input CreateFriendshipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.UserID != viewerID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot send a request on behalf of another user"})
		return
	}

	var friend models.User
	if err := database.DB.First(&friend, input.FriendID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target user not found"})
		return
	}

	// An edge in either direction blocks a new request.
	var existing models.Friendship
	err := database.DB.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		input.UserID, input.FriendID, input.FriendID, input.UserID).First(&existing).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusConflict, gin.H{"error": "Friendship already exists"})
		return
	}

	friendship := models.Friendship{
		UserID:   input.UserID,
		FriendID: input.FriendID,
		Status:   models.StatusPending,
	}
	if err := database.DB.Create(&friendship).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create friendship"})
		return
	}

	relatedID := friendship.ID
	if _, err := newNotifier().Emit(models.NotificationFriendRequest, friendship.FriendID, friendship.UserID, &relatedID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, FriendshipResponse{
		ID:        friendship.ID,
		Status:    friendship.Status,
		CreatedAt: friendship.CreatedAt,
		User:      buildPublicUserResponse(friend, viewerID.(uint)),
	})
}

// RespondFriendship godoc
// @Summary      Respond to a friend request
// @Description  Accepts or rejects a pending friend request addressed to the authenticated user.
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                     true  "Friendship ID"
// @Param        input body  RespondFriendshipInput  true  "Response"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Request is not addressed to the authenticated user"
// @Failure      404  {object}  ErrorResponse "Pending request not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /friendships/{id} [put]
func RespondFriendship(c *gin.Context) {
	var input RespondFriendshipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respondToFriendRequest(c, *input.Accept)
}

// AcceptFriendship godoc
// @Summary      Accept a friend request
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Friendship ID"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /friendships/{id}/accept [post]
func AcceptFriendship(c *gin.Context) {
	respondToFriendRequest(c, true)
}

// DeclineFriendship godoc
// @Summary      Decline a friend request
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Friendship ID"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /friendships/{id}/decline [post]
func DeclineFriendship(c *gin.Context) {
	respondToFriendRequest(c, false)
}

// respondToFriendRequest resolves a pending request. Accepting records the
// friendship, inserts reciprocal follow edges, swaps the pending notification
// for an acceptance one; declining deletes the request and its notification.
func respondToFriendRequest(c *gin.Context, accept bool) {
	viewerID, _ := c.Get("userID")
	friendshipID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid friendship ID"})
		return
	}

	var friendship models.Friendship
	if err := database.DB.Where("id = ? AND status = ?", uint(friendshipID), models.StatusPending).First(&friendship).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pending request not found"})
		return
	}

	if friendship.FriendID != viewerID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Request is not addressed to you"})
		return
	}

	notifier := newNotifier()

	if !accept {
		if err := database.DB.Delete(&friendship).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decline request"})
			return
		}
		notifier.DeleteFriendRequestNotification(friendship.ID)
		c.Status(http.StatusNoContent)
		return
	}

	if err := database.DB.Model(&friendship).Update("status", models.StatusAccepted).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept request"})
		return
	}

	// Friends follow each other both ways; pending edges go live.
	ensureFollow(friendship.UserID, friendship.FriendID)
	ensureFollow(friendship.FriendID, friendship.UserID)

	notifier.DeleteFriendRequestNotification(friendship.ID)

	relatedID := friendship.ID
	if _, err := notifier.Emit(models.NotificationFriendRequestAccepted, friendship.UserID, friendship.FriendID, &relatedID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RevokeFriendship godoc
// @Summary      Revoke a sent friend request
// @Description  Withdraws a pending request the authenticated user sent. Accepted friendships cannot be revoked this way.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Friendship ID"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /friendships/{id}/revoke [delete]
func RevokeFriendship(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	friendshipID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid friendship ID"})
		return
	}

	var friendship models.Friendship
	if err := database.DB.First(&friendship, uint(friendshipID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friendship not found"})
		return
	}

	if friendship.UserID != viewerID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the sender can revoke a request"})
		return
	}
	if friendship.Status != models.StatusPending {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot revoke an accepted friendship"})
		return
	}

	if err := database.DB.Delete(&friendship).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke request"})
		return
	}
	newNotifier().DeleteFriendRequestNotification(friendship.ID)

	c.Status(http.StatusNoContent)
}

// IncomingFriendRequests godoc
// @Summary      List incoming friend requests
// @Description  Returns the pending requests addressed to the authenticated user, with the sender embedded.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   FriendshipResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /friendships/incoming [get]
func IncomingFriendRequests(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var friendships []models.Friendship
	err := database.DB.Where("friend_id = ? AND status = ?", viewerID, models.StatusPending).
		Preload("User").Find(&friendships).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	responses := make([]FriendshipResponse, 0, len(friendships))
	for _, f := range friendships {
		responses = append(responses, FriendshipResponse{
			ID:        f.ID,
			Status:    f.Status,
			CreatedAt: f.CreatedAt,
			User:      buildPublicUserResponse(f.User, viewerID.(uint)),
		})
	}

	c.JSON(http.StatusOK, responses)
}

// OutgoingFriendRequests godoc
// @Summary      List outgoing friend requests
// @Description  Returns the pending requests the authenticated user sent, with the recipient embedded.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   FriendshipResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /friendships/outgoing [get]
func OutgoingFriendRequests(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var friendships []models.Friendship
	err := database.DB.Where("user_id = ? AND status = ?", viewerID, models.StatusPending).
		Preload("Friend").Find(&friendships).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	responses := make([]FriendshipResponse, 0, len(friendships))
	for _, f := range friendships {
		responses = append(responses, FriendshipResponse{
			ID:        f.ID,
			Status:    f.Status,
			CreatedAt: f.CreatedAt,
			User:      buildPublicUserResponse(f.Friend, viewerID.(uint)),
		})
	}

	c.JSON(http.StatusOK, responses)
}

// endregion

// region --- Follow Handlers ---

// FollowUser godoc
// @Summary      Follow a user
// @Description  Follows a public user immediately; for private users the follow stays pending until approved, and a follow-request notification is sent instead.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Target User ID"
// @Success      200  {object}  map[string]string "{"message": "...", "status": "accepted|pending"}"
// @Failure      400  {object}  ErrorResponse "Cannot follow yourself"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Already following"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/{id}/follow [post]
func FollowUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	if viewerID.(uint) == uint(targetUserID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	var target models.User
	if err := database.DB.First(&target, uint(targetUserID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target user not found"})
		return
	}

	var existing models.Follow
	err = database.DB.Where("follower_id = ? AND following_id = ?", viewerID, target.ID).First(&existing).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusConflict, gin.H{"error": "Already following this user"})
		return
	}

	status := models.FollowAccepted
	notificationType := models.NotificationFollow
	if target.IsPrivate {
		status = models.FollowPending
		notificationType = models.NotificationFollowRequest
	}

	follow := models.Follow{
		FollowerID:  viewerID.(uint),
		FollowingID: target.ID,
		Status:      status,
	}
	if err := database.DB.Create(&follow).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create follow"})
		return
	}

	if _, err := newNotifier().Emit(notificationType, target.ID, viewerID.(uint), nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Follow created", "status": string(status)})
}

// UnfollowUser godoc
// @Summary      Unfollow a user
// @Description  Removes the follow edge (pending or accepted) toward the target user.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Target User ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Not following"
// @Router       /users/{id}/follow [delete]
func UnfollowUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	result := database.DB.Where("follower_id = ? AND following_id = ?", viewerID, uint(targetUserID)).Delete(&models.Follow{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not following this user"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListFollowRequests godoc
// @Summary      List pending follow requests
// @Description  Returns the pending follows of the authenticated user's account. Only private accounts accumulate these.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   FollowRequestResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/follow-requests [get]
func ListFollowRequests(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var follows []models.Follow
	err := database.DB.Where("following_id = ? AND status = ?", viewerID, models.FollowPending).
		Preload("Follower").Find(&follows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch follow requests"})
		return
	}

	responses := make([]FollowRequestResponse, 0, len(follows))
	for _, f := range follows {
		responses = append(responses, FollowRequestResponse{
			Follower:  buildPublicUserResponse(f.Follower, viewerID.(uint)),
			CreatedAt: f.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// AcceptFollowRequest godoc
// @Summary      Approve a follow request
// @Description  Approves the pending follow from the given user, making the edge live.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Requesting User ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Pending follow not found"
// @Router       /users/follow-requests/{id}/accept [post]
func AcceptFollowRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	requesterID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid requesting user ID"})
		return
	}

	result := database.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ? AND status = ?", uint(requesterID), viewerID, models.FollowPending).
		Update("status", models.FollowAccepted)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept follow request"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pending follow request not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeclineFollowRequest godoc
// @Summary      Decline a follow request
// @Description  Removes the pending follow from the given user.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Requesting User ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Pending follow not found"
// @Router       /users/follow-requests/{id}/decline [post]
func DeclineFollowRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	requesterID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid requesting user ID"})
		return
	}

	result := database.DB.Where("follower_id = ? AND following_id = ? AND status = ?",
		uint(requesterID), viewerID, models.FollowPending).Delete(&models.Follow{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decline follow request"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pending follow request not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// endregion

// region --- Block Handlers ---

// BlockUser godoc
// @Summary      Block a user
// @Description  Blocks the target user and removes any follow or friendship between the pair.
// @Tags         block
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Target User ID"
// @Success      200  {object}  map[string]string "{"message": "User blocked"}"
// @Failure      400  {object}  ErrorResponse "Cannot block yourself"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Already blocked"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/{id}/block [post]
func BlockUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	if viewerID.(uint) == uint(targetUserID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot block yourself"})
		return
	}

	var target models.User
	if err := database.DB.First(&target, uint(targetUserID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target user not found"})
		return
	}

	var existing models.Block
	err = database.DB.Where("blocker_id = ? AND blocked_id = ?", viewerID, target.ID).First(&existing).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusConflict, gin.H{"error": "Already blocked"})
		return
	}

	block := models.Block{
		BlockerID: viewerID.(uint),
		BlockedID: target.ID,
	}
	if err := database.DB.Create(&block).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to block user"})
		return
	}

	// Blocking severs the pair: follows in both directions and any friendship.
	database.DB.Where("(follower_id = ? AND following_id = ?) OR (follower_id = ? AND following_id = ?)",
		viewerID, target.ID, target.ID, viewerID).Delete(&models.Follow{})
	database.DB.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		viewerID, target.ID, target.ID, viewerID).Delete(&models.Friendship{})

	c.JSON(http.StatusOK, gin.H{"message": "User blocked"})
}

// UnblockUser godoc
// @Summary      Unblock a user
// @Tags         block
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Target User ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Not blocked"
// @Router       /users/{id}/block [delete]
func UnblockUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	result := database.DB.Where("blocker_id = ? AND blocked_id = ?", viewerID, uint(targetUserID)).Delete(&models.Block{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unblock"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User is not blocked"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetRelationship godoc
// @Summary      Get relationship to a user
// @Description  Returns the viewer's relationship flags for the target user. Querying yourself returns all-false.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Target User ID"
// @Success      200  {object}  RelationshipResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/{id}/relationship [get]
func GetRelationship(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	response := RelationshipResponse{}
	if viewerID.(uint) == uint(targetUserID) {
		c.JSON(http.StatusOK, response)
		return
	}

	var count int64
	database.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ? AND status = ?", viewerID, uint(targetUserID), models.FollowAccepted).
		Count(&count)
	response.IsFollowing = count > 0

	database.DB.Model(&models.Friendship{}).
		Where("((user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)) AND status = ?",
			viewerID, uint(targetUserID), uint(targetUserID), viewerID, models.StatusAccepted).
		Count(&count)
	response.IsFriend = count > 0

	database.DB.Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", uint(targetUserID), viewerID).
		Count(&count)
	response.IsBlocked = count > 0

	database.DB.Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", viewerID, uint(targetUserID)).
		Count(&count)
	response.HasBlocked = count > 0

	c.JSON(http.StatusOK, response)
}

// endregion

// region --- Helpers ---

// ensureFollow makes the follow edge in that direction live: a missing edge
// is created accepted, a pending one is upgraded. Friends always see each
// other, so an approval gated on privacy is implied by the accepted request.
func ensureFollow(followerID, followingID uint) {
	var existing models.Follow
	err := database.DB.Where("follower_id = ? AND following_id = ?", followerID, followingID).First(&existing).Error
	switch {
	case err == nil:
		if existing.Status == models.FollowAccepted {
			return
		}
		err = database.DB.Model(&models.Follow{}).
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Update("status", models.FollowAccepted).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = database.DB.Create(&models.Follow{
			FollowerID:  followerID,
			FollowingID: followingID,
			Status:      models.FollowAccepted,
		}).Error
	}
	if err != nil {
		log.Printf("relation: ensure follow %d->%d failed: %v", followerID, followingID, err)
	}
}

// endregion
