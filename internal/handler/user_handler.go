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

// PublicUserResponse defines the structure for a user's public profile.
// For private accounts the viewer is not following, only the identity fields
// are populated.
type PublicUserResponse struct {
	ID             uint   `json:"id" example:"1"`
	Username       string `json:"username" example:"testuser"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	Bio            string `json:"bio,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	CoverURL       string `json:"cover_url,omitempty"`
	IsPrivate      bool   `json:"is_private"`
	FriendsCount   int64  `json:"friends_count"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
}

// PrivateUserResponse defines the structure for the authenticated user's own profile.
type PrivateUserResponse struct {
	ID             uint       `json:"id" example:"1"`
	Username       string     `json:"username" example:"testuser"`
	Email          string     `json:"email" example:"test@example.com"`
	FirstName      string     `json:"first_name,omitempty"`
	LastName       string     `json:"last_name,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	AvatarURL      string     `json:"avatar_url,omitempty"`
	CoverURL       string     `json:"cover_url,omitempty"`
	Birthday       *time.Time `json:"birthday,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	IsPrivate      bool       `json:"is_private"`
	FriendsCount   int64      `json:"friends_count"`
	FollowersCount int64      `json:"followers_count"`
	FollowingCount int64      `json:"following_count"`
}

// UpdateProfileInput defines the editable profile fields. Pointer fields are
// only applied when present in the request body.
type UpdateProfileInput struct {
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
	Bio       *string    `json:"bio"`
	AvatarURL *string    `json:"avatar_url"`
	CoverURL  *string    `json:"cover_url"`
	Birthday  *time.Time `json:"birthday"`
	Gender    *string    `json:"gender"`
	IsPrivate *bool      `json:"is_private"`
}

// endregion

// region --- User Handlers ---

// SearchUsers godoc
// @Summary      Search for users
// @Description  Searches for users by username or name with pagination.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  false  "Search query"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(10)
// @Success      200   {object}  PaginatedResponse[PublicUserResponse]
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /users [get]
func SearchUsers(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	searchQuery := c.Query("q")
	page, limit := pageParams(c)

	query := database.DB.Model(&models.User{}).Where("id <> ?", viewerID)
	if searchQuery != "" {
		pattern := "%" + searchQuery + "%"
		query = query.Where("username LIKE ? OR first_name LIKE ? OR last_name LIKE ?", pattern, pattern, pattern)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}

	var users []models.User
	if err := query.Limit(limit).Offset((page - 1) * limit).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	userResponses := make([]PublicUserResponse, 0, len(users))
	for _, user := range users {
		userResponses = append(userResponses, buildPublicUserResponse(user, viewerID.(uint)))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(userResponses, totalItems, page, limit))
}

// GetUserByID godoc
// @Summary      Get user by ID
// @Description  Retrieves the public profile for a specific user. Private profiles show only identity fields unless the viewer is an accepted follower or friend.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  PublicUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func GetUserByID(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	// If target is the same as viewer, redirect to /me
	if viewerID.(uint) == uint(targetUserID) {
		GetMe(c)
		return
	}

	var targetUser models.User
	if err := database.DB.First(&targetUser, uint(targetUserID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if targetUser.IsPrivate && !canViewProfile(viewerID.(uint), targetUser.ID) {
		c.JSON(http.StatusOK, PublicUserResponse{
			ID:        targetUser.ID,
			Username:  targetUser.Username,
			AvatarURL: targetUser.AvatarURL,
			IsPrivate: true,
		})
		return
	}

	c.JSON(http.StatusOK, buildPublicUserResponse(targetUser, viewerID.(uint)))
}

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the private profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, buildPrivateUserResponse(user))
}

// UpdateMe godoc
// @Summary      Update current user's profile
// @Description  Applies the provided profile fields to the authenticated user.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdateProfileInput true "Profile fields"
// @Success      200  {object}  PrivateUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [put]
func UpdateMe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.CoverURL != nil {
		user.CoverURL = *input.CoverURL
	}
	if input.Birthday != nil {
		user.Birthday = input.Birthday
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}
	if input.IsPrivate != nil {
		user.IsPrivate = *input.IsPrivate
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, buildPrivateUserResponse(user))
}

// endregion

// region --- Helpers ---

func pageParams(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100 // Max limit
	}
	return page, limit
}

// canViewProfile reports whether the viewer may see a private target's full
// profile: accepted followers and friends may.
func canViewProfile(viewerID, targetID uint) bool {
	var count int64
	database.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ? AND status = ?", viewerID, targetID, models.FollowAccepted).
		Count(&count)
	if count > 0 {
		return true
	}
	database.DB.Model(&models.Friendship{}).
		Where("((user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)) AND status = ?",
			viewerID, targetID, targetID, viewerID, models.StatusAccepted).
		Count(&count)
	return count > 0
}

func relationCounts(userID uint) (friends, followers, following int64) {
	// These counts can be optimized later if performance is an issue
	database.DB.Model(&models.Friendship{}).
		Where("(user_id = ? OR friend_id = ?) AND status = ?", userID, userID, models.StatusAccepted).
		Count(&friends)
	database.DB.Model(&models.Follow{}).
		Where("following_id = ? AND status = ?", userID, models.FollowAccepted).
		Count(&followers)
	database.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND status = ?", userID, models.FollowAccepted).
		Count(&following)
	return friends, followers, following
}

func buildPublicUserResponse(targetUser models.User, viewerID uint) PublicUserResponse {
	friends, followers, following := relationCounts(targetUser.ID)

	return PublicUserResponse{
		ID:             targetUser.ID,
		Username:       targetUser.Username,
		FirstName:      targetUser.FirstName,
		LastName:       targetUser.LastName,
		Bio:            targetUser.Bio,
		AvatarURL:      targetUser.AvatarURL,
		CoverURL:       targetUser.CoverURL,
		IsPrivate:      targetUser.IsPrivate,
		FriendsCount:   friends,
		FollowersCount: followers,
		FollowingCount: following,
	}
}

func buildPrivateUserResponse(user models.User) PrivateUserResponse {
	friends, followers, following := relationCounts(user.ID)

	return PrivateUserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Bio:            user.Bio,
		AvatarURL:      user.AvatarURL,
		CoverURL:       user.CoverURL,
		Birthday:       user.Birthday,
		Gender:         user.Gender,
		IsPrivate:      user.IsPrivate,
		FriendsCount:   friends,
		FollowersCount: followers,
		FollowingCount: following,
	}
}

// endregion
