package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"memoria/backend/internal/database"
	"memoria/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// PostInput defines the request body for creating a post.
type PostInput struct {
	Caption  string `json:"caption"`
	ImageURL string `json:"image_url"`
}

// CommentInput defines the request body for commenting on a post.
type CommentInput struct {
	Content string `json:"content" binding:"required"`
}

// ReactionInput defines the request body for reacting to a post.
type ReactionInput struct {
	Type string `json:"type"`
}

// CommentResponse defines the structure for a comment.
type CommentResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PostResponse defines the structure for a post.
type PostResponse struct {
	ID            uint              `json:"id"`
	UserID        uint              `json:"user_id"`
	Username      string            `json:"username"`
	Caption       string            `json:"caption,omitempty"`
	ImageURL      string            `json:"image_url,omitempty"`
	CommentCount  int               `json:"comment_count"`
	ReactionCount int               `json:"reaction_count"`
	Comments      []CommentResponse `json:"comments,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

func newPostResponse(post models.Post) PostResponse {
	comments := make([]CommentResponse, 0, len(post.Comments))
	for _, comment := range post.Comments {
		comments = append(comments, CommentResponse{
			ID:        comment.ID,
			UserID:    comment.UserID,
			Username:  comment.User.Username,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		})
	}

	return PostResponse{
		ID:            post.ID,
		UserID:        post.UserID,
		Username:      post.User.Username,
		Caption:       post.Caption,
		ImageURL:      post.ImageURL,
		CommentCount:  len(post.Comments),
		ReactionCount: len(post.Reactions),
		Comments:      comments,
		CreatedAt:     post.CreatedAt,
	}
}

// endregion

// region --- Post Handlers ---

// CreatePost godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostInput true "Post content"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /posts [post]
func CreatePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Caption == "" && input.ImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post must have a caption or an image"})
		return
	}

	post := models.Post{
		UserID:   viewerID.(uint),
		Caption:  input.Caption,
		ImageURL: input.ImageURL,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	database.DB.Preload("User").First(&post, post.ID)
	c.JSON(http.StatusCreated, newPostResponse(post))
}

// GetPost godoc
// @Summary      Get a post
// @Description  Retrieves a post with its comments and reaction count. No session is required; posts of private accounts are only visible to the owner and accepted followers or friends.
// @Tags         posts
// @Produce      json
// @Param        id   path  int  true  "Post ID"
// @Success      200  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post missing or not visible"
// @Router       /posts/{id} [get]
func GetPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	err = database.DB.Preload("User").Preload("Comments.User").Preload("Reactions").
		First(&post, uint(postID)).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// A private account's posts stay hidden from strangers; a 404 does not
	// reveal whether the post exists.
	if post.User.IsPrivate {
		viewerID, authed := c.Get("userID")
		if !authed || (viewerID.(uint) != post.UserID && !canViewProfile(viewerID.(uint), post.UserID)) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
	}

	c.JSON(http.StatusOK, newPostResponse(post))
}

// GetUserPosts godoc
// @Summary      List a user's posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id    path   int  true   "User ID"
// @Param        page  query  int  false  "Page number" default(1)
// @Param        limit query  int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/{id}/posts [get]
func GetUserPosts(c *gin.Context) {
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	page, limit := pageParams(c)

	query := database.DB.Model(&models.Post{}).Where("user_id = ?", uint(targetUserID))

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count posts"})
		return
	}

	var posts []models.Post
	err = database.DB.Where("user_id = ?", uint(targetUserID)).
		Preload("User").Preload("Comments.User").Preload("Reactions").
		Order("created_at DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, newPostResponse(post))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, totalItems, page, limit))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes one of the authenticated user's own posts.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the post owner"
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [delete]
func DeletePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if post.UserID != viewerID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete another user's post"})
		return
	}

	if err := database.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.Status(http.StatusNoContent)
}

// endregion

// region --- Comment Handlers ---

// CreateComment godoc
// @Summary      Comment on a post
// @Description  Adds a comment; the post owner gets a comment notification.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int           true  "Post ID"
// @Param        input body  CommentInput  true  "Comment"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /posts/{id}/comments [post]
func CreateComment(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  viewerID.(uint),
		Content: input.Content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	if post.UserID != viewerID.(uint) {
		relatedID := post.ID
		newNotifier().Emit(models.NotificationComment, post.UserID, viewerID.(uint), &relatedID)
	}

	database.DB.Preload("User").First(&comment, comment.ID)
	c.JSON(http.StatusCreated, CommentResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		Username:  comment.User.Username,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	})
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Removes a comment. Allowed for the comment author and the post owner.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id         path  int  true  "Post ID"
// @Param        commentID  path  int  true  "Comment ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments/{commentID} [delete]
func DeleteComment(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	commentID, err := strconv.ParseUint(c.Param("commentID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var comment models.Comment
	if err := database.DB.First(&comment, uint(commentID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, comment.PostID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if comment.UserID != viewerID.(uint) && post.UserID != viewerID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete this comment"})
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.Status(http.StatusNoContent)
}

// endregion

// region --- Reaction Handlers ---

// ReactToPost godoc
// @Summary      React to a post
// @Description  Sets the authenticated user's reaction on a post. Reacting again replaces the type; the post owner is notified only for a new reaction.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int            true   "Post ID"
// @Param        input body  ReactionInput  false  "Reaction type, defaults to like"
// @Success      200  {object}  map[string]string "{"message": "Reaction saved"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /posts/{id}/reaction [put]
func ReactToPost(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input ReactionInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Type == "" {
		input.Type = "like"
	}

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var existing models.Reaction
	err = database.DB.Where("post_id = ? AND user_id = ?", post.ID, viewerID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		reaction := models.Reaction{
			PostID: post.ID,
			UserID: viewerID.(uint),
			Type:   input.Type,
		}
		if err := database.DB.Create(&reaction).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reaction"})
			return
		}
		if post.UserID != viewerID.(uint) {
			relatedID := post.ID
			newNotifier().Emit(models.NotificationLike, post.UserID, viewerID.(uint), &relatedID)
		}
	} else {
		err = database.DB.Model(&models.Reaction{}).
			Where("post_id = ? AND user_id = ?", post.ID, viewerID).
			Update("type", input.Type).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reaction"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reaction saved"})
}

// RemoveReaction godoc
// @Summary      Remove a reaction
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "No reaction"
// @Router       /posts/{id}/reaction [delete]
func RemoveReaction(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	result := database.DB.Where("post_id = ? AND user_id = ?", uint(postID), viewerID).Delete(&models.Reaction{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove reaction"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No reaction to remove"})
		return
	}

	c.Status(http.StatusNoContent)
}

// endregion
