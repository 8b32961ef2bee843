package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"memoria/backend/internal/auth"
	"memoria/backend/internal/config"
	"memoria/backend/internal/database"
	"memoria/backend/internal/models"
	"memoria/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
}

// setupTestDB points the global DB at a fresh in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	database.DB = db
	return db
}

// setupRouter registers the routes under test, mirroring cmd/server.
func setupRouter() *gin.Engine {
	router := gin.New()

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", RegisterUser)
			authRoutes.POST("/verify", VerifyEmail)
			authRoutes.POST("/login", LoginUser)
		}

		userRoutes := api.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", SearchUsers)
			userRoutes.GET("/me", GetMe)
			userRoutes.PUT("/me", UpdateMe)
			userRoutes.GET("/me/follow-requests", ListFollowRequests)
			userRoutes.POST("/follow-requests/:id/accept", AcceptFollowRequest)
			userRoutes.POST("/follow-requests/:id/decline", DeclineFollowRequest)
			userRoutes.GET("/:id", GetUserByID)
			userRoutes.GET("/:id/relationship", GetRelationship)
			userRoutes.GET("/:id/posts", GetUserPosts)
			userRoutes.POST("/:id/follow", FollowUser)
			userRoutes.DELETE("/:id/follow", UnfollowUser)
			userRoutes.POST("/:id/block", BlockUser)
			userRoutes.DELETE("/:id/block", UnblockUser)
		}

		friendshipRoutes := api.Group("/friendships")
		friendshipRoutes.Use(auth.AuthMiddleware())
		{
			friendshipRoutes.POST("", CreateFriendship)
			friendshipRoutes.GET("/incoming", IncomingFriendRequests)
			friendshipRoutes.GET("/outgoing", OutgoingFriendRequests)
			friendshipRoutes.PUT("/:id", RespondFriendship)
			friendshipRoutes.POST("/:id/accept", AcceptFriendship)
			friendshipRoutes.POST("/:id/decline", DeclineFriendship)
			friendshipRoutes.DELETE("/:id/revoke", RevokeFriendship)
		}

		notificationRoutes := api.Group("/notifications")
		notificationRoutes.Use(auth.AuthMiddleware())
		{
			notificationRoutes.GET("/me", MyNotifications)
			notificationRoutes.PUT("/read-all", MarkAllNotificationsRead)
			notificationRoutes.PUT("/:id/read", MarkNotificationRead)
		}

		api.GET("/posts/:id", auth.OptionalAuthMiddleware(), GetPost)

		postRoutes := api.Group("/posts")
		postRoutes.Use(auth.AuthMiddleware())
		{
			postRoutes.POST("", CreatePost)
			postRoutes.DELETE("/:id", DeletePost)
			postRoutes.POST("/:id/comments", CreateComment)
			postRoutes.DELETE("/:id/comments/:commentID", DeleteComment)
			postRoutes.PUT("/:id/reaction", ReactToPost)
			postRoutes.DELETE("/:id/reaction", RemoveReaction)
		}

		messageRoutes := api.Group("/messages")
		messageRoutes.Use(auth.AuthMiddleware())
		{
			messageRoutes.POST("", SendMessage)
			messageRoutes.GET("/:id", GetConversation)
		}
	}

	return router
}

// createUser inserts a verified user directly.
func createUser(t *testing.T, username string, private bool) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     username,
		IsPrivate:    private,
		Verified:     true,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func urlf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

func bearer(t *testing.T, userID uint) string {
	t.Helper()

	token, err := jwt.GenerateToken(userID)
	require.NoError(t, err)
	return "Bearer " + token
}

// doRequest performs an authenticated JSON request against the router.
// A zero userID sends no Authorization header.
func doRequest(t *testing.T, router *gin.Engine, method, path string, userID uint, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("Authorization", bearer(t, userID))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
