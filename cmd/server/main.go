package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"memoria/backend/internal/auth"
	"memoria/backend/internal/config"
	"memoria/backend/internal/database"
	"memoria/backend/internal/handler"
	"memoria/backend/internal/hub"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "memoria/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Memoria API
// @version         1.0
// @description     This is the API for the Memoria social network.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseDSN)

	// Cross-node fan-out is optional: without Redis the hub still delivers
	// to connections on this node.
	if config.AppConfig.RedisAddr != "" {
		bridge, err := hub.NewRedisBridge(config.AppConfig.RedisAddr)
		if err != nil {
			log.Printf("Warning: Redis unavailable (%v), real-time events stay node-local", err)
		} else {
			hub.GlobalHub.SetBridge(bridge)
			go bridge.Run(context.Background(), hub.GlobalHub)
		}
	}

	router := gin.Default()
	router.Use(cors.Default())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API routes
	api := router.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/verify", handler.VerifyEmail)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (protected)
		userRoutes := api.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", handler.SearchUsers) // Must be before /:id
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.PUT("/me", handler.UpdateMe)
			userRoutes.GET("/me/follow-requests", handler.ListFollowRequests)
			userRoutes.POST("/follow-requests/:id/accept", handler.AcceptFollowRequest)
			userRoutes.POST("/follow-requests/:id/decline", handler.DeclineFollowRequest)
			userRoutes.GET("/:id", handler.GetUserByID)
			userRoutes.GET("/:id/relationship", handler.GetRelationship)
			userRoutes.GET("/:id/posts", handler.GetUserPosts)

			// Follow and block edges
			userRoutes.POST("/:id/follow", handler.FollowUser)
			userRoutes.DELETE("/:id/follow", handler.UnfollowUser)
			userRoutes.POST("/:id/block", handler.BlockUser)
			userRoutes.DELETE("/:id/block", handler.UnblockUser)
		}

		// Friendship routes (protected)
		friendshipRoutes := api.Group("/friendships")
		friendshipRoutes.Use(auth.AuthMiddleware())
		{
			friendshipRoutes.POST("", handler.CreateFriendship)
			friendshipRoutes.GET("/incoming", handler.IncomingFriendRequests)
			friendshipRoutes.GET("/outgoing", handler.OutgoingFriendRequests)
			friendshipRoutes.PUT("/:id", handler.RespondFriendship)
			friendshipRoutes.POST("/:id/accept", handler.AcceptFriendship)
			friendshipRoutes.POST("/:id/decline", handler.DeclineFriendship)
			friendshipRoutes.DELETE("/:id/revoke", handler.RevokeFriendship)
		}

		// Notification routes (protected)
		notificationRoutes := api.Group("/notifications")
		notificationRoutes.Use(auth.AuthMiddleware())
		{
			notificationRoutes.GET("/me", handler.MyNotifications)
			notificationRoutes.PUT("/read-all", handler.MarkAllNotificationsRead)
			notificationRoutes.PUT("/:id/read", handler.MarkNotificationRead)
		}

		// Reading a single post works without a session; privacy is enforced
		// in the handler.
		api.GET("/posts/:id", auth.OptionalAuthMiddleware(), handler.GetPost)

		// Post routes (protected)
		postRoutes := api.Group("/posts")
		postRoutes.Use(auth.AuthMiddleware())
		{
			postRoutes.POST("", handler.CreatePost)
			postRoutes.DELETE("/:id", handler.DeletePost)
			postRoutes.POST("/:id/comments", handler.CreateComment)
			postRoutes.DELETE("/:id/comments/:commentID", handler.DeleteComment)
			postRoutes.PUT("/:id/reaction", handler.ReactToPost)
			postRoutes.DELETE("/:id/reaction", handler.RemoveReaction)
		}

		// Message routes (protected)
		messageRoutes := api.Group("/messages")
		messageRoutes.Use(auth.AuthMiddleware())
		{
			messageRoutes.POST("", handler.SendMessage)
			messageRoutes.GET("/:id", handler.GetConversation)
		}

		// Real-time channel (protected)
		api.GET("/ws", auth.AuthMiddleware(), handler.ServeWS)
	}

	addr := ":" + config.AppConfig.Port
	fmt.Println("Server is running on " + addr)
	fmt.Println("Swagger UI is available at http://localhost" + addr + "/swagger/index.html")
	log.Fatal(router.Run(addr))
}
