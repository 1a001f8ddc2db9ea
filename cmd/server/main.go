package main

import (
	"fmt"
	"log"
	"net/http"

	"socialnet/backend/internal/auth"
	"socialnet/backend/internal/config"
	"socialnet/backend/internal/database"
	"socialnet/backend/internal/handler"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "socialnet/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           SocialNet API
// @version         1.0
// @description     This is the API for the SocialNet friend-network service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/signup", handler.SignupUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes
		userRoutes := apiV1.Group("/users")
		{
			// Search works with or without a token
			userRoutes.GET("", auth.OptionalAuthMiddleware(), handler.SearchUsers)
			userRoutes.GET("/me", auth.AuthMiddleware(), handler.GetMe)
		}

		// Friend request routes (protected)
		requestRoutes := apiV1.Group("/friend-requests")
		requestRoutes.Use(auth.AuthMiddleware())
		{
			requestRoutes.POST("", handler.SendFriendRequest)
			requestRoutes.GET("/pending", handler.ListPendingRequests)
			requestRoutes.POST("/:id/accept", handler.AcceptFriendRequest)
			requestRoutes.POST("/:id/reject", handler.RejectFriendRequest)
		}

		// Friendship routes (protected)
		friendRoutes := apiV1.Group("/friends")
		friendRoutes.Use(auth.AuthMiddleware())
		{
			friendRoutes.GET("", handler.ListFriends)
			friendRoutes.DELETE("/:id", handler.RemoveFriend)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			adminRoutes.DELETE("/users/:id", handler.DeleteUser)
		}
	}

	fmt.Printf("Server is running on %s\n", config.AppConfig.ServerAddr)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(config.AppConfig.ServerAddr))
}
