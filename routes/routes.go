// File: /routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ryde-api/config"
	"ryde-api/controllers"
	"ryde-api/middleware"
	"ryde-api/services"
)

func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	userController := controllers.NewUserController(db)
	friendshipController := controllers.NewFriendshipController(db, emailService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		users := protected.Group("/users")
		{
			users.GET("/me", userController.GetProfile)
			users.PUT("/me", userController.UpdateProfile)
			users.GET("/search", userController.SearchUsers)
			users.GET("/nearby", userController.GetNearbyUsers)
		}

		// Friendship routes
		friendships := protected.Group("/friendships")
		{
			friendships.POST("", friendshipController.CreateFriendship)
			friendships.GET("", friendshipController.GetMyFriendships)
			friendships.GET("/pending", friendshipController.GetPendingRequests)
			friendships.GET("/sent", friendshipController.GetSentRequests)
			friendships.GET("/friends", friendshipController.GetFriends)
			friendships.GET("/search", friendshipController.SearchFriends)
			friendships.GET("/status", friendshipController.GetFriendshipStatus)
			friendships.GET("/nearby", friendshipController.GetNearbyFriends)
			friendships.PUT("/:id/status", friendshipController.UpdateStatus)
			friendships.POST("/:id/actions", friendshipController.PerformAction)
		}
	}
}
