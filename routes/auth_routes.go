package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shaikhmoiz3010/pointsolution-server/controllers"
	"github.com/shaikhmoiz3010/pointsolution-server/middleware"
)

// RegisterAuthRoutes sets up authentication and profile routes
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Client) {
	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)

	auth := e.Group("/api/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.POST("/refresh", authController.RefreshToken)

	// Routes below require a valid token
	protected := e.Group("/api/auth")
	protected.Use(middleware.JWTMiddleware())
	protected.POST("/logout", authController.Logout)
	protected.GET("/me", authController.Me)

	users := e.Group("/api/users")
	users.Use(middleware.JWTMiddleware())
	users.PUT("/profile", userController.UpdateProfile)
	users.POST("/change-password", userController.ChangePassword)
	users.GET("/notifications", userController.GetNotifications)
	users.PUT("/notifications/:id/read", userController.MarkNotificationRead)
}
