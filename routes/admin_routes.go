package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shaikhmoiz3010/pointsolution-server/controllers"
	"github.com/shaikhmoiz3010/pointsolution-server/middleware"
	"github.com/shaikhmoiz3010/pointsolution-server/models"
	"github.com/shaikhmoiz3010/pointsolution-server/websocket"
)

// RegisterAdminRoutes sets up the operator dashboard routes
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	adminController := controllers.NewAdminController(db, hub)

	admin := e.Group("/api/admin")
	admin.Use(middleware.JWTMiddleware(), middleware.RequireRole(models.RoleAdmin))

	admin.GET("/stats", adminController.GetAdminStats)
	admin.GET("/analytics/services", adminController.GetServiceAnalytics)

	admin.GET("/bookings", adminController.GetAllBookings)
	admin.GET("/bookings/recent", adminController.GetRecentBookings)
	admin.GET("/bookings/:id", adminController.GetBookingDetails)
	admin.PUT("/bookings/:id", adminController.UpdateBookingDetails)
	admin.PUT("/bookings/:id/status", adminController.UpdateBookingStatus)
	admin.DELETE("/bookings/:id", adminController.DeleteBooking)
	admin.POST("/bookings/:id/notify", adminController.SendNotification)

	admin.GET("/users", adminController.GetAllUsers)
	admin.PUT("/users/:id", adminController.UpdateUser)
	admin.DELETE("/users/:id", adminController.DeleteUser)
}
