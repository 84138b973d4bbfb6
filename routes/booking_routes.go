package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shaikhmoiz3010/pointsolution-server/controllers"
	"github.com/shaikhmoiz3010/pointsolution-server/middleware"
	"github.com/shaikhmoiz3010/pointsolution-server/models"
	"github.com/shaikhmoiz3010/pointsolution-server/websocket"
)

// RegisterBookingRoutes sets up the booking lifecycle routes
func RegisterBookingRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	bookingController := controllers.NewBookingController(db, hub)

	bookings := e.Group("/api/bookings")
	bookings.Use(middleware.JWTMiddleware())

	bookings.POST("", bookingController.CreateBooking)
	bookings.GET("", bookingController.GetUserBookings)
	bookings.GET("/my-bookings", bookingController.GetUserBookings)
	bookings.GET("/stats", bookingController.GetBookingStats)
	bookings.GET("/:id", bookingController.GetBooking)
	bookings.GET("/:id/qrcode", bookingController.GetBookingQRCode)
	bookings.PUT("/:id/payment", bookingController.UpdatePayment)
	bookings.PUT("/:id/cancel", bookingController.CancelBooking)
	bookings.DELETE("/:id", bookingController.DeleteBooking)

	// Admin shortcuts on the same resource
	admin := e.Group("/api/bookings")
	admin.Use(middleware.JWTMiddleware(), middleware.RequireRole(models.RoleAdmin))
	admin.PUT("/:id/status", bookingController.UpdateBookingStatus)
	admin.PUT("/:id/mark-paid", bookingController.MarkAsPaid)
}
