package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shaikhmoiz3010/pointsolution-server/controllers"
	"github.com/shaikhmoiz3010/pointsolution-server/middleware"
	"github.com/shaikhmoiz3010/pointsolution-server/websocket"
)

// RegisterPaymentRoutes sets up the payment adapter routes
func RegisterPaymentRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	paymentController := controllers.NewPaymentController(db, hub)

	e.GET("/api/payments/methods", paymentController.GetPaymentMethods)

	payments := e.Group("/api/payments")
	payments.Use(middleware.JWTMiddleware())
	payments.GET("/:bookingId", paymentController.GetPaymentDetails)
	payments.PUT("/:bookingId", paymentController.UpdatePaymentStatus)
	payments.POST("/test/:bookingId", paymentController.CreateTestPayment)
}
