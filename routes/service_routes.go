package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shaikhmoiz3010/pointsolution-server/controllers"
	"github.com/shaikhmoiz3010/pointsolution-server/middleware"
	"github.com/shaikhmoiz3010/pointsolution-server/models"
)

// RegisterServiceRoutes sets up the public service catalog routes
func RegisterServiceRoutes(e *echo.Echo, db *mongo.Client) {
	serviceController := controllers.NewServiceController(db)

	services := e.Group("/api/services")
	services.GET("", serviceController.GetAllServices)
	services.GET("/categories", serviceController.GetCategories)
	services.GET("/category/:category", serviceController.GetServicesByCategory)
	services.GET("/id/:id", serviceController.GetServiceByID)
	services.GET("/:category/:serviceId", serviceController.GetService)

	// Catalog seeding is admin only
	seed := e.Group("/api/services")
	seed.Use(middleware.JWTMiddleware(), middleware.RequireRole(models.RoleAdmin))
	seed.POST("/seed", serviceController.SeedServices)
}
