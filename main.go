package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/shaikhmoiz3010/pointsolution-server/config"
	"github.com/shaikhmoiz3010/pointsolution-server/middleware"
	"github.com/shaikhmoiz3010/pointsolution-server/routes"
	"github.com/shaikhmoiz3010/pointsolution-server/websocket"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis (token revocation store)
	config.ConnectRedis()
	defer config.CloseRedis()

	// Connect to database
	client := config.ConnectDB()

	// Background sweep of the in-memory token blacklist
	go middleware.CleanupBlacklist()

	// Create WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Create a new Echo instance
	e := echo.New()
	e.HideBanner = true

	// Initialize custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		AllowedDomains: []string{"*"},
		AllowInlineJS:  false,
	}))

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "OK",
			"message": "1Point 1Solution API is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/api/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		dbStatus := config.CheckDB(ctx, client)
		status := http.StatusOK
		overall := "healthy"
		if !dbStatus.Connected {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		return c.JSON(status, map[string]interface{}{
			"status":    overall,
			"database":  dbStatus,
			"timestamp": time.Now().UTC(),
		})
	})

	// WebSocket endpoint; authentication happens in-band after upgrade
	e.GET("/api/ws", func(c echo.Context) error {
		return websocket.HandleWebSocket(c, wsHub)
	})

	// Register API routes
	routes.RegisterAuthRoutes(e, client)
	routes.RegisterServiceRoutes(e, client)
	routes.RegisterBookingRoutes(e, client, wsHub)
	routes.RegisterPaymentRoutes(e, client, wsHub)
	routes.RegisterAdminRoutes(e, client, wsHub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
