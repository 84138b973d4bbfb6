package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shaikhmoiz3010/pointsolution-server/config"
	"github.com/shaikhmoiz3010/pointsolution-server/middleware"
	"github.com/shaikhmoiz3010/pointsolution-server/models"
	"github.com/shaikhmoiz3010/pointsolution-server/utils"
)

const (
	maxLoginAttempts   = 5
	loginAttemptWindow = 30 * time.Minute
)

// AuthController contains authentication logic
type AuthController struct {
	DB            *mongo.Client
	logger        *log.Logger
	loginAttempts map[string]struct {
		count       int
		lastAttempt time.Time
	}
	loginAttemptsMu sync.RWMutex
}

// NewAuthController creates a new auth controller
func NewAuthController(db *mongo.Client) *AuthController {
	ac := &AuthController{
		DB:     db,
		logger: log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
		loginAttempts: make(map[string]struct {
			count       int
			lastAttempt time.Time
		}),
	}

	go ac.startLoginAttemptCleanupRoutine()

	return ac
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Validation failed: fullName, email and a password of at least 6 characters are required"))
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid email format"))
	}

	phone, err := utils.SanitizePhone(req.Phone)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid phone number format"))
	}

	collection := config.GetCollection(ac.DB, "users")

	count, err := collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to check existing users"))
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, models.Fail("An account with this email already exists"))
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to process password"))
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  utils.SanitizeInput(req.FullName),
		Email:     email,
		Phone:     phone,
		Password:  hashedPassword,
		Role:      models.RoleUser,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Fail("An account with this email already exists"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to create user"))
	}

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate token"))
	}

	return c.JSON(http.StatusCreated, models.OK("Account created successfully", echo.Map{
		"token":        token,
		"refreshToken": refreshToken,
		"user":         user,
	}))
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Email and password are required"))
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid email format"))
	}

	ac.loginAttemptsMu.RLock()
	attempts, exists := ac.loginAttempts[email]
	ac.loginAttemptsMu.RUnlock()

	if exists && attempts.count >= maxLoginAttempts && time.Since(attempts.lastAttempt) < loginAttemptWindow {
		return c.JSON(http.StatusTooManyRequests, models.Fail("Too many failed login attempts. Please try again later."))
	}

	collection := config.GetCollection(ac.DB, "users")

	var user models.User
	err = collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			ac.recordFailedLogin(email)
			return c.JSON(http.StatusUnauthorized, models.Fail("Invalid credentials"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to find user"))
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		ac.recordFailedLogin(email)
		return c.JSON(http.StatusUnauthorized, models.Fail("Invalid credentials"))
	}

	if !user.IsActive {
		return c.JSON(http.StatusUnauthorized, models.Fail("User account is deactivated"))
	}

	ac.loginAttemptsMu.Lock()
	delete(ac.loginAttempts, email)
	ac.loginAttemptsMu.Unlock()

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate token"))
	}

	ac.logger.Printf("User logged in: %s", user.Email)

	return c.JSON(http.StatusOK, models.OK("Login successful", echo.Map{
		"token":        token,
		"refreshToken": refreshToken,
		"user":         user,
	}))
}

// Logout handles POST /api/auth/logout by revoking the presented token.
func (ac *AuthController) Logout(c echo.Context) error {
	tokenString, err := utils.TokenFromHeader(c.Request().Header.Get("Authorization"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("No token provided"))
	}

	claims := middleware.GetUserFromToken(c)
	expiry := time.Now().Add(middleware.AccessTokenTTL)
	if claims != nil && claims.ExpiresAt > 0 {
		expiry = time.Unix(claims.ExpiresAt, 0)
	}

	middleware.BlacklistToken(tokenString, expiry)

	return c.JSON(http.StatusOK, models.OK("Logged out successfully", nil))
}

// Me handles GET /api/auth/me
func (ac *AuthController) Me(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Unauthorized"))
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid user ID"))
	}

	var user models.User
	err = config.GetCollection(ac.DB, "users").FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusUnauthorized, models.Fail("User no longer exists"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to find user"))
	}

	return c.JSON(http.StatusOK, models.OK("", echo.Map{"user": user}))
}

// RefreshToken handles POST /api/auth/refresh. The presented refresh
// token must still be valid and unrevoked.
func (ac *AuthController) RefreshToken(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, models.Fail("Refresh token is required"))
	}

	if middleware.IsTokenBlacklisted(req.RefreshToken) {
		return c.JSON(http.StatusUnauthorized, models.Fail("Token has been invalidated"))
	}

	claims, err := utils.ParseToken(req.RefreshToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Invalid or expired refresh token"))
	}

	objID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Invalid token claims"))
	}

	// Re-check the account so a deactivated user can't renew access.
	var user models.User
	err = config.GetCollection(ac.DB, "users").FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil || !user.IsActive {
		return c.JSON(http.StatusUnauthorized, models.Fail("User account is not available"))
	}

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate token"))
	}

	return c.JSON(http.StatusOK, models.OK("Token refreshed", echo.Map{
		"token":        token,
		"refreshToken": refreshToken,
	}))
}

func (ac *AuthController) recordFailedLogin(email string) {
	ac.loginAttemptsMu.Lock()
	defer ac.loginAttemptsMu.Unlock()

	attempts := ac.loginAttempts[email]
	attempts.count++
	attempts.lastAttempt = time.Now()
	ac.loginAttempts[email] = attempts
}

func (ac *AuthController) startLoginAttemptCleanupRoutine() {
	for {
		time.Sleep(time.Hour)
		now := time.Now()
		ac.loginAttemptsMu.Lock()
		for email, attempts := range ac.loginAttempts {
			if now.Sub(attempts.lastAttempt) > loginAttemptWindow {
				delete(ac.loginAttempts, email)
			}
		}
		ac.loginAttemptsMu.Unlock()
	}
}
