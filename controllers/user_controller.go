package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shaikhmoiz3010/pointsolution-server/config"
	"github.com/shaikhmoiz3010/pointsolution-server/middleware"
	"github.com/shaikhmoiz3010/pointsolution-server/models"
	"github.com/shaikhmoiz3010/pointsolution-server/utils"
)

// UserController handles profile and notification endpoints
type UserController struct {
	DB *mongo.Client
}

// NewUserController creates a new user controller
func NewUserController(db *mongo.Client) *UserController {
	return &UserController{DB: db}
}

func (uc *UserController) currentUserID(c echo.Context) (primitive.ObjectID, error) {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(userID)
}

// UpdateProfile handles PUT /api/users/profile
func (uc *UserController) UpdateProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := uc.currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Unauthorized"))
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.FullName != "" {
		update["fullName"] = utils.SanitizeInput(req.FullName)
	}
	if req.Phone != "" {
		phone, err := utils.SanitizePhone(req.Phone)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Fail("Invalid phone number format"))
		}
		update["phone"] = phone
	}
	if req.Address != nil {
		update["address"] = models.Address{
			Street:  utils.SanitizeInput(req.Address.Street),
			City:    utils.SanitizeInput(req.Address.City),
			State:   utils.SanitizeInput(req.Address.State),
			Pincode: utils.SanitizeInput(req.Address.Pincode),
		}
	}
	if req.AadhaarNumber != "" {
		update["aadhaarNumber"] = utils.SanitizeInput(req.AadhaarNumber)
	}
	if req.PANNumber != "" {
		update["panNumber"] = utils.SanitizeInput(req.PANNumber)
	}

	collection := config.GetCollection(uc.DB, "users")

	var user models.User
	err = collection.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("User not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update profile"))
	}

	return c.JSON(http.StatusOK, models.OK("Profile updated successfully", echo.Map{"user": user}))
}

// ChangePassword handles POST /api/users/change-password
func (uc *UserController) ChangePassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := uc.currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Unauthorized"))
	}

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Current password and a new password of at least 6 characters are required"))
	}

	collection := config.GetCollection(uc.DB, "users")

	var user models.User
	if err := collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return c.JSON(http.StatusNotFound, models.Fail("User not found"))
	}

	if !utils.CheckPassword(user.Password, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, models.Fail("Current password is incorrect"))
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to process password"))
	}

	_, err = collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{"password": hashedPassword, "updatedAt": time.Now()},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to change password"))
	}

	return c.JSON(http.StatusOK, models.OK("Password changed successfully", nil))
}

// GetNotifications handles GET /api/users/notifications
func (uc *UserController) GetNotifications(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := uc.currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Unauthorized"))
	}

	collection := config.GetCollection(uc.DB, "notifications")

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(50)
	cursor, err := collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch notifications"))
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode notifications"))
	}

	return c.JSON(http.StatusOK, models.OK("", echo.Map{"notifications": notifications}))
}

// MarkNotificationRead handles PUT /api/users/notifications/:id/read
func (uc *UserController) MarkNotificationRead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := uc.currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Unauthorized"))
	}

	notifID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid notification ID"))
	}

	result, err := config.GetCollection(uc.DB, "notifications").UpdateOne(ctx,
		bson.M{"_id": notifID, "userId": userID},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update notification"))
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Fail("Notification not found"))
	}

	return c.JSON(http.StatusOK, models.OK("Notification marked as read", nil))
}
