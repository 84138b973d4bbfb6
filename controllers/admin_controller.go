package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shaikhmoiz3010/pointsolution-server/config"
	"github.com/shaikhmoiz3010/pointsolution-server/models"
	"github.com/shaikhmoiz3010/pointsolution-server/repositories"
	"github.com/shaikhmoiz3010/pointsolution-server/utils"
	"github.com/shaikhmoiz3010/pointsolution-server/websocket"
)

const defaultPageSize = 20

// AdminController serves the operator dashboard endpoints. Every route
// here sits behind the admin role gate.
type AdminController struct {
	DB    *mongo.Client
	repo  *repositories.BookingRepository
	wsHub *websocket.Hub
}

// NewAdminController creates a new admin controller
func NewAdminController(db *mongo.Client, hub *websocket.Hub) *AdminController {
	return &AdminController{
		DB:    db,
		repo:  repositories.NewBookingRepository(db),
		wsHub: hub,
	}
}

// GetAdminStats handles GET /api/admin/stats
func (ac *AdminController) GetAdminStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	bookings := config.GetCollection(ac.DB, "bookings")
	users := config.GetCollection(ac.DB, "users")

	totalBookings, err := bookings.CountDocuments(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch stats"))
	}
	totalUsers, err := users.CountDocuments(ctx, bson.M{"role": models.RoleUser})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch stats"))
	}
	pendingBookings, err := bookings.CountDocuments(ctx, bson.M{"status": models.BookingPending})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch stats"))
	}
	completedBookings, err := bookings.CountDocuments(ctx, bson.M{"status": models.BookingCompleted})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch stats"))
	}

	// Revenue counts only money actually collected.
	var totalRevenue float64
	revCursor, err := bookings.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"paymentStatus": models.PaymentPaid}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$serviceFee"}}}},
	})
	if err == nil {
		var rows []struct {
			Total float64 `bson:"total"`
		}
		if err := revCursor.All(ctx, &rows); err == nil && len(rows) > 0 {
			totalRevenue = rows[0].Total
		}
	}

	statusBreakdown, err := ac.aggregateCounts(ctx, bookings, "$status")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch stats"))
	}

	recent, err := ac.recentBookings(ctx, 10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch stats"))
	}

	return c.JSON(http.StatusOK, models.OK("", echo.Map{
		"stats": echo.Map{
			"totalBookings":     totalBookings,
			"totalUsers":        totalUsers,
			"pendingBookings":   pendingBookings,
			"completedBookings": completedBookings,
			"totalRevenue":      totalRevenue,
			"statusBreakdown":   statusBreakdown,
			"recentBookings":    recent,
		},
	}))
}

// GetAllBookings handles GET /api/admin/bookings with status and free
// text filters plus pagination.
func (ac *AdminController) GetAllBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	query := bson.M{}
	if status := c.QueryParam("status"); status != "" && status != "all" {
		if !models.ValidBookingStatus(models.BookingStatus(status)) {
			return c.JSON(http.StatusBadRequest, models.Fail("Invalid status filter"))
		}
		query["status"] = status
	}
	if search := c.QueryParam("search"); search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"bookingId": pattern},
			bson.M{"serviceName": pattern},
			bson.M{"userDetails.fullName": pattern},
			bson.M{"userDetails.email": pattern},
			bson.M{"userDetails.phone": pattern},
		}
	}

	page, limit := paging(c)
	collection := config.GetCollection(ac.DB, "bookings")

	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch bookings"))
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, query, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch bookings"))
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode bookings"))
	}

	return c.JSON(http.StatusOK, models.OK("", echo.Map{
		"bookings":   bookings,
		"total":      total,
		"page":       page,
		"totalPages": (total + int64(limit) - 1) / int64(limit),
	}))
}

// GetRecentBookings handles GET /api/admin/bookings/recent
func (ac *AdminController) GetRecentBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	recent, err := ac.recentBookings(ctx, 10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch recent bookings"))
	}

	return c.JSON(http.StatusOK, models.OK("", echo.Map{"bookings": recent}))
}

// GetBookingDetails handles GET /api/admin/bookings/:id. Accepts either
// a Mongo ID or a BK reference.
func (ac *AdminController) GetBookingDetails(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	booking, err := ac.repo.FindByIDOrRef(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Fail("Booking not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch booking"))
	}

	// The dashboard shows the live customer account and the catalog item
	// next to the booking-time snapshot.
	var user models.User
	_ = config.GetCollection(ac.DB, "users").FindOne(ctx, bson.M{"_id": booking.UserID}).Decode(&user)
	var service models.Service
	_ = config.GetCollection(ac.DB, "services").FindOne(ctx, bson.M{"_id": booking.ServiceID}).Decode(&service)

	return c.JSON(http.StatusOK, models.OK("", echo.Map{
		"booking": booking,
		"user":    user,
		"service": service,
	}))
}

// UpdateBookingStatus handles PUT /api/admin/bookings/:id/status
func (ac *AdminController) UpdateBookingStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if !models.ValidBookingStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid status. Must be: pending, processing, completed, or cancelled"))
	}

	booking, err := ac.repo.FindByIDOrRef(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Fail("Booking not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch booking"))
	}

	message := req.Message
	if message == "" {
		message = fmt.Sprintf("Status updated to %s by admin", req.Status)
	}

	err = ac.repo.Transition(ctx, booking, req.Status, message, "Admin")
	if err != nil {
		var invalid *models.ErrInvalidTransition
		if errors.As(err, &invalid) {
			return c.JSON(http.StatusBadRequest, models.Fail(invalid.Error()))
		}
		if errors.Is(err, repositories.ErrConflict) {
			return c.JSON(http.StatusConflict, models.Fail("Booking was modified concurrently, please retry"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update booking status"))
	}

	utils.SendBookingUpdateEmail(booking.UserDetails.Email, booking.UserDetails.FullName, booking.BookingID, "Your booking status is now "+string(booking.Status))

	ac.notify(booking, websocket.EventBookingUpdate, "Booking status updated")

	return c.JSON(http.StatusOK, models.OK(fmt.Sprintf("Booking status updated to %s", booking.Status), echo.Map{
		"booking": echo.Map{
			"id":            booking.ID,
			"bookingId":     booking.BookingID,
			"status":        booking.Status,
			"paymentStatus": booking.PaymentStatus,
			"tracking":      booking.Tracking,
		},
	}))
}

// UpdateBookingDetails handles PUT /api/admin/bookings/:id. Only a fixed
// set of fields may be edited; lifecycle fields go through the status
// and payment endpoints.
func (ac *AdminController) UpdateBookingDetails(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req struct {
		ServiceFee     *float64                   `json:"serviceFee"`
		AdditionalInfo *string                    `json:"additionalInfo"`
		UserDetails    *models.BookingUserDetails `json:"userDetails"`
		PaymentMethod  *models.PaymentMethod      `json:"paymentMethod"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}

	booking, err := ac.repo.FindByIDOrRef(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Fail("Booking not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch booking"))
	}

	now := time.Now()
	update := bson.M{"updatedAt": now}
	if req.ServiceFee != nil {
		if *req.ServiceFee < 0 {
			return c.JSON(http.StatusBadRequest, models.Fail("serviceFee cannot be negative"))
		}
		update["serviceFee"] = *req.ServiceFee
		booking.ServiceFee = *req.ServiceFee
	}
	if req.AdditionalInfo != nil {
		info := utils.SanitizeInput(*req.AdditionalInfo)
		update["additionalInfo"] = info
		booking.AdditionalInfo = info
	}
	if req.UserDetails != nil {
		// Merge over the existing snapshot so partial edits keep the rest.
		details := booking.UserDetails
		if req.UserDetails.FullName != "" {
			details.FullName = req.UserDetails.FullName
		}
		if req.UserDetails.Email != "" {
			details.Email = req.UserDetails.Email
		}
		if req.UserDetails.Phone != "" {
			details.Phone = req.UserDetails.Phone
		}
		if req.UserDetails.Address != (models.Address{}) {
			details.Address = req.UserDetails.Address
		}
		if req.UserDetails.AadhaarNumber != "" {
			details.AadhaarNumber = req.UserDetails.AadhaarNumber
		}
		if req.UserDetails.PANNumber != "" {
			details.PANNumber = req.UserDetails.PANNumber
		}
		update["userDetails"] = details
		booking.UserDetails = details
	}
	if req.PaymentMethod != nil {
		if !models.ValidPaymentMethod(*req.PaymentMethod) {
			return c.JSON(http.StatusBadRequest, models.Fail("Invalid payment method"))
		}
		update["paymentMethod"] = *req.PaymentMethod
		booking.PaymentMethod = *req.PaymentMethod
	}

	if len(update) == 1 {
		return c.JSON(http.StatusBadRequest, models.Fail("No editable fields in request"))
	}

	entry := models.TrackingEntry{
		Status:    booking.Status,
		Message:   "Booking details updated by admin",
		UpdatedBy: "Admin",
		Type:      "update",
		Timestamp: now,
	}
	result, err := config.GetCollection(ac.DB, "bookings").UpdateOne(ctx,
		bson.M{"_id": booking.ID},
		bson.M{"$set": update, "$push": bson.M{"tracking": entry}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update booking"))
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Fail("Booking not found"))
	}
	booking.Tracking = append(booking.Tracking, entry)

	return c.JSON(http.StatusOK, models.OK("Booking updated successfully", echo.Map{
		"booking": echo.Map{
			"id":             booking.ID,
			"bookingId":      booking.BookingID,
			"serviceFee":     booking.ServiceFee,
			"additionalInfo": booking.AdditionalInfo,
			"userDetails":    booking.UserDetails,
			"paymentMethod":  booking.PaymentMethod,
		},
	}))
}

// DeleteBooking handles DELETE /api/admin/bookings/:id
func (ac *AdminController) DeleteBooking(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	booking, err := ac.repo.FindByIDOrRef(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Fail("Booking not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch booking"))
	}

	if err := ac.repo.Delete(ctx, booking); err != nil {
		if errors.Is(err, repositories.ErrNotDeletable) {
			return c.JSON(http.StatusBadRequest, models.Fail(fmt.Sprintf(
				"Cannot delete booking with status: %s. Only pending or cancelled bookings can be deleted.", booking.Status)))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to delete booking"))
	}

	return c.JSON(http.StatusOK, models.OK("Booking deleted successfully", nil))
}

// SendNotification handles POST /api/admin/bookings/:id/notify. The
// message lands in the audit trail, the user's notification feed, their
// inbox and any live WebSocket session.
func (ac *AdminController) SendNotification(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, models.Fail("Message is required"))
	}
	message := utils.SanitizeInput(strings.TrimSpace(req.Message))

	booking, err := ac.repo.FindByIDOrRef(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Fail("Booking not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch booking"))
	}

	now := time.Now()
	entry := models.TrackingEntry{
		Status:    booking.Status,
		Message:   "Notification: " + message,
		UpdatedBy: "Admin",
		Type:      "notification",
		Timestamp: now,
	}
	if err := ac.repo.AppendTracking(ctx, booking, entry); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to send notification"))
	}

	if err := utils.SaveNotification(ac.DB, booking.UserID, "Booking "+booking.BookingID, message, "admin_message", echo.Map{
		"bookingId": booking.BookingID,
	}); err != nil {
		// Feed write failure doesn't undo the tracking entry.
		c.Logger().Warnf("failed to save notification for booking %s: %v", booking.BookingID, err)
	}

	utils.SendBookingUpdateEmail(booking.UserDetails.Email, booking.UserDetails.FullName, booking.BookingID, message)

	ac.notify(booking, websocket.EventBookingUpdate, message)

	return c.JSON(http.StatusOK, models.OK("Notification sent successfully", echo.Map{
		"notification": echo.Map{
			"message":   message,
			"timestamp": now,
			"bookingId": booking.BookingID,
		},
	}))
}

// GetAllUsers handles GET /api/admin/users with role/search filters,
// pagination and per-user booking stats.
func (ac *AdminController) GetAllUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	query := bson.M{}
	if role := c.QueryParam("role"); role != "" && role != "all" {
		query["role"] = role
	}
	if search := c.QueryParam("search"); search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"fullName": pattern},
			bson.M{"email": pattern},
			bson.M{"phone": pattern},
		}
	}

	page, limit := paging(c)
	users := config.GetCollection(ac.DB, "users")

	total, err := users.CountDocuments(ctx, query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch users"))
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := users.Find(ctx, query, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch users"))
	}
	defer cursor.Close(ctx)

	var userDocs []models.User
	if err := cursor.All(ctx, &userDocs); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode users"))
	}

	bookings := config.GetCollection(ac.DB, "bookings")

	type statusStat struct {
		Status     models.BookingStatus `json:"status" bson:"_id"`
		Count      int64                `json:"count" bson:"count"`
		TotalSpent float64              `json:"totalSpent" bson:"totalSpent"`
	}

	result := make([]echo.Map, 0, len(userDocs))
	for _, user := range userDocs {
		statCursor, err := bookings.Aggregate(ctx, mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"user": user.ID}}},
			{{Key: "$group", Value: bson.M{
				"_id":        "$status",
				"count":      bson.M{"$sum": 1},
				"totalSpent": bson.M{"$sum": "$serviceFee"},
			}}},
		})
		var breakdown []statusStat
		if err == nil {
			_ = statCursor.All(ctx, &breakdown)
		}

		var totalBookings int64
		var totalSpent float64
		for _, s := range breakdown {
			totalBookings += s.Count
			totalSpent += s.TotalSpent
		}

		result = append(result, echo.Map{
			"user": user,
			"stats": echo.Map{
				"totalBookings":   totalBookings,
				"totalSpent":      totalSpent,
				"statusBreakdown": breakdown,
			},
		})
	}

	return c.JSON(http.StatusOK, models.OK("", echo.Map{
		"users":      result,
		"total":      total,
		"page":       page,
		"totalPages": (total + int64(limit) - 1) / int64(limit),
	}))
}

// UpdateUser handles PUT /api/admin/users/:id
func (ac *AdminController) UpdateUser(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid user ID"))
	}

	var req models.AdminUpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.FullName != nil {
		update["fullName"] = utils.SanitizeInput(*req.FullName)
	}
	if req.Phone != nil {
		phone, err := utils.SanitizePhone(*req.Phone)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Fail("Invalid phone number format"))
		}
		update["phone"] = phone
	}
	if req.Address != nil {
		update["address"] = *req.Address
	}
	if req.Role != nil {
		if *req.Role != models.RoleUser && *req.Role != models.RoleAdmin {
			return c.JSON(http.StatusBadRequest, models.Fail("Invalid role"))
		}
		update["role"] = *req.Role
	}
	if req.IsActive != nil {
		update["isActive"] = *req.IsActive
	}

	var user models.User
	err = config.GetCollection(ac.DB, "users").FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("User not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update user"))
	}

	return c.JSON(http.StatusOK, models.OK("User updated successfully", echo.Map{"user": user}))
}

// DeleteUser handles DELETE /api/admin/users/:id. Users with any
// bookings on record can only be deactivated, not deleted.
func (ac *AdminController) DeleteUser(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid user ID"))
	}

	users := config.GetCollection(ac.DB, "users")

	var user models.User
	if err := users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("User not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch user"))
	}

	count, err := ac.repo.CountForUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to check user bookings"))
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, models.Fail(fmt.Sprintf(
			"Cannot delete user with %d active bookings. Delete bookings first or deactivate the user.", count)))
	}

	if _, err := users.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to delete user"))
	}

	return c.JSON(http.StatusOK, models.OK("User deleted successfully", nil))
}

// GetServiceAnalytics handles GET /api/admin/analytics/services
func (ac *AdminController) GetServiceAnalytics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	bookings := config.GetCollection(ac.DB, "bookings")
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)

	var popularServices []bson.M
	cursor, err := bookings.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": thirtyDaysAgo}}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$serviceName",
			"count":        bson.M{"$sum": 1},
			"totalRevenue": bson.M{"$sum": "$serviceFee"},
			"category":     bson.M{"$first": "$category"},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: 10}},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch analytics"))
	}
	if err := cursor.All(ctx, &popularServices); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode analytics"))
	}

	var revenueByDay []bson.M
	cursor, err = bookings.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"paymentStatus": models.PaymentPaid,
			"createdAt":     bson.M{"$gte": thirtyDaysAgo},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":      bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
			"revenue":  bson.M{"$sum": "$serviceFee"},
			"bookings": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch analytics"))
	}
	if err := cursor.All(ctx, &revenueByDay); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode analytics"))
	}

	statusDistribution, err := ac.aggregateCounts(ctx, bookings, "$status")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch analytics"))
	}
	paymentMethodDistribution, err := ac.aggregateCounts(ctx, bookings, "$paymentMethod")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch analytics"))
	}

	return c.JSON(http.StatusOK, models.OK("", echo.Map{
		"analytics": echo.Map{
			"popularServices":           popularServices,
			"revenueByDay":              revenueByDay,
			"statusDistribution":        statusDistribution,
			"paymentMethodDistribution": paymentMethodDistribution,
			"timeframe":                 "Last 30 days",
		},
	}))
}

func (ac *AdminController) aggregateCounts(ctx context.Context, collection *mongo.Collection, field string) ([]bson.M, error) {
	cursor, err := collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (ac *AdminController) recentBookings(ctx context.Context, limit int64) ([]models.BookingSummary, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit)
	cursor, err := config.GetCollection(ac.DB, "bookings").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}

	summaries := make([]models.BookingSummary, 0, len(bookings))
	for i := range bookings {
		summaries = append(summaries, bookings[i].Summary())
	}
	return summaries, nil
}

func (ac *AdminController) notify(booking *models.Booking, event, message string) {
	if ac.wsHub == nil {
		return
	}
	_ = ac.wsHub.SendToUser(booking.UserID, websocket.Notification{
		Type:    event,
		Message: message,
		Data:    booking.Summary(),
	})
}

func paging(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = defaultPageSize
	}
	return page, limit
}
