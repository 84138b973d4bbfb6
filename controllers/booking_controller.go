package controllers

import (
	"context"
	"errors"
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
	"github.com/shaikhmoiz3010/pointsolution-server/repositories"
	"github.com/shaikhmoiz3010/pointsolution-server/utils"
	"github.com/shaikhmoiz3010/pointsolution-server/websocket"
)

// BookingController handles the customer-facing booking lifecycle
type BookingController struct {
	DB    *mongo.Client
	repo  *repositories.BookingRepository
	wsHub *websocket.Hub
}

// NewBookingController creates a new booking controller
func NewBookingController(db *mongo.Client, hub *websocket.Hub) *BookingController {
	return &BookingController{
		DB:    db,
		repo:  repositories.NewBookingRepository(db),
		wsHub: hub,
	}
}

// CreateBooking handles POST /api/bookings
func (bc *BookingController) CreateBooking(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := bc.currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Unauthorized"))
	}

	var req models.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("A valid serviceId is required"))
	}

	serviceObjID, err := primitive.ObjectIDFromHex(req.ServiceID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid service ID"))
	}

	var service models.Service
	err = config.GetCollection(bc.DB, "services").FindOne(ctx, bson.M{"_id": serviceObjID}).Decode(&service)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("Service not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch service"))
	}
	if !service.IsActive {
		return c.JSON(http.StatusBadRequest, models.Fail("Service is not available for booking"))
	}

	var user models.User
	err = config.GetCollection(bc.DB, "users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("User not found"))
	}

	// Snapshot the customer details so later profile edits don't rewrite
	// booking history. Request overrides fall back to the stored profile.
	details := req.UserDetails
	if details.FullName == "" {
		details.FullName = user.FullName
	}
	if details.Email == "" {
		details.Email = user.Email
	}
	if details.Phone == "" {
		details.Phone = user.Phone
	}
	if details.Address == (models.Address{}) {
		details.Address = user.Address
	}
	if details.AadhaarNumber == "" {
		details.AadhaarNumber = user.AadhaarNumber
	}
	if details.PANNumber == "" {
		details.PANNumber = user.PANNumber
	}

	method := req.PaymentMethod
	if method == "" {
		method = models.MethodNotPaid
	}
	if !models.ValidPaymentMethod(method) {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid payment method"))
	}

	booking := newBooking(userID, &service, details, utils.SanitizeInput(req.AdditionalInfo), method, time.Now())

	if err := bc.repo.Create(ctx, &booking); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to create booking"))
	}

	utils.SendBookingConfirmationEmail(details.Email, details.FullName, booking.BookingID, booking.ServiceName, booking.ServiceFee)

	bc.notify(userID, websocket.EventBookingCreated, "Booking created successfully", booking.Summary())

	return c.JSON(http.StatusCreated, models.OK("Booking created successfully", echo.Map{
		"booking": booking,
	}))
}

// GetUserBookings handles GET /api/bookings
func (bc *BookingController) GetUserBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := bc.currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Unauthorized"))
	}

	collection := config.GetCollection(bc.DB, "bookings")

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := collection.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch bookings"))
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode bookings"))
	}

	return c.JSON(http.StatusOK, models.OK("", echo.Map{
		"count":    len(bookings),
		"bookings": bookings,
	}))
}

// GetBookingStats handles GET /api/bookings/stats. Per-status counts for
// the authenticated user.
func (bc *BookingController) GetBookingStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := bc.currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Unauthorized"))
	}

	collection := config.GetCollection(bc.DB, "bookings")

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$status",
			"count":       bson.M{"$sum": 1},
			"totalAmount": bson.M{"$sum": "$serviceFee"},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch booking stats"))
	}
	defer cursor.Close(ctx)

	breakdown := []bookingStatusGroup{}
	if err := cursor.All(ctx, &breakdown); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode booking stats"))
	}

	return c.JSON(http.StatusOK, models.OK("", echo.Map{
		"stats": summarizeBookingStats(breakdown),
	}))
}

// GetBooking handles GET /api/bookings/:id. Owners see their own
// bookings; admins see everything.
func (bc *BookingController) GetBooking(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	booking, ok := bc.loadAuthorized(ctx, c)
	if !ok {
		return nil
	}

	return c.JSON(http.StatusOK, models.OK("", echo.Map{"booking": booking}))
}

// GetBookingQRCode handles GET /api/bookings/:id/qrcode. Returns a PNG
// encoding the booking reference for counter pickup.
func (bc *BookingController) GetBookingQRCode(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	booking, ok := bc.loadAuthorized(ctx, c)
	if !ok {
		return nil
	}

	png, err := utils.GenerateBookingQRCode(booking.BookingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate QR code"))
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// UpdatePayment handles PUT /api/bookings/:id/payment
func (bc *BookingController) UpdatePayment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	booking, ok := bc.loadAuthorized(ctx, c)
	if !ok {
		return nil
	}

	var req models.UpdatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("paymentStatus is required"))
	}
	if !models.ValidPaymentStatus(req.PaymentStatus) {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid payment status"))
	}

	updatedBy := bc.actorName(c)
	err := bc.repo.ApplyPayment(ctx, booking, req.PaymentStatus, req.PaymentMethod, req.TransactionID, "", updatedBy)
	if err != nil {
		return bc.writeRepoError(c, err, "Failed to update payment")
	}

	bc.notify(booking.UserID, websocket.EventPaymentUpdate, "Payment status updated", booking.Summary())

	return c.JSON(http.StatusOK, models.OK("Payment updated successfully", echo.Map{
		"booking": booking.Summary(),
	}))
}

// CancelBooking handles PUT /api/bookings/:id/cancel. Owner only.
func (bc *BookingController) CancelBooking(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := bc.currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Unauthorized"))
	}

	booking, ok := bc.loadAuthorized(ctx, c)
	if !ok {
		return nil
	}
	if booking.UserID != userID {
		return c.JSON(http.StatusForbidden, models.Fail("Only the booking owner can cancel it"))
	}

	err = bc.repo.Transition(ctx, booking, models.BookingCancelled, "Booking cancelled by user", booking.UserDetails.FullName)
	if err != nil {
		var invalid *models.ErrInvalidTransition
		if errors.As(err, &invalid) {
			return c.JSON(http.StatusBadRequest, models.Fail("Booking cannot be cancelled in its current status"))
		}
		return bc.writeRepoError(c, err, "Failed to cancel booking")
	}

	utils.SendBookingUpdateEmail(booking.UserDetails.Email, booking.UserDetails.FullName, booking.BookingID, "Your booking has been cancelled")

	bc.notify(booking.UserID, websocket.EventBookingUpdate, "Booking cancelled", booking.Summary())

	return c.JSON(http.StatusOK, models.OK("Booking cancelled successfully", echo.Map{
		"booking": booking.Summary(),
	}))
}

// UpdateBookingStatus handles PUT /api/bookings/:id/status. Admin only.
func (bc *BookingController) UpdateBookingStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	booking, ok := bc.loadAuthorized(ctx, c)
	if !ok {
		return nil
	}

	var req models.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("status is required"))
	}

	err := bc.repo.Transition(ctx, booking, req.Status, req.Message, "Admin")
	if err != nil {
		var invalid *models.ErrInvalidTransition
		if errors.As(err, &invalid) {
			return c.JSON(http.StatusBadRequest, models.Fail(invalid.Error()))
		}
		return bc.writeRepoError(c, err, "Failed to update booking status")
	}

	utils.SendBookingUpdateEmail(booking.UserDetails.Email, booking.UserDetails.FullName, booking.BookingID, "Your booking status is now "+string(booking.Status))

	bc.notify(booking.UserID, websocket.EventBookingUpdate, "Booking status updated", booking.Summary())

	return c.JSON(http.StatusOK, models.OK("Booking status updated", echo.Map{
		"booking": booking.Summary(),
	}))
}

// MarkAsPaid handles PUT /api/bookings/:id/mark-paid. Admin only,
// used when money arrives offline.
func (bc *BookingController) MarkAsPaid(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	booking, ok := bc.loadAuthorized(ctx, c)
	if !ok {
		return nil
	}

	var req models.MarkPaidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}

	if booking.PaymentStatus == models.PaymentPaid {
		return c.JSON(http.StatusBadRequest, models.Fail("Booking is already paid"))
	}

	method := req.PaymentMethod
	if method == "" {
		method = models.MethodCash
	}
	if !models.ValidPaymentMethod(method) {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid payment method"))
	}

	err := bc.repo.ApplyPayment(ctx, booking, models.PaymentPaid, method, "", "Payment marked as received by admin", "Admin")
	if err != nil {
		return bc.writeRepoError(c, err, "Failed to mark booking as paid")
	}

	bc.notify(booking.UserID, websocket.EventPaymentUpdate, "Payment received", booking.Summary())

	return c.JSON(http.StatusOK, models.OK("Booking marked as paid", echo.Map{
		"booking": booking.Summary(),
	}))
}

// DeleteBooking handles DELETE /api/bookings/:id. Only pending and
// cancelled bookings may be removed.
func (bc *BookingController) DeleteBooking(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := bc.currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Unauthorized"))
	}

	booking, ok := bc.loadAuthorized(ctx, c)
	if !ok {
		return nil
	}
	if booking.UserID != userID && middleware.ExtractRole(c) != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, models.Fail("Access denied"))
	}

	if err := bc.repo.Delete(ctx, booking); err != nil {
		if errors.Is(err, repositories.ErrNotDeletable) {
			return c.JSON(http.StatusBadRequest, models.Fail("Only pending or cancelled bookings can be deleted"))
		}
		return bc.writeRepoError(c, err, "Failed to delete booking")
	}

	return c.JSON(http.StatusOK, models.OK("Booking deleted successfully", nil))
}

// bookingStatusGroup is one row of the per-status aggregation behind the
// user stats endpoint.
type bookingStatusGroup struct {
	Status      models.BookingStatus `bson:"_id" json:"status"`
	Count       int64                `bson:"count" json:"count"`
	TotalAmount float64              `bson:"totalAmount" json:"totalAmount"`
}

// summarizeBookingStats rolls the per-status rows into the stats shape.
// pendingBookings counts everything still in flight, pending and
// processing both.
func summarizeBookingStats(breakdown []bookingStatusGroup) echo.Map {
	var total, pending, completed int64
	for _, row := range breakdown {
		total += row.Count
		switch row.Status {
		case models.BookingPending, models.BookingProcessing:
			pending += row.Count
		case models.BookingCompleted:
			completed += row.Count
		}
	}

	return echo.Map{
		"totalBookings":     total,
		"pendingBookings":   pending,
		"completedBookings": completed,
		"statusBreakdown":   breakdown,
	}
}

// newBooking builds the initial pending snapshot for a service booking.
// The amount billed is the service's headline fee; the governmentFee and
// serviceFee breakdown stays on the catalog entry for display only.
func newBooking(userID primitive.ObjectID, service *models.Service, details models.BookingUserDetails, additionalInfo string, method models.PaymentMethod, now time.Time) models.Booking {
	booking := models.Booking{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		ServiceID:      service.ID,
		Category:       service.Category,
		ServiceName:    service.Name,
		ServiceFee:     service.Fee,
		UserDetails:    details,
		AdditionalInfo: additionalInfo,
		Status:         models.BookingPending,
		PaymentStatus:  models.PaymentPending,
		PaymentMethod:  method,
		Tracking: []models.TrackingEntry{{
			Status:    models.BookingPending,
			Message:   "Booking created successfully",
			UpdatedBy: "System",
			Timestamp: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Anything other than deferred settlement counts as paid up front.
	if method != models.MethodCash && method != models.MethodNotPaid {
		booking.PaymentStatus = models.PaymentPaid
		booking.PaymentDate = &now
	}

	return booking
}

// currentUserID returns the authenticated user's ObjectID.
func (bc *BookingController) currentUserID(c echo.Context) (primitive.ObjectID, error) {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(userID)
}

// loadAuthorized finds the booking addressed by the :id path parameter
// (Mongo ID or BK reference) and enforces owner-or-admin access. A
// foreign booking that exists yields 403, not 404. On failure the error
// response has already been written and ok is false.
func (bc *BookingController) loadAuthorized(ctx context.Context, c echo.Context) (*models.Booking, bool) {
	userID, err := bc.currentUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, models.Fail("Unauthorized"))
		return nil, false
	}

	booking, err := bc.repo.FindByIDOrRef(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, models.Fail("Booking not found"))
		} else {
			_ = c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch booking"))
		}
		return nil, false
	}

	if booking.UserID != userID && middleware.ExtractRole(c) != models.RoleAdmin {
		_ = c.JSON(http.StatusForbidden, models.Fail("Access denied"))
		return nil, false
	}

	return booking, true
}

func (bc *BookingController) actorName(c echo.Context) string {
	if middleware.ExtractRole(c) == models.RoleAdmin {
		return "Admin"
	}
	return "User"
}

func (bc *BookingController) writeRepoError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, repositories.ErrConflict):
		return c.JSON(http.StatusConflict, models.Fail("Booking was modified concurrently, please retry"))
	case errors.Is(err, repositories.ErrNotFound):
		return c.JSON(http.StatusNotFound, models.Fail("Booking not found"))
	default:
		return c.JSON(http.StatusInternalServerError, models.Fail(fallback))
	}
}

func (bc *BookingController) notify(userID primitive.ObjectID, event, message string, data interface{}) {
	if bc.wsHub == nil {
		return
	}
	_ = bc.wsHub.SendToUser(userID, websocket.Notification{
		Type:    event,
		Message: message,
		Data:    data,
	})
}
