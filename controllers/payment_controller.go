package controllers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shaikhmoiz3010/pointsolution-server/middleware"
	"github.com/shaikhmoiz3010/pointsolution-server/models"
	"github.com/shaikhmoiz3010/pointsolution-server/repositories"
	"github.com/shaikhmoiz3010/pointsolution-server/websocket"
)

// PaymentMethodInfo describes one supported payment method.
type PaymentMethodInfo struct {
	ID          models.PaymentMethod `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
}

var paymentMethods = []PaymentMethodInfo{
	{ID: models.MethodCash, Name: "Cash Payment", Description: "Pay in cash at our office"},
	{ID: models.MethodUPI, Name: "UPI Payment", Description: "Pay via UPI (Google Pay, PhonePe, etc.)"},
	{ID: models.MethodBankTransfer, Name: "Bank Transfer", Description: "Direct bank transfer"},
	{ID: models.MethodOnline, Name: "Online Payment", Description: "Credit/Debit card payment"},
	{ID: models.MethodNotPaid, Name: "Pay Later", Description: "Pay after service completion"},
}

// PaymentController is the payment adapter over the booking engine.
// Endpoints here address bookings by their BK reference.
type PaymentController struct {
	DB    *mongo.Client
	repo  *repositories.BookingRepository
	wsHub *websocket.Hub
}

// NewPaymentController creates a new payment controller
func NewPaymentController(db *mongo.Client, hub *websocket.Hub) *PaymentController {
	return &PaymentController{
		DB:    db,
		repo:  repositories.NewBookingRepository(db),
		wsHub: hub,
	}
}

// GetPaymentMethods handles GET /api/payments/methods
func (pc *PaymentController) GetPaymentMethods(c echo.Context) error {
	return c.JSON(http.StatusOK, models.OK("", echo.Map{"methods": paymentMethods}))
}

// GetPaymentDetails handles GET /api/payments/:bookingId
func (pc *PaymentController) GetPaymentDetails(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	booking, ok := pc.loadAuthorized(ctx, c)
	if !ok {
		return nil
	}

	return c.JSON(http.StatusOK, models.OK("", echo.Map{
		"payment": echo.Map{
			"bookingId":     booking.BookingID,
			"amount":        booking.ServiceFee,
			"status":        booking.PaymentStatus,
			"method":        booking.PaymentMethod,
			"date":          booking.PaymentDate,
			"transactionId": booking.TransactionID,
			"bookingStatus": booking.Status,
		},
	}))
}

// UpdatePaymentStatus handles PUT /api/payments/:bookingId
func (pc *PaymentController) UpdatePaymentStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	booking, ok := pc.loadAuthorized(ctx, c)
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
	if req.PaymentMethod != "" && !models.ValidPaymentMethod(req.PaymentMethod) {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid payment method"))
	}

	updatedBy := "User"
	if middleware.ExtractRole(c) == models.RoleAdmin {
		updatedBy = "Admin"
	}

	err := pc.repo.ApplyPayment(ctx, booking, req.PaymentStatus, req.PaymentMethod, req.TransactionID, "", updatedBy)
	if err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return c.JSON(http.StatusConflict, models.Fail("Booking was modified concurrently, please retry"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update payment status"))
	}

	pc.notify(booking)

	return c.JSON(http.StatusOK, models.OK("Payment status updated successfully", echo.Map{
		"booking": echo.Map{
			"id":            booking.ID,
			"bookingId":     booking.BookingID,
			"paymentStatus": booking.PaymentStatus,
			"paymentMethod": booking.PaymentMethod,
			"status":        booking.Status,
			"amount":        booking.ServiceFee,
		},
	}))
}

// CreateTestPayment handles POST /api/payments/test/:bookingId. Simulates
// a successful UPI payment. Disabled in production.
func (pc *PaymentController) CreateTestPayment(c echo.Context) error {
	if os.Getenv("ENVIRONMENT") == "production" {
		return c.JSON(http.StatusForbidden, models.Fail("Test payments are disabled in production"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	booking, ok := pc.loadAuthorized(ctx, c)
	if !ok {
		return nil
	}

	transactionID := "TEST_" + uuid.NewString()
	err := pc.repo.ApplyPayment(ctx, booking, models.PaymentPaid, models.MethodUPI, transactionID, "", "System")
	if err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return c.JSON(http.StatusConflict, models.Fail("Booking was modified concurrently, please retry"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to process test payment"))
	}

	pc.notify(booking)

	return c.JSON(http.StatusOK, models.OK("Test payment processed successfully", echo.Map{
		"payment": echo.Map{
			"bookingId":     booking.BookingID,
			"amount":        booking.ServiceFee,
			"status":        booking.PaymentStatus,
			"method":        booking.PaymentMethod,
			"transactionId": booking.TransactionID,
			"date":          booking.PaymentDate,
		},
	}))
}

// loadAuthorized resolves the :bookingId BK reference and enforces
// owner-or-admin access. On failure the error response has already been
// written and ok is false.
func (pc *PaymentController) loadAuthorized(ctx context.Context, c echo.Context) (*models.Booking, bool) {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, models.Fail("Unauthorized"))
		return nil, false
	}
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, models.Fail("Unauthorized"))
		return nil, false
	}

	booking, err := pc.repo.FindByRef(ctx, c.Param("bookingId"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, models.Fail("Booking not found"))
		} else {
			_ = c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch booking"))
		}
		return nil, false
	}

	if booking.UserID != userObjID && middleware.ExtractRole(c) != models.RoleAdmin {
		_ = c.JSON(http.StatusForbidden, models.Fail("Not authorized to access this payment"))
		return nil, false
	}

	return booking, true
}

func (pc *PaymentController) notify(booking *models.Booking) {
	if pc.wsHub == nil {
		return
	}
	_ = pc.wsHub.SendToUser(booking.UserID, websocket.Notification{
		Type:    websocket.EventPaymentUpdate,
		Message: "Payment status updated",
		Data:    booking.Summary(),
	})
}
