package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingProcessing BookingStatus = "processing"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// PaymentStatus is the payment state of a booking.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod is how the customer pays for a booking.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodOnline       PaymentMethod = "online"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodUPI          PaymentMethod = "upi"
	MethodNotPaid      PaymentMethod = "not_paid"
)

// statusTransitions is the single source of truth for allowed status
// changes. Handlers never mutate status directly; they go through
// Booking.Transition so the tracking append can't be skipped.
var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingProcessing, BookingCancelled},
	BookingProcessing: {BookingCompleted, BookingCancelled},
	BookingCompleted:  {},
	BookingCancelled:  {},
}

// ErrInvalidTransition reports a disallowed booking status change.
type ErrInvalidTransition struct {
	From BookingStatus
	To   BookingStatus
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid booking status transition: %s -> %s", e.From, e.To)
}

// ValidBookingStatus reports whether s is one of the closed status values.
func ValidBookingStatus(s BookingStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodOnline, MethodBankTransfer, MethodUPI, MethodNotPaid:
		return true
	}
	return false
}

// CanTransition reports whether a booking in state from may move to state to.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TrackingEntry is one immutable audit record on a booking. The tracking
// array is append-only; entries are never mutated or removed.
type TrackingEntry struct {
	Status    BookingStatus `json:"status" bson:"status"`
	Message   string        `json:"message" bson:"message"`
	UpdatedBy string        `json:"updatedBy" bson:"updatedBy"`
	Type      string        `json:"type,omitempty" bson:"type,omitempty"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
}

// BookingUserDetails is the snapshot of the customer's contact and
// identity data taken at booking time. It is an independent copy; later
// profile edits do not alter historical bookings.
type BookingUserDetails struct {
	FullName      string  `json:"fullName" bson:"fullName"`
	Email         string  `json:"email" bson:"email"`
	Phone         string  `json:"phone" bson:"phone"`
	Address       Address `json:"address" bson:"address"`
	AadhaarNumber string  `json:"aadhaarNumber,omitempty" bson:"aadhaarNumber,omitempty"`
	PANNumber     string  `json:"panNumber,omitempty" bson:"panNumber,omitempty"`
}

// Booking model
type Booking struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	BookingID      string             `json:"bookingId" bson:"bookingId"`
	UserID         primitive.ObjectID `json:"user" bson:"user"`
	ServiceID      primitive.ObjectID `json:"service" bson:"service"`
	Category       string             `json:"category" bson:"category"`
	ServiceName    string             `json:"serviceName" bson:"serviceName"`
	ServiceFee     float64            `json:"serviceFee" bson:"serviceFee"`
	UserDetails    BookingUserDetails `json:"userDetails" bson:"userDetails"`
	AdditionalInfo string             `json:"additionalInfo,omitempty" bson:"additionalInfo,omitempty"`
	Status         BookingStatus      `json:"status" bson:"status"`
	PaymentStatus  PaymentStatus      `json:"paymentStatus" bson:"paymentStatus"`
	PaymentMethod  PaymentMethod      `json:"paymentMethod" bson:"paymentMethod"`
	PaymentDate    *time.Time         `json:"paymentDate,omitempty" bson:"paymentDate,omitempty"`
	TransactionID  string             `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	Tracking       []TrackingEntry    `json:"tracking" bson:"tracking"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Transition validates and applies a status change in memory, appending
// exactly one tracking entry plus the payment side effects the lifecycle
// demands. Callers persist the result in a single update so the status
// change and the tracking append land together.
func (b *Booking) Transition(to BookingStatus, message, updatedBy string, now time.Time) error {
	if !ValidBookingStatus(to) {
		return fmt.Errorf("unknown booking status: %s", to)
	}
	if !CanTransition(b.Status, to) {
		return &ErrInvalidTransition{From: b.Status, To: to}
	}

	if message == "" {
		message = fmt.Sprintf("Status updated to %s", to)
	}

	b.Status = to
	b.appendTracking(TrackingEntry{
		Status:    to,
		Message:   message,
		UpdatedBy: updatedBy,
		Timestamp: now,
	})

	switch to {
	case BookingCancelled:
		// A cancelled booking settles its payment: paid money is
		// refunded, anything else is written off as failed.
		if b.PaymentStatus == PaymentPaid {
			b.PaymentStatus = PaymentRefunded
		} else {
			b.PaymentStatus = PaymentFailed
		}
	case BookingCompleted:
		// Completed implies paid. Settling on completion is recorded in
		// the audit trail so the forced payment stays visible to operators.
		if b.PaymentStatus == PaymentPending {
			b.PaymentStatus = PaymentPaid
			b.PaymentDate = &now
			b.appendTracking(TrackingEntry{
				Status:    to,
				Message:   "Payment settled on completion",
				UpdatedBy: updatedBy,
				Type:      "payment",
				Timestamp: now,
			})
		}
	}

	b.UpdatedAt = now
	return nil
}

// ApplyPayment updates the payment fields and, when a payment lands as
// paid while the booking is still pending, cascades the booking into
// processing with a tracking entry. An empty message gets the default
// cascade wording. Both the booking payment endpoint and the payment
// adapter route through here so the cascade cannot diverge.
func (b *Booking) ApplyPayment(status PaymentStatus, method PaymentMethod, transactionID, message, updatedBy string, now time.Time) error {
	if !ValidPaymentStatus(status) {
		return fmt.Errorf("unknown payment status: %s", status)
	}
	if method != "" && !ValidPaymentMethod(method) {
		return fmt.Errorf("unknown payment method: %s", method)
	}

	b.PaymentStatus = status
	if method != "" {
		b.PaymentMethod = method
	}
	if transactionID != "" {
		b.TransactionID = transactionID
	}

	if status == PaymentPaid {
		b.PaymentDate = &now
		if b.Status == BookingPending {
			if message == "" {
				message = "Payment received, processing started"
			}
			b.Status = BookingProcessing
			b.appendTracking(TrackingEntry{
				Status:    BookingProcessing,
				Message:   message,
				UpdatedBy: updatedBy,
				Timestamp: now,
			})
		}
	}

	b.UpdatedAt = now
	return nil
}

// Deletable reports whether the retention policy allows removing the
// booking. Processing and completed bookings are kept permanently.
func (b *Booking) Deletable() bool {
	return b.Status == BookingPending || b.Status == BookingCancelled
}

func (b *Booking) appendTracking(entry TrackingEntry) {
	b.Tracking = append(b.Tracking, entry)
}

// CreateBookingRequest is the payload for POST /api/bookings.
type CreateBookingRequest struct {
	ServiceID      string             `json:"serviceId" validate:"required,len=24,hexadecimal"`
	UserDetails    BookingUserDetails `json:"userDetails"`
	AdditionalInfo string             `json:"additionalInfo"`
	PaymentMethod  PaymentMethod      `json:"paymentMethod"`
}

// UpdatePaymentRequest is the payload for the payment endpoints.
type UpdatePaymentRequest struct {
	PaymentStatus PaymentStatus `json:"paymentStatus" validate:"required"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	TransactionID string        `json:"transactionId"`
}

// UpdateStatusRequest is the payload for the admin status endpoints.
type UpdateStatusRequest struct {
	Status  BookingStatus `json:"status" validate:"required"`
	Message string        `json:"message"`
}

// MarkPaidRequest is the payload for PUT /api/bookings/:id/mark-paid.
type MarkPaidRequest struct {
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// BookingSummary is the trimmed booking shape returned from mutation
// endpoints.
type BookingSummary struct {
	ID            primitive.ObjectID `json:"id"`
	BookingID     string             `json:"bookingId"`
	ServiceName   string             `json:"service,omitempty"`
	Category      string             `json:"category,omitempty"`
	Status        BookingStatus      `json:"status"`
	PaymentStatus PaymentStatus      `json:"paymentStatus"`
	PaymentMethod PaymentMethod      `json:"paymentMethod,omitempty"`
	Amount        float64            `json:"amount,omitempty"`
	CreatedAt     *time.Time         `json:"createdAt,omitempty"`
}

// Summary builds the mutation-response shape from a booking.
func (b *Booking) Summary() BookingSummary {
	created := b.CreatedAt
	return BookingSummary{
		ID:            b.ID,
		BookingID:     b.BookingID,
		ServiceName:   b.ServiceName,
		Category:      b.Category,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		PaymentMethod: b.PaymentMethod,
		Amount:        b.ServiceFee,
		CreatedAt:     &created,
	}
}
