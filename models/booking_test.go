package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(status BookingStatus, paymentStatus PaymentStatus) *Booking {
	now := time.Now().Add(-time.Hour)
	return &Booking{
		BookingID:     "BK260830123456",
		ServiceName:   "Learner Licence",
		ServiceFee:    500,
		Status:        status,
		PaymentStatus: paymentStatus,
		PaymentMethod: MethodCash,
		Tracking: []TrackingEntry{{
			Status:    BookingPending,
			Message:   "Booking created successfully",
			UpdatedBy: "System",
			Timestamp: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		allowed  bool
	}{
		{BookingPending, BookingProcessing, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingCompleted, false},
		{BookingPending, BookingPending, false},
		{BookingProcessing, BookingCompleted, true},
		{BookingProcessing, BookingCancelled, true},
		{BookingProcessing, BookingPending, false},
		{BookingCompleted, BookingPending, false},
		{BookingCompleted, BookingProcessing, false},
		{BookingCompleted, BookingCancelled, false},
		{BookingCancelled, BookingPending, false},
		{BookingCancelled, BookingProcessing, false},
		{BookingCancelled, BookingCompleted, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestTransitionRejectsInvalid(t *testing.T) {
	b := newTestBooking(BookingCompleted, PaymentPaid)
	before := len(b.Tracking)

	err := b.Transition(BookingProcessing, "", "Admin", time.Now())
	require.Error(t, err)

	var invalid *ErrInvalidTransition
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, BookingCompleted, invalid.From)
	assert.Equal(t, BookingProcessing, invalid.To)

	// Failed transitions leave the booking untouched
	assert.Equal(t, BookingCompleted, b.Status)
	assert.Len(t, b.Tracking, before)
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	b := newTestBooking(BookingPending, PaymentPending)
	err := b.Transition(BookingStatus("shipped"), "", "Admin", time.Now())
	require.Error(t, err)
	assert.Equal(t, BookingPending, b.Status)
}

func TestTransitionAppendsTracking(t *testing.T) {
	b := newTestBooking(BookingPending, PaymentPending)
	now := time.Now()

	require.NoError(t, b.Transition(BookingProcessing, "Documents verified", "Admin", now))

	assert.Equal(t, BookingProcessing, b.Status)
	require.Len(t, b.Tracking, 2)
	last := b.Tracking[len(b.Tracking)-1]
	assert.Equal(t, BookingProcessing, last.Status)
	assert.Equal(t, "Documents verified", last.Message)
	assert.Equal(t, "Admin", last.UpdatedBy)
	assert.Equal(t, now, last.Timestamp)
}

func TestTransitionDefaultMessage(t *testing.T) {
	b := newTestBooking(BookingPending, PaymentPending)
	require.NoError(t, b.Transition(BookingProcessing, "", "Admin", time.Now()))
	assert.Equal(t, "Status updated to processing", b.Tracking[len(b.Tracking)-1].Message)
}

func TestCancelRefundsPaidBooking(t *testing.T) {
	b := newTestBooking(BookingProcessing, PaymentPaid)
	require.NoError(t, b.Transition(BookingCancelled, "Booking cancelled by user", "Test User", time.Now()))

	assert.Equal(t, BookingCancelled, b.Status)
	assert.Equal(t, PaymentRefunded, b.PaymentStatus)
}

func TestCancelFailsUnpaidBooking(t *testing.T) {
	for _, ps := range []PaymentStatus{PaymentPending, PaymentFailed} {
		b := newTestBooking(BookingPending, ps)
		require.NoError(t, b.Transition(BookingCancelled, "", "Test User", time.Now()))
		assert.Equal(t, PaymentFailed, b.PaymentStatus, "from payment status %s", ps)
	}
}

func TestCompleteSettlesPendingPayment(t *testing.T) {
	b := newTestBooking(BookingProcessing, PaymentPending)
	now := time.Now()

	require.NoError(t, b.Transition(BookingCompleted, "", "Admin", now))

	assert.Equal(t, BookingCompleted, b.Status)
	assert.Equal(t, PaymentPaid, b.PaymentStatus)
	require.NotNil(t, b.PaymentDate)
	assert.Equal(t, now, *b.PaymentDate)

	// Forced settlement is visible in the audit trail
	require.Len(t, b.Tracking, 3)
	settle := b.Tracking[2]
	assert.Equal(t, "Payment settled on completion", settle.Message)
	assert.Equal(t, "payment", settle.Type)
}

func TestCompleteLeavesPaidPaymentAlone(t *testing.T) {
	b := newTestBooking(BookingProcessing, PaymentPaid)
	require.NoError(t, b.Transition(BookingCompleted, "", "Admin", time.Now()))

	assert.Equal(t, PaymentPaid, b.PaymentStatus)
	assert.Nil(t, b.PaymentDate)
	assert.Len(t, b.Tracking, 2)
}

func TestApplyPaymentPaidCascadesPendingBooking(t *testing.T) {
	b := newTestBooking(BookingPending, PaymentPending)
	now := time.Now()

	require.NoError(t, b.ApplyPayment(PaymentPaid, MethodUPI, "TXN123", "", "Test User", now))

	assert.Equal(t, PaymentPaid, b.PaymentStatus)
	assert.Equal(t, MethodUPI, b.PaymentMethod)
	assert.Equal(t, "TXN123", b.TransactionID)
	require.NotNil(t, b.PaymentDate)

	assert.Equal(t, BookingProcessing, b.Status)
	require.Len(t, b.Tracking, 2)
	last := b.Tracking[1]
	assert.Equal(t, BookingProcessing, last.Status)
	assert.Equal(t, "Payment received, processing started", last.Message)
}

// Marking a fresh booking as paid folds the admin's wording into the
// cascade entry, so the audit trail ends at exactly two entries.
func TestApplyPaymentCustomCascadeMessage(t *testing.T) {
	b := newTestBooking(BookingPending, PaymentPending)

	require.NoError(t, b.ApplyPayment(PaymentPaid, MethodCash, "", "Payment marked as received by admin", "Admin", time.Now()))

	assert.Equal(t, BookingProcessing, b.Status)
	require.Len(t, b.Tracking, 2)
	assert.Equal(t, "Payment marked as received by admin", b.Tracking[1].Message)
	assert.Equal(t, "Admin", b.Tracking[1].UpdatedBy)
}

func TestApplyPaymentPaidDoesNotCascadeProcessing(t *testing.T) {
	b := newTestBooking(BookingProcessing, PaymentPending)
	require.NoError(t, b.ApplyPayment(PaymentPaid, MethodCash, "", "", "Admin", time.Now()))

	assert.Equal(t, BookingProcessing, b.Status)
	assert.Len(t, b.Tracking, 1)
}

func TestApplyPaymentKeepsMethodWhenOmitted(t *testing.T) {
	b := newTestBooking(BookingPending, PaymentPending)
	require.NoError(t, b.ApplyPayment(PaymentFailed, "", "", "", "User", time.Now()))

	assert.Equal(t, PaymentFailed, b.PaymentStatus)
	assert.Equal(t, MethodCash, b.PaymentMethod)
	assert.Nil(t, b.PaymentDate)
	assert.Equal(t, BookingPending, b.Status)
}

func TestApplyPaymentRejectsUnknownValues(t *testing.T) {
	b := newTestBooking(BookingPending, PaymentPending)

	require.Error(t, b.ApplyPayment(PaymentStatus("settled"), "", "", "", "User", time.Now()))
	require.Error(t, b.ApplyPayment(PaymentPaid, PaymentMethod("cheque"), "", "", "User", time.Now()))
	assert.Equal(t, PaymentPending, b.PaymentStatus)
}

func TestDeletable(t *testing.T) {
	assert.True(t, newTestBooking(BookingPending, PaymentPending).Deletable())
	assert.True(t, newTestBooking(BookingCancelled, PaymentFailed).Deletable())
	assert.False(t, newTestBooking(BookingProcessing, PaymentPaid).Deletable())
	assert.False(t, newTestBooking(BookingCompleted, PaymentPaid).Deletable())
}

// A cash booking starts pending/pending with one tracking entry; once an
// admin records the money, the booking moves to processing with the
// payment visible in tracking.
func TestCashBookingLifecycle(t *testing.T) {
	b := newTestBooking(BookingPending, PaymentPending)
	require.Len(t, b.Tracking, 1)

	now := time.Now()
	require.NoError(t, b.ApplyPayment(PaymentPaid, MethodCash, "", "Payment marked as received by admin", "Admin", now))

	assert.Equal(t, BookingProcessing, b.Status)
	assert.Equal(t, PaymentPaid, b.PaymentStatus)
	require.Len(t, b.Tracking, 2)
	assert.Equal(t, "Payment marked as received by admin", b.Tracking[1].Message)

	require.NoError(t, b.Transition(BookingCompleted, "", "Admin", now.Add(time.Hour)))
	assert.Equal(t, BookingCompleted, b.Status)
	assert.Equal(t, PaymentPaid, b.PaymentStatus)
	assert.Len(t, b.Tracking, 3)
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidBookingStatus(BookingPending))
	assert.False(t, ValidBookingStatus("archived"))
	assert.True(t, ValidPaymentStatus(PaymentRefunded))
	assert.False(t, ValidPaymentStatus("chargeback"))
	assert.True(t, ValidPaymentMethod(MethodBankTransfer))
	assert.False(t, ValidPaymentMethod("crypto"))
}

func TestSummary(t *testing.T) {
	b := newTestBooking(BookingPending, PaymentPending)
	s := b.Summary()
	assert.Equal(t, b.BookingID, s.BookingID)
	assert.Equal(t, b.Status, s.Status)
	assert.Equal(t, b.PaymentStatus, s.PaymentStatus)
	assert.Equal(t, b.ServiceFee, s.Amount)
	assert.Equal(t, b.ServiceName, s.ServiceName)
}
