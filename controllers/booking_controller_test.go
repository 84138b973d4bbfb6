package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shaikhmoiz3010/pointsolution-server/models"
)

func seedService(t *testing.T, name string) *models.Service {
	t.Helper()
	for i := range seedCatalog {
		if seedCatalog[i].Name == name {
			return &seedCatalog[i]
		}
	}
	t.Fatalf("service %q not in seed catalog", name)
	return nil
}

// The booking bills the service's headline fee. The governmentFee and
// serviceFee breakdown is display data and must not be added on top.
func TestNewBookingBillsHeadlineFee(t *testing.T) {
	service := seedService(t, "Learner Licence")
	require.Equal(t, 500.0, service.Fee)
	require.Equal(t, 1000.0, service.TotalFee())

	b := newBooking(primitive.NewObjectID(), service, models.BookingUserDetails{
		FullName: "Test User",
		Email:    "test@example.com",
	}, "", models.MethodCash, time.Now())

	assert.Equal(t, 500.0, b.ServiceFee)
	assert.Equal(t, service.Name, b.ServiceName)
	assert.Equal(t, service.Category, b.Category)
}

func TestNewBookingStartsPendingWithOneTrackingEntry(t *testing.T) {
	service := seedService(t, "Learner Licence")
	now := time.Now()

	b := newBooking(primitive.NewObjectID(), service, models.BookingUserDetails{}, "", models.MethodNotPaid, now)

	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, models.PaymentPending, b.PaymentStatus)
	assert.Nil(t, b.PaymentDate)
	require.Len(t, b.Tracking, 1)
	assert.Equal(t, "Booking created successfully", b.Tracking[0].Message)
	assert.Equal(t, "System", b.Tracking[0].UpdatedBy)
}

func TestSummarizeBookingStats(t *testing.T) {
	stats := summarizeBookingStats([]bookingStatusGroup{
		{Status: models.BookingPending, Count: 2, TotalAmount: 1000},
		{Status: models.BookingProcessing, Count: 1, TotalAmount: 500},
		{Status: models.BookingCompleted, Count: 3, TotalAmount: 1500},
		{Status: models.BookingCancelled, Count: 1, TotalAmount: 500},
	})

	assert.Equal(t, int64(7), stats["totalBookings"])
	assert.Equal(t, int64(3), stats["pendingBookings"], "pending includes processing")
	assert.Equal(t, int64(3), stats["completedBookings"])
	assert.Len(t, stats["statusBreakdown"], 4)
}

func TestNewBookingOnlineMethodIsPaidUpFront(t *testing.T) {
	service := seedService(t, "Learner Licence")
	now := time.Now()

	cash := newBooking(primitive.NewObjectID(), service, models.BookingUserDetails{}, "", models.MethodCash, now)
	assert.Equal(t, models.PaymentPending, cash.PaymentStatus)

	online := newBooking(primitive.NewObjectID(), service, models.BookingUserDetails{}, "", models.MethodUPI, now)
	assert.Equal(t, models.PaymentPaid, online.PaymentStatus)
	require.NotNil(t, online.PaymentDate)
	assert.Equal(t, now, *online.PaymentDate)
}
