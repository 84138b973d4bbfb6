package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/shaikhmoiz3010/pointsolution-server/models"
)

func pendingBooking() *models.Booking {
	return &models.Booking{
		ID:        primitive.NewObjectID(),
		BookingID: "BK260830123456",
		UserID:    primitive.NewObjectID(),
		Status:    models.BookingPending,
	}
}

func TestDeleteRefusesProtectedStatuses(t *testing.T) {
	r := &BookingRepository{}
	for _, status := range []models.BookingStatus{models.BookingProcessing, models.BookingCompleted} {
		b := pendingBooking()
		b.Status = status
		assert.ErrorIs(t, r.Delete(context.Background(), b), ErrNotDeletable)
	}
}

// The booking document goes first and the user's reference is pulled
// after, so a failed delete cannot leave the reference gone while the
// booking survives.
func TestDeleteRemovesBookingBeforeUserReference(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("delete then pull", func(mt *mtest.T) {
		repo := NewBookingRepository(mt.Client)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		require.NoError(t, repo.Delete(context.Background(), pendingBooking()))

		events := mt.GetAllStartedEvents()
		require.Len(t, events, 2)
		assert.Equal(t, "delete", events[0].CommandName)
		assert.Equal(t, "update", events[1].CommandName)
	})

	mt.Run("missing booking leaves user untouched", func(mt *mtest.T) {
		repo := NewBookingRepository(mt.Client)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.ErrorIs(t, repo.Delete(context.Background(), pendingBooking()), ErrNotFound)

		events := mt.GetAllStartedEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "delete", events[0].CommandName)
	})
}
