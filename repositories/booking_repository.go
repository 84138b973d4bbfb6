package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shaikhmoiz3010/pointsolution-server/config"
	"github.com/shaikhmoiz3010/pointsolution-server/models"
	"github.com/shaikhmoiz3010/pointsolution-server/utils"
)

var (
	// ErrNotFound is returned when no booking matches the lookup.
	ErrNotFound = errors.New("booking not found")
	// ErrConflict is returned when a transition lost a race against a
	// concurrent mutation of the same booking.
	ErrConflict = errors.New("booking was modified concurrently")
	// ErrNotDeletable is returned when the retention policy forbids
	// deleting the booking.
	ErrNotDeletable = errors.New("booking cannot be deleted in its current status")
)

// insertRetries bounds the duplicate-reference retry loop. Two retries
// already push the same-day collision odds past 1 in 9*10^10.
const insertRetries = 3

// BookingRepository owns every booking mutation. Each state transition is
// persisted as one UpdateOne carrying both the field changes and the
// tracking append, so the audit trail can never drift from the status.
type BookingRepository struct {
	bookings *mongo.Collection
	users    *mongo.Collection
}

// NewBookingRepository creates a booking repository over the given client.
func NewBookingRepository(db *mongo.Client) *BookingRepository {
	return &BookingRepository{
		bookings: config.GetCollection(db, "bookings"),
		users:    config.GetCollection(db, "users"),
	}
}

// Create inserts a new booking and appends its reference to the owning
// user's bookings list. The human-readable bookingId is regenerated on a
// duplicate-key collision, bounded by insertRetries.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	var err error
	for attempt := 0; attempt < insertRetries; attempt++ {
		booking.BookingID = utils.GenerateBookingID(booking.CreatedAt)
		_, err = r.bookings.InsertOne(ctx, booking)
		if err == nil {
			break
		}
		if !mongo.IsDuplicateKeyError(err) {
			return err
		}
	}
	if err != nil {
		return err
	}

	_, err = r.users.UpdateOne(ctx,
		bson.M{"_id": booking.UserID},
		bson.M{
			"$push": bson.M{"bookings": booking.ID},
			"$set":  bson.M{"updatedAt": booking.CreatedAt},
		},
	)
	return err
}

// FindByID looks a booking up by its ObjectID primary key.
func (r *BookingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := r.bookings.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// FindByRef looks a booking up by its human-readable reference (BK...).
func (r *BookingRepository) FindByRef(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.bookings.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// FindByIDOrRef resolves an identifier that may be either a hex ObjectID
// or a human-readable booking reference.
func (r *BookingRepository) FindByIDOrRef(ctx context.Context, idOrRef string) (*models.Booking, error) {
	if objID, err := primitive.ObjectIDFromHex(idOrRef); err == nil {
		booking, err := r.FindByID(ctx, objID)
		if err == nil {
			return booking, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return r.FindByRef(ctx, idOrRef)
}

// Transition moves a booking to a new lifecycle status and persists the
// change atomically with its tracking append. Returns
// *models.ErrInvalidTransition when the transition table forbids the move.
func (r *BookingRepository) Transition(ctx context.Context, booking *models.Booking, to models.BookingStatus, message, updatedBy string) error {
	prevStatus := booking.Status
	trackingLen := len(booking.Tracking)

	if err := booking.Transition(to, message, updatedBy, time.Now()); err != nil {
		return err
	}

	return r.persist(ctx, booking, prevStatus, trackingLen)
}

// ApplyPayment updates the booking's payment fields, cascading a pending
// booking into processing when the payment lands as paid. Persisted the
// same way as Transition: one atomic update.
func (r *BookingRepository) ApplyPayment(ctx context.Context, booking *models.Booking, status models.PaymentStatus, method models.PaymentMethod, transactionID, message, updatedBy string) error {
	prevStatus := booking.Status
	trackingLen := len(booking.Tracking)

	if err := booking.ApplyPayment(status, method, transactionID, message, updatedBy, time.Now()); err != nil {
		return err
	}

	return r.persist(ctx, booking, prevStatus, trackingLen)
}

// AppendTracking records a standalone audit entry (admin notifications,
// detail edits) without changing the booking status.
func (r *BookingRepository) AppendTracking(ctx context.Context, booking *models.Booking, entry models.TrackingEntry) error {
	booking.Tracking = append(booking.Tracking, entry)

	res, err := r.bookings.UpdateOne(ctx,
		bson.M{"_id": booking.ID},
		bson.M{
			"$push": bson.M{"tracking": entry},
			"$set":  bson.M{"updatedAt": entry.Timestamp},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a booking under the retention policy (pending or
// cancelled only) and pulls its reference from the owning user.
func (r *BookingRepository) Delete(ctx context.Context, booking *models.Booking) error {
	if !booking.Deletable() {
		return ErrNotDeletable
	}

	// Delete the booking first. If the reference pull fails the user
	// carries a dangling id, which reads skip; the reverse order could
	// drop the reference while the booking survives.
	res, err := r.bookings.DeleteOne(ctx, bson.M{"_id": booking.ID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	_, err = r.users.UpdateOne(ctx,
		bson.M{"_id": booking.UserID},
		bson.M{"$pull": bson.M{"bookings": booking.ID}},
	)
	return err
}

// CountForUser returns the number of bookings owned by a user. Used by
// the admin user-deletion guard.
func (r *BookingRepository) CountForUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.bookings.CountDocuments(ctx, bson.M{"user": userID})
}

// persist writes the in-memory mutation back as a single update. The
// filter guards on the pre-mutation status so a concurrent transition on
// the same booking cannot be silently overwritten.
func (r *BookingRepository) persist(ctx context.Context, booking *models.Booking, prevStatus models.BookingStatus, trackingLen int) error {
	newEntries := booking.Tracking[trackingLen:]

	set := bson.M{
		"status":        booking.Status,
		"paymentStatus": booking.PaymentStatus,
		"paymentMethod": booking.PaymentMethod,
		"updatedAt":     booking.UpdatedAt,
	}
	if booking.PaymentDate != nil {
		set["paymentDate"] = booking.PaymentDate
	}
	if booking.TransactionID != "" {
		set["transactionId"] = booking.TransactionID
	}

	update := bson.M{"$set": set}
	if len(newEntries) > 0 {
		update["$push"] = bson.M{"tracking": bson.M{"$each": newEntries}}
	}

	res, err := r.bookings.UpdateOne(ctx,
		bson.M{"_id": booking.ID, "status": prevStatus},
		update,
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrConflict
	}
	return nil
}
