package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"busfleet/database/repository"
	"busfleet/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoReservationRepo implements ReservationRepository with multi-document
// transactions over the trips and bookings collections.
type MongoReservationRepo struct {
	tripColl    *mongo.Collection
	bookingColl *mongo.Collection
}

// NewMongoReservationRepo constructs a new instance of MongoReservationRepo.
func NewMongoReservationRepo(db *mongo.Database) ReservationRepository {
	return &MongoReservationRepo{
		tripColl:    db.Collection("trips"),
		bookingColl: db.Collection("bookings"),
	}
}

func (repo *MongoReservationRepo) swapSeats(sc mongo.SessionContext, filter bson.M, seats []models.SeatAvailability, tripID string, expectedVersion int64) error {
	update := bson.M{
		"$set": bson.M{"seatAvailability": seats, "updatedAt": time.Now()},
		"$inc": bson.M{"version": 1},
	}
	res, err := repo.tripColl.UpdateOne(sc, filter, update)
	if err != nil {
		return fmt.Errorf("update seat availability failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("trip %s at version %d: %w", tripID, expectedVersion, repository.ErrVersionConflict)
	}
	return nil
}

func (repo *MongoReservationRepo) CommitReservation(
	ctx context.Context,
	tripID string,
	expectedVersion int64,
	seats []models.SeatAvailability,
	booking *models.Booking,
) error {
	return repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		filter := bson.M{
			"id":         tripID,
			"version":    expectedVersion,
			"tripStatus": models.TripStatusScheduled,
		}
		if err := repo.swapSeats(sc, filter, seats, tripID, expectedVersion); err != nil {
			return err
		}

		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return fmt.Errorf("booking reference %s: %w", booking.BookingReference, repository.ErrDuplicateKey)
			}
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	})
}

func (repo *MongoReservationRepo) CommitCancellation(
	ctx context.Context,
	tripID string,
	expectedVersion int64,
	seats []models.SeatAvailability,
	booking *models.Booking,
) error {
	return repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		filter := bson.M{"id": tripID, "version": expectedVersion}
		if err := repo.swapSeats(sc, filter, seats, tripID, expectedVersion); err != nil {
			return err
		}

		bookingFilter := bson.M{"id": booking.ID, "status": models.BookingStatusConfirmed}
		update := bson.M{"$set": bson.M{
			"status":             booking.Status,
			"cancellationReason": booking.CancellationReason,
			"paymentDetails":     booking.PaymentDetails,
			"updatedAt":          booking.UpdatedAt,
		}}
		res, err := repo.bookingColl.UpdateOne(sc, bookingFilter, update)
		if err != nil {
			return fmt.Errorf("cancel booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("booking %s: %w", booking.ID, repository.ErrBookingStateChanged)
		}
		return nil
	})
}

func (repo *MongoReservationRepo) withTransaction(ctx context.Context, txnFn func(sc mongo.SessionContext) error) error {
	client := repo.tripColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	err = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
	return classifyTxnError(err)
}

// classifyTxnError reports a write conflict with a concurrent transaction on
// the same trip as ErrVersionConflict.
func classifyTxnError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrVersionConflict) || errors.Is(err, repository.ErrDuplicateKey) ||
		errors.Is(err, repository.ErrBookingStateChanged) {
		return err
	}
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) && serverErr.HasErrorLabel("TransientTransactionError") {
		return fmt.Errorf("transaction aborted: %w", repository.ErrVersionConflict)
	}
	return fmt.Errorf("reservation transaction failed: %w", err)
}
