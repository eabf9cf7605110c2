package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"busfleet/database/repository"
	"busfleet/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a BookingRepository backed by the "bookings" collection.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	repo := &MongoBookingRepo{coll: db.Collection("bookings")}
	if err := repo.EnsureIndexes(); err != nil {
		log.Printf("failed to create booking indexes: %v", err)
	}
	return repo
}

func (r *MongoBookingRepo) findOne(ctx context.Context, filter bson.M, what string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking %s: %w", what, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", what, err)
	}
	return &booking, nil
}

// GetByID retrieves a booking by its ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"id": bookingID}, bookingID)
}

// GetByReference retrieves a booking by its reference code.
func (r *MongoBookingRepo) GetByReference(ctx context.Context, reference string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"bookingReference": reference}, reference)
}

// ListByPassenger returns one page of bookings and the total matching count.
func (r *MongoBookingRepo) ListByPassenger(ctx context.Context, passengerID string, status models.BookingStatus, skip, limit int64) ([]models.Booking, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"passengerId": passengerID}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings for passenger %s: %w", passengerID, err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings for passenger %s: %w", passengerID, err)
	}
	return bookings, total, nil
}

// UpdatePayment writes the payment sub-document. The filter keeps a payment
// outcome from landing on a booking that was cancelled in the meantime.
func (r *MongoBookingRepo) UpdatePayment(ctx context.Context, bookingID string, payment models.PaymentDetails) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":                           bookingID,
		"status":                       models.BookingStatusConfirmed,
		"paymentDetails.paymentStatus": models.PaymentStatusPending,
	}
	update := bson.M{"$set": bson.M{
		"paymentDetails": payment,
		"updatedAt":      time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating payment for booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s payment no longer pending: %w", bookingID, repository.ErrBookingStateChanged)
	}
	return nil
}
