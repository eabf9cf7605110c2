package tripRepo

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
)

// MongoTripRepo implements TripRepository using MongoDB.
type MongoTripRepo struct {
	coll *mongo.Collection
}

// NewMongoTripRepo constructs a TripRepository backed by the "trips" collection.
func NewMongoTripRepo(db *mongo.Database) TripRepository {
	repo := &MongoTripRepo{coll: db.Collection("trips")}
	if err := repo.EnsureIndexes(); err != nil {
		log.Printf("failed to create trip indexes: %v", err)
	}
	return repo
}

// Create inserts a new trip document.
func (r *MongoTripRepo) Create(ctx context.Context, trip *models.Trip) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, trip); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("trip for route %s on %s: %w", trip.BusRouteID, trip.TripDate.Format("2006-01-02"), repository.ErrDuplicateKey)
		}
		return fmt.Errorf("error creating trip: %w", err)
	}
	return nil
}

// GetByID retrieves a trip by its ID.
func (r *MongoTripRepo) GetByID(ctx context.Context, tripID string) (*models.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var trip models.Trip
	if err := r.coll.FindOne(ctx, bson.M{"id": tripID}).Decode(&trip); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("trip %s: %w", tripID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching trip %s: %w", tripID, err)
	}
	return &trip, nil
}

// FindByRouteAndDate returns repository.ErrNotFound when no trip is scheduled.
func (r *MongoTripRepo) FindByRouteAndDate(ctx context.Context, busRouteID string, tripDate time.Time) (*models.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"busRouteId": busRouteID, "tripDate": tripDate}
	var trip models.Trip
	if err := r.coll.FindOne(ctx, filter).Decode(&trip); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching trip for route %s: %w", busRouteID, err)
	}
	return &trip, nil
}

// UpdateStatus moves the trip to status using the version as a compare-and-swap guard.
func (r *MongoTripRepo) UpdateStatus(ctx context.Context, tripID string, expectedVersion int64, status models.TripStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": tripID, "version": expectedVersion}
	update := bson.M{
		"$set": bson.M{"tripStatus": status, "updatedAt": time.Now()},
		"$inc": bson.M{"version": 1},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating status of trip %s: %w", tripID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("trip %s at version %d: %w", tripID, expectedVersion, repository.ErrVersionConflict)
	}
	return nil
}
