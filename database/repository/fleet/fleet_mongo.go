package fleetRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"busfleet/database/repository"
	"busfleet/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFleetRepo implements FleetRepository using MongoDB.
type MongoFleetRepo struct {
	busColl      *mongo.Collection
	busRouteColl *mongo.Collection
}

// NewMongoFleetRepo constructs a FleetRepository over the "buses" and "busroutes" collections.
func NewMongoFleetRepo(db *mongo.Database) FleetRepository {
	return &MongoFleetRepo{
		busColl:      db.Collection("buses"),
		busRouteColl: db.Collection("busroutes"),
	}
}

// GetBusRoute retrieves a bus-route assignment by ID.
func (r *MongoFleetRepo) GetBusRoute(ctx context.Context, busRouteID string) (*models.BusRoute, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var route models.BusRoute
	if err := r.busRouteColl.FindOne(ctx, bson.M{"id": busRouteID}).Decode(&route); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("bus route %s: %w", busRouteID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching bus route %s: %w", busRouteID, err)
	}
	return &route, nil
}

// GetBus retrieves the bus fields needed to lay out a trip's seats.
func (r *MongoFleetRepo) GetBus(ctx context.Context, busID string) (*models.Bus, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{
		"id":                 1,
		"ownerId":            1,
		"registrationNumber": 1,
		"specifications":     1,
		"status":             1,
	})
	var bus models.Bus
	if err := r.busColl.FindOne(ctx, bson.M{"id": busID}, opts).Decode(&bus); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("bus %s: %w", busID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching bus %s: %w", busID, err)
	}
	return &bus, nil
}
