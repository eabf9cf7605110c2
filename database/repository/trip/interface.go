package tripRepo

import (
	"busfleet/models"
	"context"
	"time"
)

// TripRepository defines data access for scheduled trips.
type TripRepository interface {
	// Create inserts a new trip. A second trip for the same bus route and date
	// fails with repository.ErrDuplicateKey.
	Create(ctx context.Context, trip *models.Trip) error
	// GetByID retrieves a trip by its ID.
	GetByID(ctx context.Context, tripID string) (*models.Trip, error)
	// FindByRouteAndDate retrieves the trip for a bus route on a date, if any.
	FindByRouteAndDate(ctx context.Context, busRouteID string, tripDate time.Time) (*models.Trip, error)
	// UpdateStatus sets the trip status if the trip is still at expectedVersion.
	UpdateStatus(ctx context.Context, tripID string, expectedVersion int64, status models.TripStatus) error
}
