package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"busfleet/database/repository"
	"busfleet/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// tripTransitions lists the statuses a trip may move to from each status.
// Completed and cancelled trips are terminal.
var tripTransitions = map[models.TripStatus][]models.TripStatus{
	models.TripStatusScheduled:  {models.TripStatusInProgress, models.TripStatusDelayed, models.TripStatusCancelled},
	models.TripStatusDelayed:    {models.TripStatusScheduled, models.TripStatusInProgress, models.TripStatusCancelled},
	models.TripStatusInProgress: {models.TripStatusCompleted, models.TripStatusDelayed},
	models.TripStatusCompleted:  nil,
	models.TripStatusCancelled:  nil,
}

func canTransition(from, to models.TripStatus) bool {
	for _, next := range tripTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CreateTrip schedules a run of a bus route on a date with every seat free.
func (s *DefaultBookingService) CreateTrip(ctx context.Context, req models.CreateTripRequest) (*models.Trip, error) {
	if strings.TrimSpace(req.BusRouteID) == "" {
		return nil, ValidationError{Field: "busRouteId", Msg: "bus route id is required"}
	}
	tripDate, err := parseTripDate(req.TripDate)
	if err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = models.TripStatusScheduled
	}
	if status != models.TripStatusScheduled && status != models.TripStatusDelayed {
		return nil, ValidationError{Field: "tripStatus", Msg: fmt.Sprintf("a new trip cannot start as %q", status)}
	}

	busRoute, err := s.Fleet.GetBusRoute(ctx, req.BusRouteID)
	if err != nil {
		return nil, notFound("bus route", req.BusRouteID, err)
	}
	if busRoute.Status != models.BusRouteStatusActive {
		return nil, InvalidStateError{Resource: "bus route", Msg: fmt.Sprintf("bus route is %s", busRoute.Status)}
	}
	bus, err := s.Fleet.GetBus(ctx, busRoute.BusID)
	if err != nil {
		return nil, notFound("bus", busRoute.BusID, err)
	}
	if bus.Specifications.TotalSeats <= 0 {
		return nil, InvalidStateError{Resource: "bus", Msg: "bus has no seats configured"}
	}

	if _, err := s.Trips.FindByRouteAndDate(ctx, busRoute.ID, tripDate); err == nil {
		return nil, ConflictError{Msg: "trip already exists for this date"}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := s.now()
	trip := &models.Trip{
		ID:               uuid.New().String(),
		BusRouteID:       busRoute.ID,
		TripDate:         tripDate,
		Status:           status,
		SeatAvailability: NewSeatMap(bus.Specifications.TotalSeats),
		CreatedBy:        req.CreatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Trips.Create(ctx, trip); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ConflictError{Msg: "trip already exists for this date"}
		}
		return nil, err
	}

	s.logger().Info("Trip created",
		zap.String("tripId", trip.ID),
		zap.String("busRouteId", trip.BusRouteID),
		zap.Time("tripDate", trip.TripDate),
		zap.Int("seats", len(trip.SeatAvailability)),
	)
	return trip, nil
}

// GetSeatAvailability returns the trip's seat map with counts.
func (s *DefaultBookingService) GetSeatAvailability(ctx context.Context, tripID string) (*models.SeatAvailabilityView, error) {
	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	available := CountAvailable(trip.SeatAvailability)
	return &models.SeatAvailabilityView{
		TripID:         trip.ID,
		TripStatus:     trip.Status,
		TripDate:       trip.TripDate,
		TotalSeats:     len(trip.SeatAvailability),
		AvailableCount: available,
		BookedCount:    len(trip.SeatAvailability) - available,
		Seats:          trip.SeatAvailability,
	}, nil
}

// UpdateTripStatus moves a trip along its lifecycle. Setting the current
// status again is a no-op.
func (s *DefaultBookingService) UpdateTripStatus(ctx context.Context, tripID string, status models.TripStatus) (*models.Trip, error) {
	if _, known := tripTransitions[status]; !known {
		return nil, ValidationError{Field: "tripStatus", Msg: fmt.Sprintf("unknown trip status %q", status)}
	}

	unlock, err := s.Locker.Lock(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock trip %s: %w", tripID, err)
	}
	defer unlock()

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts(); attempt++ {
		trip, err := s.getTrip(ctx, tripID)
		if err != nil {
			return nil, err
		}
		if trip.Status == status {
			return trip, nil
		}
		if !canTransition(trip.Status, status) {
			return nil, InvalidStateError{Resource: "trip", Msg: fmt.Sprintf("cannot move from %s to %s", trip.Status, status)}
		}

		err = s.Trips.UpdateStatus(ctx, tripID, trip.Version, status)
		if err == nil {
			s.logger().Info("Trip status updated",
				zap.String("tripId", tripID),
				zap.String("from", string(trip.Status)),
				zap.String("to", string(status)),
			)
			trip.Status = status
			trip.Version++
			trip.UpdatedAt = s.now()
			return trip, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("update status of trip %s failed after %d attempts: %w", tripID, s.maxAttempts(), lastErr)
}

// parseTripDate accepts "2006-01-02" or RFC3339 and returns midnight UTC of
// the calendar date as written.
func parseTripDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ValidationError{Field: "tripDate", Msg: "trip date is required"}
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, ValidationError{Field: "tripDate", Msg: fmt.Sprintf("invalid trip date %q", raw)}
		}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
