package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"busfleet/database/repository"
	"busfleet/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var validGenders = map[string]bool{"male": true, "female": true, "other": true}

// Reserve holds the requested seats on a scheduled trip and creates a
// confirmed booking with pending payment. Either every seat is held by the new
// booking or none is.
func (s *DefaultBookingService) Reserve(ctx context.Context, req models.ReserveRequest) (*models.Booking, error) {
	if err := validateReserveRequest(req); err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(req.SeatDetails))
	for _, sd := range req.SeatDetails {
		labels = append(labels, sd.SeatNumber)
	}

	unlock, err := s.Locker.Lock(ctx, req.TripID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock trip %s: %w", req.TripID, err)
	}
	defer unlock()

	log := s.logger().With(zap.String("tripId", req.TripID), zap.String("passengerId", req.PassengerID))

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts(); attempt++ {
		booking, err := s.tryReserve(ctx, req, labels)
		if err == nil {
			log.Info("Seats reserved",
				zap.String("bookingId", booking.ID),
				zap.String("reference", booking.BookingReference),
				zap.Strings("seats", labels),
			)
			return booking, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) && !errors.Is(err, repository.ErrDuplicateKey) {
			return nil, err
		}
		lastErr = err
		log.Warn("Reservation write lost a race, retrying", zap.Int("attempt", attempt), zap.Error(err))
	}
	return nil, fmt.Errorf("reserve seats on trip %s failed after %d attempts: %w", req.TripID, s.maxAttempts(), lastErr)
}

func (s *DefaultBookingService) tryReserve(ctx context.Context, req models.ReserveRequest, labels []string) (*models.Booking, error) {
	trip, err := s.getTrip(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != models.TripStatusScheduled {
		return nil, InvalidStateError{Resource: "trip", Msg: fmt.Sprintf("trip is %s and not available for booking", trip.Status)}
	}

	busRoute, err := s.Fleet.GetBusRoute(ctx, trip.BusRouteID)
	if err != nil {
		return nil, notFound("bus route", trip.BusRouteID, err)
	}

	now := s.now()
	booking := &models.Booking{
		ID:               uuid.New().String(),
		BookingReference: GenerateBookingReference(now),
		PassengerID:      req.PassengerID,
		TripID:           trip.ID,
		SeatDetails:      passengerSeats(req.SeatDetails),
		JourneyDetails: models.JourneyDetails{
			BoardingPoint: req.Journey.BoardingPoint,
			DroppingPoint: req.Journey.DroppingPoint,
			JourneyDate:   trip.TripDate,
			JourneyTime:   req.Journey.JourneyTime,
		},
		Pricing: CalculatePricing(busRoute.Pricing.BaseFare, len(labels), busRoute.Pricing.PeakHourMultiplier),
		PaymentDetails: models.PaymentDetails{
			PaymentMethod: req.PaymentMethod,
			PaymentStatus: models.PaymentStatusPending,
		},
		Status:              models.BookingStatusConfirmed,
		SpecialRequirements: req.SpecialRequirements,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	seats, err := HoldSeats(trip.SeatAvailability, labels, booking.ID)
	if err != nil {
		return nil, err
	}
	if err := s.Reservations.CommitReservation(ctx, trip.ID, trip.Version, seats, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Release cancels a confirmed booking whose trip date is still in the future,
// frees its seats and marks the full amount refunded.
func (s *DefaultBookingService) Release(ctx context.Context, bookingID, reason string) (*models.Booking, error) {
	if strings.TrimSpace(bookingID) == "" {
		return nil, ValidationError{Field: "bookingId", Msg: "booking id is required"}
	}
	current, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.Locker.Lock(ctx, current.TripID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock trip %s: %w", current.TripID, err)
	}
	defer unlock()

	log := s.logger().With(zap.String("bookingId", bookingID), zap.String("tripId", current.TripID))

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts(); attempt++ {
		booking, err := s.tryRelease(ctx, bookingID, reason, log)
		if err == nil {
			log.Info("Booking cancelled", zap.Strings("seats", booking.SeatNumbers()))
			return booking, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) && !errors.Is(err, repository.ErrBookingStateChanged) {
			return nil, err
		}
		lastErr = err
		log.Warn("Cancellation write lost a race, retrying", zap.Int("attempt", attempt), zap.Error(err))
	}
	return nil, fmt.Errorf("cancel booking %s failed after %d attempts: %w", bookingID, s.maxAttempts(), lastErr)
}

func (s *DefaultBookingService) tryRelease(ctx context.Context, bookingID, reason string, log *zap.Logger) (*models.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, InvalidStateError{Resource: "booking", Msg: fmt.Sprintf("only confirmed bookings can be cancelled, booking is %s", booking.Status)}
	}
	trip, err := s.getTrip(ctx, booking.TripID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !trip.TripDate.After(now) {
		return nil, InvalidStateError{Resource: "booking", Msg: "cannot cancel booking on or after the trip date"}
	}

	seats, skipped := FreeSeats(trip.SeatAvailability, booking.SeatNumbers(), booking.ID)
	if len(skipped) > 0 {
		log.Warn("Seats not held by this booking were left untouched", zap.Strings("seats", skipped))
	}

	booking.Status = models.BookingStatusCancelled
	booking.CancellationReason = reason
	booking.PaymentDetails.PaymentStatus = models.PaymentStatusRefunded
	booking.PaymentDetails.RefundAmount = booking.Pricing.TotalAmount
	booking.PaymentDetails.RefundedAt = &now
	booking.UpdatedAt = now

	if err := s.Reservations.CommitCancellation(ctx, trip.ID, trip.Version, seats, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *DefaultBookingService) getTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip, err := s.Trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, notFound("trip", tripID, err)
	}
	return trip, nil
}

func (s *DefaultBookingService) getBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, notFound("booking", bookingID, err)
	}
	return booking, nil
}

// notFound converts a repository miss into a NotFoundError and passes other errors through.
func notFound(resource, id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return NotFoundError{Resource: resource, ID: id, Err: err}
	}
	return err
}

func validateReserveRequest(req models.ReserveRequest) error {
	if strings.TrimSpace(req.TripID) == "" {
		return ValidationError{Field: "tripId", Msg: "trip id is required"}
	}
	if strings.TrimSpace(req.PassengerID) == "" {
		return ValidationError{Field: "passengerId", Msg: "passenger id is required"}
	}
	labels := make([]string, 0, len(req.SeatDetails))
	for _, sd := range req.SeatDetails {
		labels = append(labels, sd.SeatNumber)
	}
	if err := validateSeatLabels(labels); err != nil {
		return err
	}
	for _, sd := range req.SeatDetails {
		if strings.TrimSpace(sd.PassengerName) == "" {
			return ValidationError{Field: "passengerName", Msg: fmt.Sprintf("seat %s needs a passenger name", sd.SeatNumber)}
		}
		if sd.PassengerAge < 1 || sd.PassengerAge > 120 {
			return ValidationError{Field: "passengerAge", Msg: fmt.Sprintf("seat %s: age must be between 1 and 120", sd.SeatNumber)}
		}
		if !validGenders[strings.ToLower(sd.PassengerGender)] {
			return ValidationError{Field: "passengerGender", Msg: fmt.Sprintf("seat %s: gender must be male, female or other", sd.SeatNumber)}
		}
	}
	if !req.PaymentMethod.Valid() {
		return ValidationError{Field: "paymentMethod", Msg: fmt.Sprintf("unsupported payment method %q", req.PaymentMethod)}
	}
	if strings.TrimSpace(req.Journey.BoardingPoint) == "" || strings.TrimSpace(req.Journey.DroppingPoint) == "" {
		return ValidationError{Field: "journeyDetails", Msg: "boarding and dropping points are required"}
	}
	if strings.TrimSpace(req.Journey.JourneyTime) == "" {
		return ValidationError{Field: "journeyTime", Msg: "journey time is required"}
	}
	return nil
}

// passengerSeats copies only the passenger-supplied fields of each seat.
// Boarding state starts cleared whatever the caller sent.
func passengerSeats(in []models.SeatDetail) []models.SeatDetail {
	out := make([]models.SeatDetail, 0, len(in))
	for _, sd := range in {
		out = append(out, models.SeatDetail{
			SeatNumber:        sd.SeatNumber,
			PassengerName:     strings.TrimSpace(sd.PassengerName),
			PassengerAge:      sd.PassengerAge,
			PassengerGender:   strings.ToLower(sd.PassengerGender),
			PassengerIDType:   sd.PassengerIDType,
			PassengerIDNumber: sd.PassengerIDNumber,
		})
	}
	return out
}
