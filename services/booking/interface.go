package booking

import (
	"context"
	"time"

	bookingRepo "busfleet/database/repository/booking"
	fleetRepo "busfleet/database/repository/fleet"
	reservationRepo "busfleet/database/repository/reservation"
	tripRepo "busfleet/database/repository/trip"
	"busfleet/models"

	"go.uber.org/zap"
)

const defaultMaxAttempts = 5

// BookingService owns trip seat inventory and the bookings that claim it.
type BookingService interface {
	CreateTrip(ctx context.Context, req models.CreateTripRequest) (*models.Trip, error)
	GetSeatAvailability(ctx context.Context, tripID string) (*models.SeatAvailabilityView, error)
	UpdateTripStatus(ctx context.Context, tripID string, status models.TripStatus) (*models.Trip, error)

	Reserve(ctx context.Context, req models.ReserveRequest) (*models.Booking, error)
	Release(ctx context.Context, bookingID, reason string) (*models.Booking, error)
	SettlePayment(ctx context.Context, bookingID, paymentToken string) (*models.Booking, error)

	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error)
	ListPassengerBookings(ctx context.Context, passengerID string, status models.BookingStatus, page, limit int) (*models.BookingPage, error)
	GetTicket(ctx context.Context, bookingID string) (*models.Ticket, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Trips        tripRepo.TripRepository
	Bookings     bookingRepo.BookingRepository
	Fleet        fleetRepo.FleetRepository
	Reservations reservationRepo.ReservationRepository
	Locker       TripLocker
	Payments     PaymentProcessor
	Logger       *zap.Logger
	Currency     string
	// MaxAttempts bounds the optimistic retries of one seat write.
	MaxAttempts int
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultBookingService) maxAttempts() int {
	if s.MaxAttempts > 0 {
		return s.MaxAttempts
	}
	return defaultMaxAttempts
}
