package bookingRepo

import (
	"busfleet/models"
	"context"
)

// BookingRepository defines read and payment-update access to bookings.
// Seat-affecting writes go through the reservation repository.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// GetByReference retrieves a booking by its human-readable reference.
	GetByReference(ctx context.Context, reference string) (*models.Booking, error)
	// ListByPassenger returns a page of a passenger's bookings, newest first, and the total count.
	ListByPassenger(ctx context.Context, passengerID string, status models.BookingStatus, skip, limit int64) ([]models.Booking, int64, error)
	// UpdatePayment records a payment outcome while the booking is confirmed and its payment pending.
	UpdatePayment(ctx context.Context, bookingID string, payment models.PaymentDetails) error
}
