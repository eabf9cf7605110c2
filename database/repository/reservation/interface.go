package reservationRepo

import (
	"busfleet/models"
	"context"
)

// ReservationRepository writes a trip's seat map together with the booking
// that claims or releases those seats. Both writes commit or neither does.
type ReservationRepository interface {
	// CommitReservation stores seats on the trip (only if the trip is still at
	// expectedVersion and scheduled) and inserts the new booking.
	CommitReservation(ctx context.Context, tripID string, expectedVersion int64, seats []models.SeatAvailability, booking *models.Booking) error
	// CommitCancellation stores seats on the trip (only if still at expectedVersion)
	// and writes the cancelled booking (only if it is still confirmed).
	CommitCancellation(ctx context.Context, tripID string, expectedVersion int64, seats []models.SeatAvailability, booking *models.Booking) error
}
