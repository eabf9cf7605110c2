package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"busfleet/database/repository"
	"busfleet/models"

	"go.uber.org/zap"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.getBooking(ctx, bookingID)
}

func (s *DefaultBookingService) GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(reference)))
	if err != nil {
		return nil, notFound("booking", reference, err)
	}
	return booking, nil
}

// ListPassengerBookings returns one page of a passenger's bookings, newest first.
func (s *DefaultBookingService) ListPassengerBookings(ctx context.Context, passengerID string, status models.BookingStatus, page, limit int) (*models.BookingPage, error) {
	if strings.TrimSpace(passengerID) == "" {
		return nil, ValidationError{Field: "passengerId", Msg: "passenger id is required"}
	}
	switch status {
	case "", models.BookingStatusConfirmed, models.BookingStatusCancelled, models.BookingStatusCompleted,
		models.BookingStatusNoShow, models.BookingStatusRefunded:
	default:
		return nil, ValidationError{Field: "status", Msg: fmt.Sprintf("unknown booking status %q", status)}
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	skip := int64(page-1) * int64(limit)
	bookings, total, err := s.Bookings.ListByPassenger(ctx, passengerID, status, skip, int64(limit))
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return &models.BookingPage{
		Bookings: bookings,
		Pagination: models.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		},
	}, nil
}

// GetTicket builds the e-ticket for a booking.
func (s *DefaultBookingService) GetTicket(ctx context.Context, bookingID string) (*models.Ticket, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &models.Ticket{
		BookingReference: booking.BookingReference,
		PassengerID:      booking.PassengerID,
		Journey:          booking.JourneyDetails,
		Seats:            booking.SeatDetails,
		Pricing:          booking.Pricing,
		QRCode:           TicketQRCode(booking.BookingReference),
	}, nil
}

// SettlePayment charges a confirmed booking whose payment is still pending and
// records the outcome. Cash bookings stay pending. paymentToken names the
// payer's card or wallet at the processor and is not stored.
func (s *DefaultBookingService) SettlePayment(ctx context.Context, bookingID, paymentToken string) (*models.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, InvalidStateError{Resource: "booking", Msg: fmt.Sprintf("cannot take payment for a %s booking", booking.Status)}
	}
	if booking.PaymentDetails.PaymentStatus != models.PaymentStatusPending {
		return nil, InvalidStateError{Resource: "booking", Msg: fmt.Sprintf("payment is already %s", booking.PaymentDetails.PaymentStatus)}
	}

	res, err := s.Payments.Process(ctx, models.PaymentRequest{
		BookingID:    booking.ID,
		Reference:    booking.BookingReference,
		PassengerID:  booking.PassengerID,
		Amount:       booking.Pricing.TotalAmount,
		Currency:     s.Currency,
		Method:       booking.PaymentDetails.PaymentMethod,
		PaymentToken: paymentToken,
	})
	if err != nil {
		return nil, fmt.Errorf("payment for booking %s failed: %w", booking.ID, err)
	}
	if res.Status == models.PaymentStatusPending {
		return booking, nil
	}

	payment := booking.PaymentDetails
	payment.PaymentStatus = res.Status
	payment.TransactionID = res.TransactionID
	payment.PaidAt = res.PaidAt
	payment.FailureReason = res.FailureReason

	if err := s.Bookings.UpdatePayment(ctx, booking.ID, payment); err != nil {
		if errors.Is(err, repository.ErrBookingStateChanged) {
			s.logger().Warn("Booking changed while payment was processed",
				zap.String("bookingId", booking.ID),
				zap.String("transactionId", res.TransactionID),
			)
			return nil, InvalidStateError{Resource: "booking", Msg: "booking changed while payment was processed"}
		}
		return nil, err
	}

	booking.PaymentDetails = payment
	booking.UpdatedAt = s.now()
	s.logger().Info("Payment recorded",
		zap.String("bookingId", booking.ID),
		zap.String("status", string(payment.PaymentStatus)),
	)
	return booking, nil
}
