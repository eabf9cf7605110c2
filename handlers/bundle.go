package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Trip endpoints
	CreateTripHandler          gin.HandlerFunc
	GetSeatAvailabilityHandler gin.HandlerFunc
	UpdateTripStatusHandler    gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler         gin.HandlerFunc
	ListBookingsHandler          gin.HandlerFunc
	GetBookingHandler            gin.HandlerFunc
	GetBookingByReferenceHandler gin.HandlerFunc
	CancelBookingHandler         gin.HandlerFunc
	PayBookingHandler            gin.HandlerFunc
	GetTicketHandler             gin.HandlerFunc
	GetTicketPDFHandler          gin.HandlerFunc
}

// NewHandlerBundle wires trip and booking handlers over one service.
func NewHandlerBundle(trips *TripHandler, bookings *BookingHandler) *HandlerBundle {
	return &HandlerBundle{
		CreateTripHandler:          trips.CreateTripHandler,
		GetSeatAvailabilityHandler: trips.GetSeatAvailabilityHandler,
		UpdateTripStatusHandler:    trips.UpdateTripStatusHandler,

		CreateBookingHandler:         bookings.CreateBookingHandler,
		ListBookingsHandler:          bookings.ListBookingsHandler,
		GetBookingHandler:            bookings.GetBookingHandler,
		GetBookingByReferenceHandler: bookings.GetBookingByReferenceHandler,
		CancelBookingHandler:         bookings.CancelBookingHandler,
		PayBookingHandler:            bookings.PayBookingHandler,
		GetTicketHandler:             bookings.GetTicketHandler,
		GetTicketPDFHandler:          bookings.GetTicketPDFHandler,
	}
}
