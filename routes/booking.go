package routes

import (
	"busfleet/handlers"
	"busfleet/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterTripRoutes registers trip catalog endpoints.
func RegisterTripRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	trips := r.Group("/api/trips")
	{
		trips.GET("/:tripId/seats", hb.GetSeatAvailabilityHandler)

		protected := trips.Group("")
		protected.Use(middleware.CallerIdentity())
		protected.POST("", hb.CreateTripHandler)
		protected.PATCH("/:tripId/status", hb.UpdateTripStatusHandler)
	}
}

// RegisterBookingRoutes registers the reservation and booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookings := r.Group("/api/bookings")
	{
		bookings.Use(middleware.CallerIdentity())
		bookings.POST("", hb.CreateBookingHandler)
		bookings.GET("", hb.ListBookingsHandler)
		bookings.GET("/reference/:reference", hb.GetBookingByReferenceHandler)
		bookings.GET("/:id", hb.GetBookingHandler)
		bookings.PATCH("/:id/cancel", hb.CancelBookingHandler)
		bookings.POST("/:id/payment", hb.PayBookingHandler)
		bookings.GET("/:id/ticket", hb.GetTicketHandler)
		bookings.GET("/:id/ticket/pdf", hb.GetTicketPDFHandler)
	}
}
