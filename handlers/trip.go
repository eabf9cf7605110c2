package handlers

import (
	"net/http"

	"busfleet/models"
	"busfleet/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TripHandler struct {
	Service booking.BookingService
}

func NewTripHandler(svc booking.BookingService) *TripHandler {
	return &TripHandler{Service: svc}
}

// CreateTripHandler handles POST /api/trips.
func (h *TripHandler) CreateTripHandler(c *gin.Context) {
	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	req.CreatedBy = callerID(c)

	trip, err := h.Service.CreateTrip(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Trip created", zap.String("tripId", trip.ID))
	c.JSON(http.StatusCreated, gin.H{"message": "Trip created successfully", "trip": trip})
}

// GetSeatAvailabilityHandler handles GET /api/trips/:tripId/seats.
func (h *TripHandler) GetSeatAvailabilityHandler(c *gin.Context) {
	view, err := h.Service.GetSeatAvailability(c.Request.Context(), c.Param("tripId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateTripStatusHandler handles PATCH /api/trips/:tripId/status.
func (h *TripHandler) UpdateTripStatusHandler(c *gin.Context) {
	var req models.UpdateTripStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	trip, err := h.Service.UpdateTripStatus(c.Request.Context(), c.Param("tripId"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip status updated", "trip": trip})
}
