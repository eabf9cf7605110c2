package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"busfleet/models"
	"busfleet/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBookingHandler handles POST /api/bookings. Seats are reserved first;
// a failed charge leaves the booking confirmed with payment pending.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := getLogger(c)
	var req models.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	req.PassengerID = callerID(c)

	b, err := h.Service.Reserve(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	if paid, err := h.Service.SettlePayment(c.Request.Context(), b.ID, req.PaymentToken); err != nil {
		logger.Warn("Payment not settled at booking time", zap.String("bookingId", b.ID), zap.Error(err))
	} else {
		b = paid
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":          "Booking created successfully",
		"booking":          b,
		"bookingReference": b.BookingReference,
	})
}

// ListBookingsHandler handles GET /api/bookings?page=&limit=&status=.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	status := models.BookingStatus(c.Query("status"))

	result, err := h.Service.ListPassengerBookings(c.Request.Context(), callerID(c), status, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBookingByReferenceHandler handles GET /api/bookings/reference/:reference.
func (h *BookingHandler) GetBookingByReferenceHandler(c *gin.Context) {
	b, err := h.Service.GetBookingByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler handles PATCH /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	var req models.CancelBookingRequest
	// The reason is optional; an empty body is fine.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}
	b, err := h.Service.Release(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully", "booking": b})
}

// PayBookingHandler handles POST /api/bookings/:id/payment.
func (h *BookingHandler) PayBookingHandler(c *gin.Context) {
	var req models.PayBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}
	b, err := h.Service.SettlePayment(c.Request.Context(), c.Param("id"), req.PaymentToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment processed", "booking": b})
}

// GetTicketHandler handles GET /api/bookings/:id/ticket.
func (h *BookingHandler) GetTicketHandler(c *gin.Context) {
	ticket, err := h.Service.GetTicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// GetTicketPDFHandler handles GET /api/bookings/:id/ticket/pdf.
func (h *BookingHandler) GetTicketPDFHandler(c *gin.Context) {
	ticket, err := h.Service.GetTicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	data, filename, err := booking.RenderTicketPDF(ticket)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
