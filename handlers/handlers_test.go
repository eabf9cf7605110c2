package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"busfleet/middleware"
	"busfleet/models"
	"busfleet/services/booking"
	"busfleet/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubService implements booking.BookingService; unset funcs panic if called.
type stubService struct {
	reserve       func(models.ReserveRequest) (*models.Booking, error)
	release       func(id, reason string) (*models.Booking, error)
	settle        func(id, token string) (*models.Booking, error)
	availability  func(id string) (*models.SeatAvailabilityView, error)
	list          func(passengerID string, status models.BookingStatus, page, limit int) (*models.BookingPage, error)
	createTrip    func(models.CreateTripRequest) (*models.Trip, error)
	getBooking    func(id string) (*models.Booking, error)
	updateTripSts func(id string, status models.TripStatus) (*models.Trip, error)
}

func (s *stubService) CreateTrip(_ context.Context, req models.CreateTripRequest) (*models.Trip, error) {
	return s.createTrip(req)
}
func (s *stubService) GetSeatAvailability(_ context.Context, id string) (*models.SeatAvailabilityView, error) {
	return s.availability(id)
}
func (s *stubService) UpdateTripStatus(_ context.Context, id string, status models.TripStatus) (*models.Trip, error) {
	return s.updateTripSts(id, status)
}
func (s *stubService) Reserve(_ context.Context, req models.ReserveRequest) (*models.Booking, error) {
	return s.reserve(req)
}
func (s *stubService) Release(_ context.Context, id, reason string) (*models.Booking, error) {
	return s.release(id, reason)
}
func (s *stubService) SettlePayment(_ context.Context, id, token string) (*models.Booking, error) {
	return s.settle(id, token)
}
func (s *stubService) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	return s.getBooking(id)
}
func (s *stubService) GetBookingByReference(_ context.Context, ref string) (*models.Booking, error) {
	return s.getBooking(ref)
}
func (s *stubService) ListPassengerBookings(_ context.Context, passengerID string, status models.BookingStatus, page, limit int) (*models.BookingPage, error) {
	return s.list(passengerID, status, page, limit)
}
func (s *stubService) GetTicket(_ context.Context, id string) (*models.Ticket, error) {
	b, err := s.getBooking(id)
	if err != nil {
		return nil, err
	}
	return &models.Ticket{BookingReference: b.BookingReference, QRCode: booking.TicketQRCode(b.BookingReference)}, nil
}

func newRouter(svc booking.BookingService) *gin.Engine {
	hb := NewHandlerBundle(NewTripHandler(svc), NewBookingHandler(svc))
	r := gin.New()
	r.Use(utils.ErrorHandler())
	r.GET("/api/trips/:tripId/seats", hb.GetSeatAvailabilityHandler)
	api := r.Group("/api", middleware.CallerIdentity())
	api.POST("/trips", hb.CreateTripHandler)
	api.PATCH("/trips/:tripId/status", hb.UpdateTripStatusHandler)
	api.POST("/bookings", hb.CreateBookingHandler)
	api.GET("/bookings", hb.ListBookingsHandler)
	api.GET("/bookings/:id", hb.GetBookingHandler)
	api.PATCH("/bookings/:id/cancel", hb.CancelBookingHandler)
	api.POST("/bookings/:id/payment", hb.PayBookingHandler)
	api.GET("/bookings/:id/ticket", hb.GetTicketHandler)
	api.GET("/bookings/:id/ticket/pdf", hb.GetTicketPDFHandler)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.UserIDHeader, "p-1")
	r.ServeHTTP(w, req)
	return w
}

const reserveBody = `{
	"tripId": "trip-1",
	"seatDetails": [{"seatNumber": "1", "passengerName": "Ann", "passengerAge": 30, "passengerGender": "female"}],
	"journeyDetails": {"boardingPoint": "Colombo", "droppingPoint": "Kandy", "journeyTime": "08:30"},
	"paymentMethod": "card"
}`

func TestCreateBookingReservesThenSettles(t *testing.T) {
	var gotPassenger string
	svc := &stubService{
		reserve: func(req models.ReserveRequest) (*models.Booking, error) {
			gotPassenger = req.PassengerID
			return &models.Booking{ID: "b-1", BookingReference: "BMS123456ABCDEF"}, nil
		},
		settle: func(id, _ string) (*models.Booking, error) {
			return &models.Booking{ID: id, BookingReference: "BMS123456ABCDEF",
				PaymentDetails: models.PaymentDetails{PaymentStatus: models.PaymentStatusCompleted}}, nil
		},
	}
	w := do(newRouter(svc), http.MethodPost, "/api/bookings", reserveBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if gotPassenger != "p-1" {
		t.Fatalf("passenger = %q, want caller id", gotPassenger)
	}
	var resp struct {
		Booking          models.Booking `json:"booking"`
		BookingReference string         `json:"bookingReference"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.BookingReference != "BMS123456ABCDEF" || resp.Booking.PaymentDetails.PaymentStatus != models.PaymentStatusCompleted {
		t.Fatalf("unexpected response %s", w.Body.String())
	}
}

func TestCreateBookingKeepsBookingWhenPaymentFails(t *testing.T) {
	svc := &stubService{
		reserve: func(models.ReserveRequest) (*models.Booking, error) { return &models.Booking{ID: "b-1"}, nil },
		settle:  func(string, string) (*models.Booking, error) { return nil, errors.New("gateway down") },
	}
	if w := do(newRouter(svc), http.MethodPost, "/api/bookings", reserveBody); w.Code != http.StatusCreated {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", booking.ValidationError{Field: "seatDetails", Msg: "bad"}, http.StatusBadRequest},
		{"not found", booking.NotFoundError{Resource: "trip", ID: "x"}, http.StatusNotFound},
		{"invalid state", booking.InvalidStateError{Resource: "trip", Msg: "cancelled"}, http.StatusUnprocessableEntity},
		{"conflict", booking.ConflictError{Seats: []string{"2", "5"}}, http.StatusConflict},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{reserve: func(models.ReserveRequest) (*models.Booking, error) { return nil, tt.err }}
			w := do(newRouter(svc), http.MethodPost, "/api/bookings", reserveBody)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestConflictBodyListsSeats(t *testing.T) {
	svc := &stubService{reserve: func(models.ReserveRequest) (*models.Booking, error) {
		return nil, booking.ConflictError{Seats: []string{"2", "5"}}
	}}
	w := do(newRouter(svc), http.MethodPost, "/api/bookings", reserveBody)
	var resp utils.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Seats) != 2 || resp.Seats[0] != "2" || resp.Seats[1] != "5" {
		t.Fatalf("seats = %v", resp.Seats)
	}
}

func TestCreateBookingRejectsMalformedBody(t *testing.T) {
	svc := &stubService{}
	if w := do(newRouter(svc), http.MethodPost, "/api/bookings", `{"tripId": 7}`); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCancelBookingPassesReason(t *testing.T) {
	var gotReason string
	svc := &stubService{release: func(id, reason string) (*models.Booking, error) {
		gotReason = reason
		return &models.Booking{ID: id, Status: models.BookingStatusCancelled}, nil
	}}
	r := newRouter(svc)
	if w := do(r, http.MethodPatch, "/api/bookings/b-1/cancel", `{"reason": "sick"}`); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotReason != "sick" {
		t.Fatalf("reason = %q", gotReason)
	}
	if w := do(r, http.MethodPatch, "/api/bookings/b-1/cancel", ""); w.Code != http.StatusOK {
		t.Fatalf("empty body: status = %d", w.Code)
	}
}

func TestListBookingsParsesQuery(t *testing.T) {
	var gotPage, gotLimit int
	var gotStatus models.BookingStatus
	svc := &stubService{list: func(passengerID string, status models.BookingStatus, page, limit int) (*models.BookingPage, error) {
		gotPage, gotLimit, gotStatus = page, limit, status
		return &models.BookingPage{Bookings: []models.Booking{}}, nil
	}}
	w := do(newRouter(svc), http.MethodGet, "/api/bookings?page=3&limit=5&status=cancelled", "")
	if w.Code != http.StatusOK || gotPage != 3 || gotLimit != 5 || gotStatus != models.BookingStatusCancelled {
		t.Fatalf("status=%d page=%d limit=%d st=%s", w.Code, gotPage, gotLimit, gotStatus)
	}
}

func TestSeatAvailabilityIsPublic(t *testing.T) {
	svc := &stubService{availability: func(id string) (*models.SeatAvailabilityView, error) {
		return &models.SeatAvailabilityView{TripID: id, TotalSeats: 2, AvailableCount: 2}, nil
	}}
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/trips/trip-1/seats", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCreateTripUsesCaller(t *testing.T) {
	var got models.CreateTripRequest
	svc := &stubService{createTrip: func(req models.CreateTripRequest) (*models.Trip, error) {
		got = req
		return &models.Trip{ID: "trip-1"}, nil
	}}
	w := do(newRouter(svc), http.MethodPost, "/api/trips", `{"busRouteId": "route-1", "tripDate": "2026-04-01"}`)
	if w.Code != http.StatusCreated || got.CreatedBy != "p-1" || got.BusRouteID != "route-1" {
		t.Fatalf("status=%d req=%+v", w.Code, got)
	}
}

func TestGetTicket(t *testing.T) {
	svc := &stubService{getBooking: func(id string) (*models.Booking, error) {
		return &models.Booking{ID: id, BookingReference: "BMS000001AAAAAA"}, nil
	}}
	w := do(newRouter(svc), http.MethodGet, "/api/bookings/b-1/ticket", "")
	var ticket models.Ticket
	_ = json.Unmarshal(w.Body.Bytes(), &ticket)
	if w.Code != http.StatusOK || ticket.QRCode != "BMS-BMS000001AAAAAA" {
		t.Fatalf("status=%d ticket=%+v", w.Code, ticket)
	}
}

func TestGetTicketPDF(t *testing.T) {
	svc := &stubService{getBooking: func(id string) (*models.Booking, error) {
		return &models.Booking{ID: id, BookingReference: "BMS000001AAAAAA"}, nil
	}}
	w := do(newRouter(svc), http.MethodGet, "/api/bookings/b-1/ticket/pdf", "")
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("status=%d type=%q", w.Code, w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "ETICKET_BMS000001AAAAAA.pdf") {
		t.Fatalf("disposition = %q", w.Header().Get("Content-Disposition"))
	}
}

func TestPaymentTokenReachesSettlement(t *testing.T) {
	var tokens []string
	svc := &stubService{
		reserve: func(models.ReserveRequest) (*models.Booking, error) { return &models.Booking{ID: "b-1"}, nil },
		settle: func(id, token string) (*models.Booking, error) {
			tokens = append(tokens, token)
			return &models.Booking{ID: id}, nil
		},
	}
	r := newRouter(svc)
	body := strings.Replace(reserveBody, `"paymentMethod": "card"`, `"paymentMethod": "card", "paymentToken": "pm_123"`, 1)
	if w := do(r, http.MethodPost, "/api/bookings", body); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/bookings/b-1/payment", `{"paymentToken": "pm_456"}`); w.Code != http.StatusOK {
		t.Fatalf("pay status = %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/bookings/b-1/payment", ""); w.Code != http.StatusOK {
		t.Fatalf("pay without body status = %d", w.Code)
	}
	if len(tokens) != 3 || tokens[0] != "pm_123" || tokens[1] != "pm_456" || tokens[2] != "" {
		t.Fatalf("tokens = %q", tokens)
	}
}

func TestCreateBookingRequiresJourneyTime(t *testing.T) {
	svc := &stubService{}
	body := strings.Replace(reserveBody, `, "journeyTime": "08:30"`, "", 1)
	if w := do(newRouter(svc), http.MethodPost, "/api/bookings", body); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}
