package models

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no-show"
	BookingStatusRefunded  BookingStatus = "refunded"
)

// SeatDetail is one passenger seated on a booking.
type SeatDetail struct {
	SeatNumber        string `bson:"seatNumber" json:"seatNumber" binding:"required"`
	PassengerName     string `bson:"passengerName" json:"passengerName" binding:"required"`
	PassengerAge      int    `bson:"passengerAge" json:"passengerAge" binding:"required"`
	PassengerGender   string `bson:"passengerGender" json:"passengerGender" binding:"required"`
	PassengerIDType   string `bson:"passengerIdType,omitempty" json:"passengerIdType,omitempty"`
	PassengerIDNumber string `bson:"passengerIdNumber,omitempty" json:"passengerIdNumber,omitempty"`
	IsBoarded         bool   `bson:"isBoarded" json:"isBoarded"` // set at boarding, ignored on input
}

type JourneyDetails struct {
	BoardingPoint string    `bson:"boardingPoint" json:"boardingPoint"`
	DroppingPoint string    `bson:"droppingPoint" json:"droppingPoint"`
	JourneyDate   time.Time `bson:"journeyDate" json:"journeyDate"`
	JourneyTime   string    `bson:"journeyTime" json:"journeyTime"`
}

type PricingDetails struct {
	BaseFare        float64 `bson:"baseFare" json:"baseFare"`
	Taxes           float64 `bson:"taxes" json:"taxes"`
	Discount        float64 `bson:"discount" json:"discount"`
	TotalAmount     float64 `bson:"totalAmount" json:"totalAmount"`
	PriceMultiplier float64 `bson:"priceMultiplier" json:"priceMultiplier"`
}

// Booking is a passenger's reservation of one or more seats on a trip.
type Booking struct {
	ID                  string         `bson:"id" json:"id"`
	BookingReference    string         `bson:"bookingReference" json:"bookingReference"`
	PassengerID         string         `bson:"passengerId" json:"passengerId"`
	TripID              string         `bson:"tripId" json:"tripId"`
	SeatDetails         []SeatDetail   `bson:"seatDetails" json:"seatDetails"`
	JourneyDetails      JourneyDetails `bson:"journeyDetails" json:"journeyDetails"`
	Pricing             PricingDetails `bson:"pricing" json:"pricing"`
	PaymentDetails      PaymentDetails `bson:"paymentDetails" json:"paymentDetails"`
	Status              BookingStatus  `bson:"status" json:"status"`
	CancellationReason  string         `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	SpecialRequirements string         `bson:"specialRequirements,omitempty" json:"specialRequirements,omitempty"`
	CreatedAt           time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// SeatNumbers returns the seat labels claimed by the booking, in order.
func (b *Booking) SeatNumbers() []string {
	labels := make([]string, 0, len(b.SeatDetails))
	for _, sd := range b.SeatDetails {
		labels = append(labels, sd.SeatNumber)
	}
	return labels
}

// JourneyInput is the passenger-supplied part of the journey; the date comes from the trip.
type JourneyInput struct {
	BoardingPoint string `json:"boardingPoint" binding:"required"`
	DroppingPoint string `json:"droppingPoint" binding:"required"`
	JourneyTime   string `json:"journeyTime" binding:"required"`
}

// ReserveRequest is the validated input for reserving seats on a trip.
type ReserveRequest struct {
	TripID              string        `json:"tripId" binding:"required"`
	PassengerID         string        `json:"-"`
	SeatDetails         []SeatDetail  `json:"seatDetails" binding:"required,dive"`
	Journey             JourneyInput  `json:"journeyDetails" binding:"required"`
	PaymentMethod       PaymentMethod `json:"paymentMethod" binding:"required"`
	PaymentToken        string        `json:"paymentToken,omitempty"` // processor payment method id; never stored
	SpecialRequirements string        `json:"specialRequirements,omitempty"`
}

// PayBookingRequest carries the processor payment method for a pending booking.
type PayBookingRequest struct {
	PaymentToken string `json:"paymentToken"`
}

// CancelBookingRequest carries the optional cancellation reason.
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type BookingPage struct {
	Bookings   []Booking  `json:"bookings"`
	Pagination Pagination `json:"pagination"`
}

// Ticket is the e-ticket view of a booking.
type Ticket struct {
	BookingReference string         `json:"bookingReference"`
	PassengerID      string         `json:"passengerId"`
	Journey          JourneyDetails `json:"journey"`
	Seats            []SeatDetail   `json:"seats"`
	Pricing          PricingDetails `json:"pricing"`
	QRCode           string         `json:"qrCode"`
}
