package models

import "time"

type TripStatus string

const (
	TripStatusScheduled  TripStatus = "scheduled"
	TripStatusInProgress TripStatus = "in-progress"
	TripStatusCompleted  TripStatus = "completed"
	TripStatusCancelled  TripStatus = "cancelled"
	TripStatusDelayed    TripStatus = "delayed"
)

// SeatAvailability is one seat on a trip. BookingID is a lookup reference to
// the holding booking, not ownership; it must be cleared when that booking is cancelled.
type SeatAvailability struct {
	SeatNumber string `bson:"seatNumber" json:"seatNumber"`
	IsBooked   bool   `bson:"isBooked" json:"isBooked"`
	BookingID  string `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
}

// Trip is one scheduled run of a bus route on a date.
type Trip struct {
	ID               string             `bson:"id" json:"id"`
	BusRouteID       string             `bson:"busRouteId" json:"busRouteId"`
	TripDate         time.Time          `bson:"tripDate" json:"tripDate"`
	Status           TripStatus         `bson:"tripStatus" json:"tripStatus"`
	SeatAvailability []SeatAvailability `bson:"seatAvailability" json:"seatAvailability"`
	Version          int64              `bson:"version" json:"version"` // bumped on every seat or status write
	CreatedBy        string             `bson:"createdBy" json:"createdBy"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateTripRequest is the operator input for scheduling a trip.
type CreateTripRequest struct {
	BusRouteID string     `json:"busRouteId" binding:"required"`
	TripDate   string     `json:"tripDate" binding:"required"` // "2006-01-02" or RFC3339
	Status     TripStatus `json:"tripStatus,omitempty"`
	CreatedBy  string     `json:"-"`
}

// UpdateTripStatusRequest moves a trip through its lifecycle.
type UpdateTripStatusRequest struct {
	Status TripStatus `json:"tripStatus" binding:"required"`
}

// SeatAvailabilityView is the read model returned for a trip's seat map.
type SeatAvailabilityView struct {
	TripID         string             `json:"tripId"`
	TripStatus     TripStatus         `json:"tripStatus"`
	TripDate       time.Time          `json:"tripDate"`
	TotalSeats     int                `json:"totalSeats"`
	AvailableCount int                `json:"availableCount"`
	BookedCount    int                `json:"bookedCount"`
	Seats          []SeatAvailability `json:"seatAvailability"`
}
