package booking

import (
	"fmt"
	"strconv"
	"strings"

	"busfleet/models"
)

// Seat records move between two states: free, and held by exactly one booking.
// The helpers below never mutate their input; they return a new seat map that
// the caller persists with a version check.

// NewSeatMap lays out totalSeats free seats labelled "1".."N".
func NewSeatMap(totalSeats int) []models.SeatAvailability {
	seats := make([]models.SeatAvailability, 0, totalSeats)
	for i := 1; i <= totalSeats; i++ {
		seats = append(seats, models.SeatAvailability{SeatNumber: strconv.Itoa(i)})
	}
	return seats
}

// validateSeatLabels rejects an empty request, blank labels and duplicates.
func validateSeatLabels(labels []string) error {
	if len(labels) == 0 {
		return ValidationError{Field: "seatDetails", Msg: "at least one seat is required"}
	}
	seen := make(map[string]struct{}, len(labels))
	var dups []string
	for _, label := range labels {
		if strings.TrimSpace(label) == "" {
			return ValidationError{Field: "seatDetails", Msg: "seat number must not be empty"}
		}
		if _, ok := seen[label]; ok {
			dups = append(dups, label)
			continue
		}
		seen[label] = struct{}{}
	}
	if len(dups) > 0 {
		return ValidationError{Field: "seatDetails", Msg: fmt.Sprintf("duplicate seats %s", strings.Join(dups, ", "))}
	}
	return nil
}

func indexSeats(seats []models.SeatAvailability) map[string]int {
	idx := make(map[string]int, len(seats))
	for i, s := range seats {
		idx[s.SeatNumber] = i
	}
	return idx
}

// UnknownSeats returns the requested labels that do not exist on the trip.
func UnknownSeats(seats []models.SeatAvailability, labels []string) []string {
	idx := indexSeats(seats)
	var unknown []string
	for _, label := range labels {
		if _, ok := idx[label]; !ok {
			unknown = append(unknown, label)
		}
	}
	return unknown
}

// BookedSeats returns the requested labels that are currently held, in request order.
func BookedSeats(seats []models.SeatAvailability, labels []string) []string {
	idx := indexSeats(seats)
	var booked []string
	for _, label := range labels {
		if i, ok := idx[label]; ok && seats[i].IsBooked {
			booked = append(booked, label)
		}
	}
	return booked
}

// HoldSeats returns a copy of seats with every label held by bookingID.
// Nothing is held unless every label exists and is free.
func HoldSeats(seats []models.SeatAvailability, labels []string, bookingID string) ([]models.SeatAvailability, error) {
	if unknown := UnknownSeats(seats, labels); len(unknown) > 0 {
		return nil, ValidationError{Field: "seatDetails", Msg: fmt.Sprintf("seats %s do not exist on this trip", strings.Join(unknown, ", "))}
	}
	if booked := BookedSeats(seats, labels); len(booked) > 0 {
		return nil, ConflictError{Seats: booked}
	}

	out := make([]models.SeatAvailability, len(seats))
	copy(out, seats)
	idx := indexSeats(out)
	for _, label := range labels {
		i := idx[label]
		out[i].IsBooked = true
		out[i].BookingID = bookingID
	}
	return out, nil
}

// FreeSeats returns a copy of seats with the labels held by bookingID released.
// Labels that are free or held by a different booking are left as they are and
// reported in skipped.
func FreeSeats(seats []models.SeatAvailability, labels []string, bookingID string) (out []models.SeatAvailability, skipped []string) {
	out = make([]models.SeatAvailability, len(seats))
	copy(out, seats)
	idx := indexSeats(out)
	for _, label := range labels {
		i, ok := idx[label]
		if !ok || !out[i].IsBooked || out[i].BookingID != bookingID {
			skipped = append(skipped, label)
			continue
		}
		out[i].IsBooked = false
		out[i].BookingID = ""
	}
	return out, skipped
}

// CountAvailable returns the number of free seats.
func CountAvailable(seats []models.SeatAvailability) int {
	n := 0
	for _, s := range seats {
		if !s.IsBooked {
			n++
		}
	}
	return n
}
