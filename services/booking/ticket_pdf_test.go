package booking

import (
	"bytes"
	"testing"
	"time"

	"busfleet/models"
)

func TestRenderTicketPDF(t *testing.T) {
	ticket := &models.Ticket{
		BookingReference: "BMS123456ABCDEF",
		Journey:          models.JourneyDetails{BoardingPoint: "Colombo", JourneyDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		Seats:            []models.SeatDetail{{SeatNumber: "3", PassengerName: "Ann", PassengerAge: 30, PassengerGender: "female"}},
		Pricing:          models.PricingDetails{TotalAmount: 1100, Taxes: 100},
		QRCode:           TicketQRCode("BMS123456ABCDEF"),
	}
	data, name, err := RenderTicketPDF(ticket)
	if err != nil {
		t.Fatalf("RenderTicketPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}
	if name != "ETICKET_BMS123456ABCDEF.pdf" {
		t.Fatalf("filename = %q", name)
	}
}
