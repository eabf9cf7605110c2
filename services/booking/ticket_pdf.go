package booking

import (
	"bytes"
	"fmt"
	"strings"

	"busfleet/models"

	"github.com/phpdave11/gofpdf"
)

// RenderTicketPDF lays the e-ticket out as a one-page A4 PDF and returns the
// bytes with a download filename.
func RenderTicketPDF(t *models.Ticket) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket "+t.BookingReference, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking reference : %s", t.BookingReference),
		fmt.Sprintf("Journey date      : %s %s", t.Journey.JourneyDate.Format("2006-01-02"), orDash(t.Journey.JourneyTime)),
		fmt.Sprintf("Boarding point    : %s", orDash(t.Journey.BoardingPoint)),
		fmt.Sprintf("Dropping point    : %s", orDash(t.Journey.DroppingPoint)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passengers")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, seat := range t.Seats {
		pdf.Cell(0, 6, fmt.Sprintf("Seat %-4s %s (%d, %s)", seat.SeatNumber, seat.PassengerName, seat.PassengerAge, seat.PassengerGender))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Total: %.2f (incl. taxes %.2f)", t.Pricing.TotalAmount, t.Pricing.Taxes))
	pdf.Ln(10)

	pdf.SetFont("Courier", "", 11)
	pdf.Cell(0, 6, t.QRCode)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Show this ticket when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render ticket %s: %w", t.BookingReference, err)
	}
	return buf.Bytes(), "ETICKET_" + t.BookingReference + ".pdf", nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
