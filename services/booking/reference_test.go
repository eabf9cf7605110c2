package booking

import (
	"regexp"
	"testing"
	"time"
)

var referencePattern = regexp.MustCompile(`^BMS\d{6}[0-9A-Z]{6}$`)

func TestGenerateBookingReferenceFormat(t *testing.T) {
	now := time.UnixMilli(1767225600123)
	ref := GenerateBookingReference(now)
	if !referencePattern.MatchString(ref) {
		t.Fatalf("reference %q does not match format", ref)
	}
	if ref[3:9] != "600123" {
		t.Fatalf("timestamp part = %q, want 600123", ref[3:9])
	}
}

func TestGenerateBookingReferenceVaries(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{}, 2000)
	for i := 0; i < 2000; i++ {
		seen[GenerateBookingReference(now)] = struct{}{}
	}
	// 36^6 suffixes; a handful of collisions at most.
	if len(seen) < 1990 {
		t.Fatalf("only %d distinct references out of 2000", len(seen))
	}
}

func TestTicketQRCode(t *testing.T) {
	if got := TicketQRCode("BMS123456ABCDEF"); got != "BMS-BMS123456ABCDEF" {
		t.Fatalf("qr = %q", got)
	}
}
