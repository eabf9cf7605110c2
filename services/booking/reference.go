package booking

import (
	"math/rand"
	"strconv"
	"time"
)

const (
	// ReferencePrefix starts every booking reference and ticket QR payload.
	ReferencePrefix = "BMS"

	transactionPrefix = "TXN"
	referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateBookingReference returns "BMS" + the last 6 digits of the millisecond
// timestamp + 6 random uppercase alphanumerics. Collisions are possible; the
// unique index on bookingReference catches them and the caller regenerates.
func GenerateBookingReference(now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}
	return ReferencePrefix + ts + randomAlphanumeric(6)
}

// GenerateTransactionID returns a simulated payment transaction id.
func GenerateTransactionID(now time.Time) string {
	return transactionPrefix + strconv.FormatInt(now.UnixMilli(), 10) + randomAlphanumeric(4)
}

// TicketQRCode is the payload printed on the e-ticket.
func TicketQRCode(reference string) string {
	return ReferencePrefix + "-" + reference
}

func randomAlphanumeric(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = referenceAlphabet[rand.Intn(len(referenceAlphabet))]
	}
	return string(b)
}
