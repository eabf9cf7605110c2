package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodCard          PaymentMethod = "card"
	PaymentMethodCash          PaymentMethod = "cash"
	PaymentMethodDigitalWallet PaymentMethod = "digital_wallet"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodCash, PaymentMethodDigitalWallet:
		return true
	}
	return false
}

type PaymentDetails struct {
	PaymentMethod PaymentMethod `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	TransactionID string        `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaidAt        *time.Time    `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	RefundedAt    *time.Time    `bson:"refundedAt,omitempty" json:"refundedAt,omitempty"`
	RefundAmount  float64       `bson:"refundAmount,omitempty" json:"refundAmount,omitempty"`
	FailureReason string        `bson:"failureReason,omitempty" json:"failureReason,omitempty"`
}

// --- PaymentRequest & PaymentResult ---
type PaymentRequest struct {
	BookingID    string
	Reference    string
	PassengerID  string
	Amount       float64
	Currency     string
	Method       PaymentMethod
	PaymentToken string // payer's card or wallet id at the processor
}

type PaymentResult struct {
	TransactionID string
	Status        PaymentStatus
	PaidAt        *time.Time
	FailureReason string
}
