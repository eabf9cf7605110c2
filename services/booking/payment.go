package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"busfleet/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// --- Interfaces ---
type PaymentProcessor interface {
	Process(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error)
}

// --- Simulated processor ---

// SimulatedPaymentProcessor completes card and wallet payments immediately.
// Cash stays pending until collected at boarding.
type SimulatedPaymentProcessor struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewSimulatedPaymentProcessor(logger *zap.Logger) *SimulatedPaymentProcessor {
	return &SimulatedPaymentProcessor{logger: logger, now: time.Now}
}

func (p *SimulatedPaymentProcessor) Process(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	if err := validatePaymentRequest(req); err != nil {
		return nil, fmt.Errorf("invalid payment request: %w", err)
	}

	if req.Method == models.PaymentMethodCash {
		p.logger.Info("Cash payment recorded", zap.String("bookingId", req.BookingID))
		return &models.PaymentResult{Status: models.PaymentStatusPending}, nil
	}

	now := p.now()
	res := &models.PaymentResult{
		TransactionID: GenerateTransactionID(now),
		Status:        models.PaymentStatusCompleted,
		PaidAt:        &now,
	}
	p.logger.Info("Payment successful",
		zap.String("bookingId", req.BookingID),
		zap.String("transactionId", res.TransactionID),
		zap.String("method", string(req.Method)),
	)
	return res, nil
}

// --- Stripe processor ---

// StripePaymentProcessor confirms a PaymentIntent for card and wallet payments
// against the payer's payment method from the request.
type StripePaymentProcessor struct {
	logger   *zap.Logger
	currency string
	// defaultMethod is used when a request carries no token; empty in production.
	defaultMethod string
}

// ErrStripeTestMethodWithLiveKey rejects a live key paired with a Stripe test fixture.
var ErrStripeTestMethodWithLiveKey = errors.New("stripe test payment method configured with a live key")

// CheckStripeSettings refuses a live secret key combined with one of Stripe's
// pm_card_* test fixtures as the default payment method.
func CheckStripeSettings(key, defaultMethod string) error {
	if strings.HasPrefix(key, "sk_live_") && strings.HasPrefix(defaultMethod, "pm_card_") {
		return fmt.Errorf("%w: %s", ErrStripeTestMethodWithLiveKey, defaultMethod)
	}
	return nil
}

// NewStripePaymentProcessor sets the global Stripe key and returns a processor
// charging in currency. defaultMethod may be empty.
func NewStripePaymentProcessor(key, currency, defaultMethod string, logger *zap.Logger) (*StripePaymentProcessor, error) {
	if err := CheckStripeSettings(key, defaultMethod); err != nil {
		return nil, err
	}
	stripe.Key = key
	return &StripePaymentProcessor{logger: logger, currency: currency, defaultMethod: defaultMethod}, nil
}

func (p *StripePaymentProcessor) Process(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	if err := validatePaymentRequest(req); err != nil {
		return nil, fmt.Errorf("invalid payment request: %w", err)
	}
	if req.Method == models.PaymentMethodCash {
		return &models.PaymentResult{Status: models.PaymentStatusPending}, nil
	}

	method := strings.TrimSpace(req.PaymentToken)
	if method == "" {
		method = p.defaultMethod
	}
	if method == "" {
		p.logger.Info("Card payment deferred, no payment method supplied", zap.String("bookingId", req.BookingID))
		return &models.PaymentResult{Status: models.PaymentStatusPending}, nil
	}

	currency := req.Currency
	if currency == "" {
		currency = p.currency
	}
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(minorUnits(req.Amount)),
		Currency:      stripe.String(currency),
		PaymentMethod: stripe.String(method),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey("booking-" + req.BookingID)
	params.AddMetadata("bookingId", req.BookingID)
	params.AddMetadata("bookingReference", req.Reference)

	pi, err := paymentintent.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			p.logger.Warn("Card declined", zap.String("bookingId", req.BookingID), zap.String("code", string(stripeErr.Code)))
			return &models.PaymentResult{Status: models.PaymentStatusFailed, FailureReason: stripeErr.Msg}, nil
		}
		return nil, fmt.Errorf("stripe payment intent failed: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return &models.PaymentResult{
			TransactionID: pi.ID,
			Status:        models.PaymentStatusFailed,
			FailureReason: fmt.Sprintf("payment intent %s", pi.Status),
		}, nil
	}

	paidAt := time.Unix(pi.Created, 0)
	p.logger.Info("Stripe payment successful", zap.String("bookingId", req.BookingID), zap.String("paymentIntent", pi.ID))
	return &models.PaymentResult{
		TransactionID: pi.ID,
		Status:        models.PaymentStatusCompleted,
		PaidAt:        &paidAt,
	}, nil
}

// --- Validator ---
func validatePaymentRequest(req models.PaymentRequest) error {
	if req.Amount <= 0 {
		return errors.New("invalid payment amount")
	}
	if req.BookingID == "" {
		return errors.New("missing booking ID")
	}
	if !req.Method.Valid() {
		return fmt.Errorf("unsupported method: %s", req.Method)
	}
	return nil
}
