package booking

import (
	"math"

	"busfleet/models"
)

// TaxRate is the flat tax applied to the fare subtotal.
const TaxRate = 0.10

// CalculatePricing computes the fare breakdown for seatCount seats:
// subtotal = baseFare × seatCount × multiplier, taxes = 10% of subtotal.
// A non-positive multiplier is treated as 1.0.
func CalculatePricing(baseFare float64, seatCount int, multiplier float64) models.PricingDetails {
	if multiplier <= 0 {
		multiplier = 1.0
	}
	subtotal := baseFare * float64(seatCount) * multiplier
	taxes := roundMoney(subtotal * TaxRate)
	return models.PricingDetails{
		BaseFare:        baseFare,
		Taxes:           taxes,
		Discount:        0,
		TotalAmount:     roundMoney(subtotal + taxes),
		PriceMultiplier: multiplier,
	}
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// minorUnits converts an amount to the smallest currency unit.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
