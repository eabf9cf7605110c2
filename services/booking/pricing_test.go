package booking

import "testing"

func TestCalculatePricing(t *testing.T) {
	tests := []struct {
		name       string
		baseFare   float64
		seats      int
		multiplier float64
		wantTaxes  float64
		wantTotal  float64
		wantMult   float64
	}{
		{"two seats", 1000, 2, 1.0, 200, 2200, 1.0},
		{"peak multiplier", 1500, 3, 1.2, 540, 5940, 1.2},
		{"missing multiplier", 800, 1, 0, 80, 880, 1.0},
		{"fractional fare", 333.33, 1, 1.0, 33.33, 366.66, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CalculatePricing(tt.baseFare, tt.seats, tt.multiplier)
			if p.Taxes != tt.wantTaxes || p.TotalAmount != tt.wantTotal || p.PriceMultiplier != tt.wantMult {
				t.Fatalf("got %+v", p)
			}
			if p.BaseFare != tt.baseFare || p.Discount != 0 {
				t.Fatalf("got %+v", p)
			}
		})
	}
}

func TestMinorUnits(t *testing.T) {
	if got := minorUnits(2200.1); got != 220010 {
		t.Fatalf("minorUnits = %d", got)
	}
}
