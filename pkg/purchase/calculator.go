package purchase

import (
	"fmt"
	"math"
)

// Total is the computed price of a purchase. TotalUSD is nil whenever no
// CLP/USD rate was available; it never silently defaults to zero.
type Total struct {
	TotalCLP int      `json:"total_clp"`
	TotalUSD *float64 `json:"total_usd,omitempty"`
}

// ValidateQuantity checks a requested quantity against the available stock
func ValidateQuantity(quantity, stock int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if quantity > stock {
		return fmt.Errorf("%w: %d exceeds stock of %d", ErrInvalidQuantity, quantity, stock)
	}
	return nil
}

// ComputeTotal computes the purchase total in CLP and, when a rate is
// present, in USD. The CLP total is rounded to a whole peso. The USD total
// is built from the two-decimal unit price, matching how prices are shown,
// and rounded to two decimals. A missing rate yields a CLP-only total, not
// an error.
func ComputeTotal(unitPriceCLP, quantity int, rate *float64) Total {
	totalCLP := int(math.Round(float64(unitPriceCLP) * float64(quantity)))

	total := Total{TotalCLP: totalCLP}

	if rate != nil && *rate > 0 {
		unitUSD := round2(float64(unitPriceCLP) / *rate)
		totalUSD := round2(unitUSD * float64(quantity))
		total.TotalUSD = &totalUSD
	}

	return total
}

// UnitPriceUSD converts a CLP unit price to two-decimal USD.
// Returns false when no rate is available.
func UnitPriceUSD(unitPriceCLP int, rate *float64) (float64, bool) {
	if rate == nil || *rate <= 0 {
		return 0, false
	}
	return round2(float64(unitPriceCLP) / *rate), true
}

// round2 rounds half away from zero to two decimals
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
