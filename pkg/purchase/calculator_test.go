package purchase

import (
	"errors"
	"testing"
)

func TestValidateQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		stock    int
		wantErr  bool
	}{
		{"zero quantity", 0, 5, true},
		{"negative quantity", -1, 5, true},
		{"exceeds stock", 6, 5, true},
		{"exactly stock", 5, 5, false},
		{"within stock", 1, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuantity(tt.quantity, tt.stock)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQuantity) {
					t.Errorf("Expected ErrInvalidQuantity, got %v", err)
				}
			} else if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestComputeTotalWithoutRate(t *testing.T) {
	total := ComputeTotal(1990, 3, nil)

	if total.TotalCLP != 5970 {
		t.Errorf("Expected 5970 CLP, got %d", total.TotalCLP)
	}
	if total.TotalUSD != nil {
		t.Errorf("Expected no USD total without a rate, got %v", *total.TotalUSD)
	}
}

func TestComputeTotalWithRate(t *testing.T) {
	rate := 800.0
	total := ComputeTotal(1000, 2, &rate)

	if total.TotalCLP != 2000 {
		t.Errorf("Expected 2000 CLP, got %d", total.TotalCLP)
	}
	if total.TotalUSD == nil {
		t.Fatal("Expected a USD total")
	}
	if *total.TotalUSD != 2.5 {
		t.Errorf("Expected 2.50 USD, got %v", *total.TotalUSD)
	}
}

func TestComputeTotalBuildsUSDFromDisplayedUnitPrice(t *testing.T) {
	// Unit price shows as 1.12 USD; the total follows the displayed price
	rate := 890.0
	total := ComputeTotal(999, 3, &rate)

	if total.TotalCLP != 2997 {
		t.Errorf("Expected 2997 CLP, got %d", total.TotalCLP)
	}
	if total.TotalUSD == nil {
		t.Fatal("Expected a USD total")
	}
	if *total.TotalUSD != 3.36 {
		t.Errorf("Expected 3.36 USD, got %v", *total.TotalUSD)
	}
}

func TestComputeTotalNonPositiveRate(t *testing.T) {
	zero := 0.0
	total := ComputeTotal(1000, 1, &zero)
	if total.TotalUSD != nil {
		t.Errorf("Expected no USD total with a zero rate, got %v", *total.TotalUSD)
	}
}

func TestUnitPriceUSD(t *testing.T) {
	rate := 899.0
	usd, ok := UnitPriceUSD(8990, &rate)
	if !ok || usd != 10.0 {
		t.Errorf("Expected 10.00 USD, got %v (ok=%v)", usd, ok)
	}

	if _, ok := UnitPriceUSD(8990, nil); ok {
		t.Error("Expected no USD price without a rate")
	}
}
