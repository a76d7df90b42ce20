package purchase

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"tiendascan/pkg/catalog"
)

func offer(stock int) catalog.SearchRecord {
	return catalog.SearchRecord{
		ProductID:      7,
		ProductName:    "Sierra Circular",
		PriceCLP:       45990,
		StockAvailable: stock,
		BranchID:       3,
		BranchName:     "Casa Matriz",
	}
}

func TestSelectionLifecycle(t *testing.T) {
	s := NewSelection()
	if s.State() != StateNoSelection {
		t.Fatalf("Expected no_selection, got %s", s.State())
	}

	if _, err := s.ComputeTotal(1, nil); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Expected ErrNoSelection, got %v", err)
	}
	if _, err := s.Confirm("/pago"); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Expected ErrNoSelection, got %v", err)
	}

	if err := s.Select(offer(4)); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if s.State() != StateSelected {
		t.Fatalf("Expected selected, got %s", s.State())
	}

	if _, err := s.Confirm("/pago"); !errors.Is(err, ErrNoTotal) {
		t.Errorf("Expected ErrNoTotal before total, got %v", err)
	}

	rate := 919.8
	total, err := s.ComputeTotal(2, &rate)
	if err != nil {
		t.Fatalf("ComputeTotal failed: %v", err)
	}
	if s.State() != StateTotalComputed {
		t.Fatalf("Expected total_computed, got %s", s.State())
	}
	if total.TotalCLP != 91980 {
		t.Errorf("Expected 91980 CLP, got %d", total.TotalCLP)
	}

	checkoutURL, err := s.Confirm("/pago")
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if s.State() != StateConfirmed {
		t.Fatalf("Expected confirmed, got %s", s.State())
	}
	if !strings.HasPrefix(checkoutURL, "/pago?") {
		t.Errorf("Checkout URL should target payment page, got %s", checkoutURL)
	}

	// Terminal state rejects everything
	if err := s.Select(offer(4)); !errors.Is(err, ErrAlreadyConfirmed) {
		t.Errorf("Expected ErrAlreadyConfirmed, got %v", err)
	}
	if _, err := s.ComputeTotal(1, nil); !errors.Is(err, ErrAlreadyConfirmed) {
		t.Errorf("Expected ErrAlreadyConfirmed, got %v", err)
	}
	if _, err := s.Confirm("/pago"); !errors.Is(err, ErrAlreadyConfirmed) {
		t.Errorf("Expected ErrAlreadyConfirmed, got %v", err)
	}
}

func TestSelectionRejectsOutOfStock(t *testing.T) {
	s := NewSelection()
	if err := s.Select(offer(0)); !errors.Is(err, ErrOutOfStock) {
		t.Errorf("Expected ErrOutOfStock, got %v", err)
	}
	if s.State() != StateNoSelection {
		t.Errorf("Rejected pick should not change state, got %s", s.State())
	}
}

func TestSelectionReselectDiscardsTotal(t *testing.T) {
	s := NewSelection()
	if err := s.Select(offer(4)); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if _, err := s.ComputeTotal(2, nil); err != nil {
		t.Fatalf("ComputeTotal failed: %v", err)
	}

	other := offer(9)
	other.BranchID = 5
	other.BranchName = "Norte"
	if err := s.Select(other); err != nil {
		t.Fatalf("Reselect failed: %v", err)
	}
	if s.State() != StateSelected {
		t.Errorf("Reselect should drop the total, got %s", s.State())
	}
	if s.Total().TotalCLP != 0 {
		t.Errorf("Total should be discarded, got %d", s.Total().TotalCLP)
	}
}

func TestSelectionResetOnNewSearch(t *testing.T) {
	s := NewSelection()
	if err := s.Select(offer(4)); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	s.Reset()
	if s.State() != StateNoSelection {
		t.Errorf("Reset should return to no_selection, got %s", s.State())
	}
}

func TestSelectionInvalidQuantityBlocksTotal(t *testing.T) {
	s := NewSelection()
	if err := s.Select(offer(3)); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if _, err := s.ComputeTotal(4, nil); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("Expected ErrInvalidQuantity, got %v", err)
	}
	if s.State() != StateSelected {
		t.Errorf("Failed validation should keep selected state, got %s", s.State())
	}
}

func TestSelectionFailedRecomputeDiscardsTotal(t *testing.T) {
	s := NewSelection()
	if err := s.Select(offer(3)); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	rate := 800.0
	if _, err := s.ComputeTotal(2, &rate); err != nil {
		t.Fatalf("ComputeTotal failed: %v", err)
	}

	if _, err := s.ComputeTotal(99, &rate); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("Expected ErrInvalidQuantity, got %v", err)
	}
	if s.State() != StateSelected {
		t.Errorf("Failed recompute should drop back to selected, got %s", s.State())
	}
	if s.Total().TotalCLP != 0 {
		t.Errorf("Stale total should be discarded, got %d", s.Total().TotalCLP)
	}
	if _, err := s.Confirm("/pago"); !errors.Is(err, ErrNoTotal) {
		t.Errorf("Confirm after failed recompute should need a fresh total, got %v", err)
	}
}

func TestCheckoutURL(t *testing.T) {
	rate := 919.8
	record := offer(4)

	raw := CheckoutURL("/pago", record, 2, &rate)
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("Checkout URL does not parse: %v", err)
	}

	q := parsed.Query()
	expected := map[string]string{
		"sucursal_id":         "3",
		"producto_id":         "7",
		"cantidad":            "2",
		"producto_nombre":     "Sierra Circular",
		"sucursal_nombre":     "Casa Matriz",
		"precio_clp_unitario": "45990",
		"precio_usd_unitario": "50.00",
	}
	for key, want := range expected {
		if got := q.Get(key); got != want {
			t.Errorf("Param %s: expected %s, got %s", key, want, got)
		}
	}
}

func TestCheckoutURLWithoutRateOmitsUSD(t *testing.T) {
	raw := CheckoutURL("/pago", offer(4), 1, nil)
	parsed, _ := url.Parse(raw)
	if parsed.Query().Has("precio_usd_unitario") {
		t.Error("USD unit price should be omitted without a rate")
	}
}
