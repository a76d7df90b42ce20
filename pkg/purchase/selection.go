package purchase

import (
	"fmt"
	"net/url"
	"strconv"

	"tiendascan/pkg/catalog"
)

// State is the position of a purchase flow within its lifecycle
type State int

const (
	// StateNoSelection means no branch offer has been picked yet
	StateNoSelection State = iota
	// StateSelected means a branch offer is picked but no total exists
	StateSelected
	// StateTotalComputed means a validated total is ready for confirmation
	StateTotalComputed
	// StateConfirmed is terminal: the shopper was handed off to checkout
	StateConfirmed
)

func (s State) String() string {
	switch s {
	case StateNoSelection:
		return "no_selection"
	case StateSelected:
		return "selected"
	case StateTotalComputed:
		return "total_computed"
	case StateConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Selection drives a single purchase flow: pick an offer, compute a total,
// confirm. A new search resets it; picking another offer discards any total.
type Selection struct {
	state    State
	record   catalog.SearchRecord
	quantity int
	total    Total
	rate     *float64
}

// NewSelection returns a selection with nothing picked
func NewSelection() *Selection {
	return &Selection{state: StateNoSelection}
}

// State returns the current lifecycle state
func (s *Selection) State() State {
	return s.state
}

// Record returns the picked offer. Only meaningful outside StateNoSelection.
func (s *Selection) Record() catalog.SearchRecord {
	return s.record
}

// Total returns the computed total. Only meaningful in StateTotalComputed
// and StateConfirmed.
func (s *Selection) Total() Total {
	return s.total
}

// Reset clears the flow back to no selection. Called on every new search.
func (s *Selection) Reset() {
	*s = Selection{state: StateNoSelection}
}

// Select picks a branch offer. Offers without stock are rejected. Picking
// while a total exists discards that total; picking after confirmation is
// not allowed.
func (s *Selection) Select(record catalog.SearchRecord) error {
	if s.state == StateConfirmed {
		return ErrAlreadyConfirmed
	}
	if record.StockAvailable == 0 {
		return fmt.Errorf("%w: %s at %s", ErrOutOfStock, record.ProductName, record.BranchName)
	}

	s.record = record
	s.quantity = 0
	s.total = Total{}
	s.rate = nil
	s.state = StateSelected
	return nil
}

// ComputeTotal validates the quantity against the picked offer and stores
// the resulting total. Reachable only from a selected offer.
func (s *Selection) ComputeTotal(quantity int, rate *float64) (Total, error) {
	switch s.state {
	case StateNoSelection:
		return Total{}, ErrNoSelection
	case StateConfirmed:
		return Total{}, ErrAlreadyConfirmed
	}

	if err := ValidateQuantity(quantity, s.record.StockAvailable); err != nil {
		// A failed validation invalidates any earlier total: the flow
		// falls back to the bare selection so a stale amount can never
		// be confirmed.
		s.quantity = 0
		s.rate = nil
		s.total = Total{}
		s.state = StateSelected
		return Total{}, err
	}

	s.quantity = quantity
	s.rate = rate
	s.total = ComputeTotal(s.record.PriceCLP, quantity, rate)
	s.state = StateTotalComputed
	return s.total, nil
}

// Confirm finishes the flow and returns the checkout URL built from the
// configured payment page. The selection becomes terminal.
func (s *Selection) Confirm(paymentURL string) (string, error) {
	switch s.state {
	case StateNoSelection:
		return "", ErrNoSelection
	case StateSelected:
		return "", ErrNoTotal
	case StateConfirmed:
		return "", ErrAlreadyConfirmed
	}

	s.state = StateConfirmed
	return CheckoutURL(paymentURL, s.record, s.quantity, s.rate), nil
}

// CheckoutURL appends the purchase parameters to the payment page URL
func CheckoutURL(paymentURL string, record catalog.SearchRecord, quantity int, rate *float64) string {
	params := url.Values{}
	params.Set("sucursal_id", strconv.FormatUint(uint64(record.BranchID), 10))
	params.Set("producto_id", strconv.FormatUint(uint64(record.ProductID), 10))
	params.Set("cantidad", strconv.Itoa(quantity))
	params.Set("producto_nombre", record.ProductName)
	params.Set("sucursal_nombre", record.BranchName)
	params.Set("precio_clp_unitario", strconv.Itoa(record.PriceCLP))

	if unitUSD, ok := UnitPriceUSD(record.PriceCLP, rate); ok {
		params.Set("precio_usd_unitario", strconv.FormatFloat(unitUSD, 'f', 2, 64))
	}

	return paymentURL + "?" + params.Encode()
}
