package purchase

import "errors"

var (
	// ErrInvalidQuantity means the requested quantity is non-positive or
	// exceeds the available stock
	ErrInvalidQuantity = errors.New("invalid purchase quantity")

	// ErrOutOfStock means the chosen branch offer has no stock left
	ErrOutOfStock = errors.New("selected offer is out of stock")

	// ErrNoSelection means an operation requires a selected offer
	ErrNoSelection = errors.New("no offer selected")

	// ErrNoTotal means confirmation was requested before a total was computed
	ErrNoTotal = errors.New("no total computed")

	// ErrAlreadyConfirmed means the selection already reached its terminal state
	ErrAlreadyConfirmed = errors.New("purchase already confirmed")
)
