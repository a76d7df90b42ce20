package store

import "errors"

var (
	ErrBranchNotFound  = errors.New("branch not found")
	ErrProductNotFound = errors.New("product not found")
	ErrStockNotFound   = errors.New("stock entry not found")
	ErrSaleNotFound    = errors.New("sale not found")

	// ErrStockExists means a stock entry for the branch/product pair
	// already exists and should be updated instead
	ErrStockExists = errors.New("stock entry already exists")

	// ErrInsufficientStock blocks a sale whose quantity exceeds what the
	// branch has left
	ErrInsufficientStock = errors.New("insufficient stock")
)
