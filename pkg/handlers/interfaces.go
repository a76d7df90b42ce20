package handlers

import (
	"context"

	"tiendascan/internal/models"
	"tiendascan/pkg/catalog"
	"tiendascan/pkg/store"
)

// Store is the persistence surface the handlers depend on. *store.Store
// satisfies it; tests substitute fakes.
type Store interface {
	SearchProducts(ctx context.Context, name string) ([]catalog.SearchRecord, error)

	ListBranches(ctx context.Context) ([]models.Branch, error)
	GetBranch(ctx context.Context, id uint) (*models.Branch, error)
	CreateBranches(ctx context.Context, branches []models.Branch) ([]models.Branch, error)
	UpdateBranch(ctx context.Context, id uint, name, address string) (*models.Branch, error)
	DeleteBranch(ctx context.Context, id uint) error

	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	CreateProducts(ctx context.Context, products []models.Product) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id uint, name string, priceCLP *int, imageURL *string) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error

	ListStock(ctx context.Context) ([]models.StockLevel, error)
	GetStock(ctx context.Context, branchID, productID uint) (*models.StockLevel, error)
	CreateStock(ctx context.Context, branchID, productID uint, quantity int) (*models.StockLevel, error)
	UpdateStock(ctx context.Context, branchID, productID uint, quantity int) (*models.StockLevel, error)
	DeleteStock(ctx context.Context, branchID, productID uint) error
	BulkLoadStock(ctx context.Context, items []store.BulkStockItem) ([]store.BulkStockResult, error)

	RegisterSale(ctx context.Context, branchID uint, lines []store.SaleLine) (*models.Sale, error)
	ListSales(ctx context.Context) ([]models.Sale, error)
	GetSale(ctx context.Context, id uint) (*models.Sale, error)
	DeleteSale(ctx context.Context, id uint) error

	RecentAlertEvents(ctx context.Context, limit int) ([]models.AlertEvent, error)

	Ping() error
}
