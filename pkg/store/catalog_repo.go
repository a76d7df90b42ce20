package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tiendascan/internal/models"
	"tiendascan/pkg/catalog"
)

// SearchProducts finds branch offers for a product by case-insensitive
// exact name, joining products with per-branch stock.
func (s *Store) SearchProducts(ctx context.Context, name string) ([]catalog.SearchRecord, error) {
	var rows []struct {
		ProductID   uint
		ProductName string
		ImageURL    string
		PriceCLP    int
		Quantity    int
		BranchID    uint
		BranchName  string
	}

	err := s.db.WithContext(ctx).
		Table("productos").
		Select(`productos.id AS product_id,
			productos.nombre AS product_name,
			productos.imagen AS image_url,
			productos.precio AS price_clp,
			stock.cantidad AS quantity,
			sucursales.id AS branch_id,
			sucursales.nombre AS branch_name`).
		Joins("JOIN stock ON stock.producto_id = productos.id").
		Joins("JOIN sucursales ON sucursales.id = stock.sucursal_id").
		Where("LOWER(productos.nombre) = LOWER(?)", name).
		Order("productos.id, sucursales.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("product search query failed: %w", err)
	}

	records := make([]catalog.SearchRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, catalog.SearchRecord{
			ProductID:      row.ProductID,
			ProductName:    row.ProductName,
			ImageURL:       row.ImageURL,
			PriceCLP:       row.PriceCLP,
			StockAvailable: row.Quantity,
			BranchID:       row.BranchID,
			BranchName:     row.BranchName,
		})
	}
	return records, nil
}

// ListBranches returns every branch
func (s *Store) ListBranches(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	if err := s.db.WithContext(ctx).Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// GetBranch returns one branch by ID
func (s *Store) GetBranch(ctx context.Context, id uint) (*models.Branch, error) {
	var branch models.Branch
	if err := s.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrBranchNotFound, id)
		}
		return nil, err
	}
	return &branch, nil
}

// CreateBranches inserts a batch of branches
func (s *Store) CreateBranches(ctx context.Context, branches []models.Branch) ([]models.Branch, error) {
	if err := s.db.WithContext(ctx).Create(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// UpdateBranch updates name and address of a branch
func (s *Store) UpdateBranch(ctx context.Context, id uint, name, address string) (*models.Branch, error) {
	branch, err := s.GetBranch(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		branch.Name = name
	}
	if address != "" {
		branch.Address = address
	}

	if err := s.db.WithContext(ctx).Save(branch).Error; err != nil {
		return nil, err
	}
	return branch, nil
}

// DeleteBranch removes a branch
func (s *Store) DeleteBranch(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Branch{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", ErrBranchNotFound, id)
	}
	return nil
}

// ListProducts returns every product
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns one product by ID
func (s *Store) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
		}
		return nil, err
	}
	return &product, nil
}

// CreateProducts inserts a batch of products
func (s *Store) CreateProducts(ctx context.Context, products []models.Product) ([]models.Product, error) {
	if err := s.db.WithContext(ctx).Create(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateProduct updates the mutable fields of a product
func (s *Store) UpdateProduct(ctx context.Context, id uint, name string, priceCLP *int, imageURL *string) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		product.Name = name
	}
	if priceCLP != nil {
		product.PriceCLP = *priceCLP
	}
	if imageURL != nil {
		product.ImageURL = *imageURL
	}

	if err := s.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product
func (s *Store) DeleteProduct(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return nil
}

// ListStock returns every stock entry
func (s *Store) ListStock(ctx context.Context) ([]models.StockLevel, error) {
	var stock []models.StockLevel
	if err := s.db.WithContext(ctx).Find(&stock).Error; err != nil {
		return nil, err
	}
	return stock, nil
}

// GetStock returns the stock entry for a branch/product pair
func (s *Store) GetStock(ctx context.Context, branchID, productID uint) (*models.StockLevel, error) {
	var stock models.StockLevel
	err := s.db.WithContext(ctx).
		Where("sucursal_id = ? AND producto_id = ?", branchID, productID).
		First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: branch %d product %d", ErrStockNotFound, branchID, productID)
		}
		return nil, err
	}
	return &stock, nil
}

// CreateStock creates a stock entry for a branch/product pair. The branch
// and product must exist and the pair must not already have stock.
func (s *Store) CreateStock(ctx context.Context, branchID, productID uint, quantity int) (*models.StockLevel, error) {
	if _, err := s.GetBranch(ctx, branchID); err != nil {
		return nil, err
	}
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	if _, err := s.GetStock(ctx, branchID, productID); err == nil {
		return nil, fmt.Errorf("%w: branch %d product %d", ErrStockExists, branchID, productID)
	} else if !errors.Is(err, ErrStockNotFound) {
		return nil, err
	}

	stock := models.StockLevel{BranchID: branchID, ProductID: productID, Quantity: quantity}
	if err := s.db.WithContext(ctx).Create(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// UpdateStock sets the final quantity of a stock entry
func (s *Store) UpdateStock(ctx context.Context, branchID, productID uint, quantity int) (*models.StockLevel, error) {
	stock, err := s.GetStock(ctx, branchID, productID)
	if err != nil {
		return nil, err
	}

	stock.Quantity = quantity
	err = s.db.WithContext(ctx).
		Model(&models.StockLevel{}).
		Where("sucursal_id = ? AND producto_id = ?", branchID, productID).
		Update("cantidad", quantity).Error
	if err != nil {
		return nil, err
	}
	return stock, nil
}

// DeleteStock removes a stock entry
func (s *Store) DeleteStock(ctx context.Context, branchID, productID uint) error {
	result := s.db.WithContext(ctx).
		Where("sucursal_id = ? AND producto_id = ?", branchID, productID).
		Delete(&models.StockLevel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: branch %d product %d", ErrStockNotFound, branchID, productID)
	}
	return nil
}

// BulkStockItem is one entry of a bulk stock load
type BulkStockItem struct {
	BranchID  uint `json:"sucursal_id"`
	ProductID uint `json:"producto_id"`
	Quantity  int  `json:"cantidad"`
}

// BulkStockResult reports what happened to one bulk entry
type BulkStockResult struct {
	Action    string `json:"accion"` // creado | actualizado
	BranchID  uint   `json:"sucursal_id"`
	ProductID uint   `json:"producto_id"`
	Quantity  int    `json:"cantidad"`
}

// BulkLoadStock loads a batch of stock entries in one transaction. An
// existing branch/product pair has its quantity incremented; a new pair is
// created. Unknown branches or products fail the whole batch.
func (s *Store) BulkLoadStock(ctx context.Context, items []BulkStockItem) ([]BulkStockResult, error) {
	results := make([]BulkStockResult, 0, len(items))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var branch models.Branch
			if err := tx.First(&branch, item.BranchID).Error; err != nil {
				return fmt.Errorf("%w: %d", ErrBranchNotFound, item.BranchID)
			}
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				return fmt.Errorf("%w: %d", ErrProductNotFound, item.ProductID)
			}

			var existing models.StockLevel
			err := tx.Where("sucursal_id = ? AND producto_id = ?", item.BranchID, item.ProductID).
				First(&existing).Error
			switch {
			case err == nil:
				existing.Quantity += item.Quantity
				if err := tx.Model(&models.StockLevel{}).
					Where("sucursal_id = ? AND producto_id = ?", item.BranchID, item.ProductID).
					Update("cantidad", existing.Quantity).Error; err != nil {
					return err
				}
				results = append(results, BulkStockResult{
					Action:    "actualizado",
					BranchID:  item.BranchID,
					ProductID: item.ProductID,
					Quantity:  existing.Quantity,
				})
			case errors.Is(err, gorm.ErrRecordNotFound):
				stock := models.StockLevel{
					BranchID:  item.BranchID,
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
				}
				if err := tx.Create(&stock).Error; err != nil {
					return err
				}
				results = append(results, BulkStockResult{
					Action:    "creado",
					BranchID:  item.BranchID,
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
				})
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// LowStockEntry is one stock row at or below the sweep threshold,
// with the names needed to build an alert message.
type LowStockEntry struct {
	BranchID    uint   `json:"sucursal_id"`
	BranchName  string `json:"sucursal_nombre"`
	ProductID   uint   `json:"producto_id"`
	ProductName string `json:"producto_nombre"`
	Quantity    int    `json:"cantidad"`
}

// LowStock returns the stock entries at or below the given threshold
func (s *Store) LowStock(ctx context.Context, threshold int) ([]LowStockEntry, error) {
	var entries []LowStockEntry
	err := s.db.WithContext(ctx).
		Table("stock").
		Select("stock.sucursal_id AS branch_id, sucursales.nombre AS branch_name, " +
			"stock.producto_id AS product_id, productos.nombre AS product_name, " +
			"stock.cantidad AS quantity").
		Joins("JOIN sucursales ON sucursales.id = stock.sucursal_id").
		Joins("JOIN productos ON productos.id = stock.producto_id").
		Where("stock.cantidad <= ?", threshold).
		Order("stock.sucursal_id, stock.producto_id").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
