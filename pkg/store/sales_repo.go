package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tiendascan/internal/models"
)

// SaleLine is one requested product/quantity pair of a sale
type SaleLine struct {
	ProductID uint `json:"producto_id"`
	Quantity  int  `json:"cantidad"`
}

// RegisterSale records a sale at a branch in one transaction: it validates
// stock, decrements it and prices every line from the current product
// price. Any shortage rolls the whole sale back.
func (s *Store) RegisterSale(ctx context.Context, branchID uint, lines []SaleLine) (*models.Sale, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("sale requires at least one product line")
	}

	var sale models.Sale

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var branch models.Branch
		if err := tx.First(&branch, branchID).Error; err != nil {
			return fmt.Errorf("%w: %d", ErrBranchNotFound, branchID)
		}

		total := 0
		items := make([]models.SaleItem, 0, len(lines))

		for _, line := range lines {
			if line.Quantity <= 0 {
				return fmt.Errorf("invalid quantity %d for product %d", line.Quantity, line.ProductID)
			}

			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %d", ErrProductNotFound, line.ProductID)
				}
				return err
			}

			var stock models.StockLevel
			err := tx.Where("sucursal_id = ? AND producto_id = ?", branchID, line.ProductID).
				First(&stock).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if errors.Is(err, gorm.ErrRecordNotFound) || stock.Quantity < line.Quantity {
				return fmt.Errorf("%w: product %q at branch %d has %d left",
					ErrInsufficientStock, product.Name, branchID, stock.Quantity)
			}

			if err := tx.Model(&models.StockLevel{}).
				Where("sucursal_id = ? AND producto_id = ?", branchID, line.ProductID).
				Update("cantidad", stock.Quantity-line.Quantity).Error; err != nil {
				return err
			}

			// The sale records the product price at the moment of sale
			total += product.PriceCLP * line.Quantity
			items = append(items, models.SaleItem{
				ProductID:    line.ProductID,
				Quantity:     line.Quantity,
				UnitPriceCLP: product.PriceCLP,
			})
		}

		sale = models.Sale{
			BranchID: branchID,
			Date:     time.Now().UTC(),
			TotalCLP: total,
			Items:    items,
		}
		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// ListSales returns every sale with its items, newest first
func (s *Store) ListSales(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	err := s.db.WithContext(ctx).
		Preload("Items").
		Order("fecha DESC").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// GetSale returns one sale with its items
func (s *Store) GetSale(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	err := s.db.WithContext(ctx).
		Preload("Items").
		First(&sale, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrSaleNotFound, id)
		}
		return nil, err
	}
	return &sale, nil
}

// DeleteSale removes a sale and its items
func (s *Store) DeleteSale(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.First(&sale, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", ErrSaleNotFound, id)
			}
			return err
		}

		if err := tx.Where("venta_id = ?", id).Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sale).Error
	})
}
