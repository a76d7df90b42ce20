package models

import "time"

// Sale is one registered purchase at a branch
type Sale struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	BranchID uint       `gorm:"column:sucursal_id;not null;index" json:"sucursal_id"`
	Date     time.Time  `gorm:"column:fecha;not null" json:"fecha"`
	TotalCLP int        `gorm:"column:total;not null" json:"total"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"detalles,omitempty"`
}

// TableName returns the table name for Sale model
func (Sale) TableName() string {
	return "ventas"
}

// SaleItem is one product line within a sale. UnitPriceCLP captures the
// product price at the moment of sale.
type SaleItem struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	SaleID       uint `gorm:"column:venta_id;not null;index" json:"venta_id"`
	ProductID    uint `gorm:"column:producto_id;not null" json:"producto_id"`
	Quantity     int  `gorm:"column:cantidad;not null" json:"cantidad"`
	UnitPriceCLP int  `gorm:"column:precio_unitario;not null" json:"precio_unitario"`
}

// TableName returns the table name for SaleItem model
func (SaleItem) TableName() string {
	return "detalles_venta"
}
