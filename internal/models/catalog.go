package models

// Branch is a store location
type Branch struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"column:nombre;not null" json:"nombre"`
	Address string `gorm:"column:direccion;not null" json:"direccion"`
}

// TableName returns the table name for Branch model
func (Branch) TableName() string {
	return "sucursales"
}

// Product is a catalog item. Prices are whole Chilean pesos.
type Product struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"column:nombre;not null;index" json:"nombre"`
	PriceCLP int    `gorm:"column:precio;not null" json:"precio"`
	ImageURL string `gorm:"column:imagen" json:"imagen,omitempty"`
}

// TableName returns the table name for Product model
func (Product) TableName() string {
	return "productos"
}

// StockLevel is the per-branch quantity of a product
type StockLevel struct {
	BranchID  uint `gorm:"column:sucursal_id;primaryKey" json:"sucursal_id"`
	ProductID uint `gorm:"column:producto_id;primaryKey" json:"producto_id"`
	Quantity  int  `gorm:"column:cantidad;not null" json:"cantidad"`
}

// TableName returns the table name for StockLevel model
func (StockLevel) TableName() string {
	return "stock"
}
