package catalog

// SearchRecord is one branch offer for a product as returned by the
// product search backend.
type SearchRecord struct {
	ProductID      uint   `json:"producto_id"`
	ProductName    string `json:"producto_nombre"`
	ImageURL       string `json:"imagen,omitempty"`
	PriceCLP       int    `json:"precio"`
	StockAvailable int    `json:"stock_disponible"`
	BranchID       uint   `json:"sucursal_id"`
	BranchName     string `json:"sucursal_nombre"`
}

// ProductGroup collects every branch offer for one product
type ProductGroup struct {
	ProductID   uint           `json:"producto_id"`
	ProductName string         `json:"producto_nombre"`
	ImageURL    string         `json:"imagen,omitempty"`
	Branches    []SearchRecord `json:"sucursales"`
	MinPriceCLP int            `json:"precio_minimo_clp"`
}

// StockAlert flags a branch offer with no stock left
type StockAlert struct {
	ProductID   uint   `json:"producto_id"`
	ProductName string `json:"producto_nombre"`
	BranchID    uint   `json:"sucursal_id"`
	BranchName  string `json:"sucursal_nombre"`
	Message     string `json:"mensaje"`
}
