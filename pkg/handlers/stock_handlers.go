package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiendascan/pkg/store"
)

type stockPayload struct {
	Quantity *int `json:"cantidad" binding:"required"`
}

// ListStock handles GET /stock
func (h *HandlerService) ListStock(c *gin.Context) {
	stock, err := h.store.ListStock(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": stock})
}

// GetStock handles GET /sucursales/:sucursal_id/productos/:producto_id/stock
func (h *HandlerService) GetStock(c *gin.Context) {
	branchID, ok := uintParam(c, "sucursal_id")
	if !ok {
		return
	}
	productID, ok := uintParam(c, "producto_id")
	if !ok {
		return
	}

	stock, err := h.store.GetStock(c.Request.Context(), branchID, productID)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": stock})
}

// CreateStock handles POST /sucursales/:sucursal_id/productos/:producto_id/stock
func (h *HandlerService) CreateStock(c *gin.Context) {
	branchID, ok := uintParam(c, "sucursal_id")
	if !ok {
		return
	}
	productID, ok := uintParam(c, "producto_id")
	if !ok {
		return
	}

	var payload stockPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida. Falta cantidad"})
		return
	}

	stock, err := h.store.CreateStock(c.Request.Context(), branchID, productID, *payload.Quantity)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"stock": stock})
}

// UpdateStock handles PUT /sucursales/:sucursal_id/productos/:producto_id/stock.
// The payload carries the final quantity, not an increment.
func (h *HandlerService) UpdateStock(c *gin.Context) {
	branchID, ok := uintParam(c, "sucursal_id")
	if !ok {
		return
	}
	productID, ok := uintParam(c, "producto_id")
	if !ok {
		return
	}

	var payload stockPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida. Falta la cantidad a actualizar"})
		return
	}

	stock, err := h.store.UpdateStock(c.Request.Context(), branchID, productID, *payload.Quantity)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": stock})
}

// DeleteStock handles DELETE /sucursales/:sucursal_id/productos/:producto_id/stock
func (h *HandlerService) DeleteStock(c *gin.Context) {
	branchID, ok := uintParam(c, "sucursal_id")
	if !ok {
		return
	}
	productID, ok := uintParam(c, "producto_id")
	if !ok {
		return
	}

	if err := h.store.DeleteStock(c.Request.Context(), branchID, productID); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resultado": true})
}

// BulkLoadStock handles POST /stock/bulk. Existing branch/product pairs
// have their quantity incremented; new pairs are created.
func (h *HandlerService) BulkLoadStock(c *gin.Context) {
	var items []store.BulkStockItem
	if err := c.ShouldBindJSON(&items); err != nil || len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Por favor, envía una lista de items de stock"})
		return
	}

	results, err := h.store.BulkLoadStock(c.Request.Context(), items)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"stock_procesado": results})
}
