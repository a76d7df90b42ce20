package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiendascan/pkg/store"
)

type salePayload struct {
	BranchID uint             `json:"sucursal_id" binding:"required"`
	Products []store.SaleLine `json:"productos" binding:"required"`
}

// RegisterSale handles POST /ventas. Stock is validated and decremented in
// one transaction; every line is priced from the current product price.
func (h *HandlerService) RegisterSale(c *gin.Context) {
	var payload salePayload
	if err := c.ShouldBindJSON(&payload); err != nil || len(payload.Products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan datos: sucursal_id o productos"})
		return
	}

	sale, err := h.store.RegisterSale(c.Request.Context(), payload.BranchID, payload.Products)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"mensaje":     "Venta registrada exitosamente",
		"venta_id":    sale.ID,
		"total_venta": sale.TotalCLP,
	})
}

// ListSales handles GET /ventas, newest first with their items
func (h *HandlerService) ListSales(c *gin.Context) {
	sales, err := h.store.ListSales(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ventas": sales})
}

// GetSale handles GET /ventas/:venta_id
func (h *HandlerService) GetSale(c *gin.Context) {
	id, ok := uintParam(c, "venta_id")
	if !ok {
		return
	}

	sale, err := h.store.GetSale(c.Request.Context(), id)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"venta": sale})
}

// DeleteSale handles DELETE /ventas/:venta_id
func (h *HandlerService) DeleteSale(c *gin.Context) {
	id, ok := uintParam(c, "venta_id")
	if !ok {
		return
	}

	if err := h.store.DeleteSale(c.Request.Context(), id); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Venta eliminada exitosamente"})
}
