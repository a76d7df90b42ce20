package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiendascan/internal/models"
	"tiendascan/pkg/logger"
)

type productPayload struct {
	Name     string  `json:"nombre" binding:"required"`
	PriceCLP *int    `json:"precio" binding:"required"`
	ImageURL *string `json:"imagen"`
}

// ListProducts handles GET /productos
func (h *HandlerService) ListProducts(c *gin.Context) {
	products, err := h.store.ListProducts(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"productos": products})
}

// GetProduct handles GET /productos/:producto_id
func (h *HandlerService) GetProduct(c *gin.Context) {
	id, ok := uintParam(c, "producto_id")
	if !ok {
		return
	}

	product, err := h.store.GetProduct(c.Request.Context(), id)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"producto": product})
}

// CreateProducts handles POST /productos with a list payload
func (h *HandlerService) CreateProducts(c *gin.Context) {
	var payload []productPayload
	if err := c.ShouldBindJSON(&payload); err != nil || len(payload) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Por favor, envía una lista de productos"})
		return
	}

	products := make([]models.Product, 0, len(payload))
	for _, item := range payload {
		product := models.Product{Name: item.Name, PriceCLP: *item.PriceCLP}
		if item.ImageURL != nil {
			product.ImageURL = *item.ImageURL
		}
		products = append(products, product)
	}

	created, err := h.store.CreateProducts(c.Request.Context(), products)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"productos": created})
}

// UpdateProduct handles PUT /productos/:producto_id
func (h *HandlerService) UpdateProduct(c *gin.Context) {
	id, ok := uintParam(c, "producto_id")
	if !ok {
		return
	}

	var payload struct {
		Name     string  `json:"nombre"`
		PriceCLP *int    `json:"precio"`
		ImageURL *string `json:"imagen"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida"})
		return
	}

	product, err := h.store.UpdateProduct(c.Request.Context(), id, payload.Name, payload.PriceCLP, payload.ImageURL)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Producto actualizado exitosamente", "producto": product})
}

// DeleteProduct handles DELETE /productos/:producto_id
func (h *HandlerService) DeleteProduct(c *gin.Context) {
	id, ok := uintParam(c, "producto_id")
	if !ok {
		return
	}

	if err := h.store.DeleteProduct(c.Request.Context(), id); err != nil {
		storeError(c, err)
		return
	}

	logger.WithProduct(logger.FromContext(c.Request.Context()), id).Info("producto eliminado")
	c.JSON(http.StatusOK, gin.H{"resultado": true})
}
